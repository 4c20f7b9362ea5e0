package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/translator-bot/internal/bot/handlers"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"/start", "start"},
		{"/Help@translator_bot", "help"},
		{"/помощь", "помощь"},
		{"/history extra args", "history"},
		{"/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCommand(tt.text))
		})
	}
}

func TestEventFromUpdate(t *testing.T) {
	from := &tgbotapi.User{ID: 7, UserName: "anna", FirstName: "Anna", LanguageCode: "en"}

	ev, ok := EventFromUpdate(tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 3, From: from, Chat: &tgbotapi.Chat{ID: 70}, Text: "/language@bot",
	}})
	require.True(t, ok)
	assert.Equal(t, handlers.KindCommand, ev.Kind)
	assert.Equal(t, "language", ev.Command)
	assert.Equal(t, int64(70), ev.ChatID)
	assert.Equal(t, "en", ev.LanguageCode)

	ev, ok = EventFromUpdate(tgbotapi.Update{Message: &tgbotapi.Message{
		From: from, Chat: &tgbotapi.Chat{ID: 70}, Voice: &tgbotapi.Voice{FileID: "voice-1"},
	}})
	require.True(t, ok)
	assert.Equal(t, handlers.KindVoice, ev.Kind)
	assert.Equal(t, "voice-1", ev.VoiceFileID)

	ev, ok = EventFromUpdate(tgbotapi.Update{Message: &tgbotapi.Message{
		From: from, Chat: &tgbotapi.Chat{ID: 70}, Text: "Hello",
	}})
	require.True(t, ok)
	assert.Equal(t, handlers.KindText, ev.Kind)

	_, ok = EventFromUpdate(tgbotapi.Update{Message: &tgbotapi.Message{
		From: from, Chat: &tgbotapi.Chat{ID: 70}, Photo: []tgbotapi.PhotoSize{{FileID: "p"}},
	}})
	assert.False(t, ok)

	ev, ok = EventFromUpdate(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID: "cb", From: from, Data: "lang:de",
	}})
	require.True(t, ok)
	assert.Equal(t, handlers.KindCallback, ev.Kind)
	assert.Equal(t, int64(7), ev.ChatID)
	assert.Equal(t, "lang:de", ev.CallbackData)

	_, ok = EventFromUpdate(tgbotapi.Update{})
	assert.False(t, ok)
}
