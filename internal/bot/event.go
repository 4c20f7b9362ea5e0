package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/translator-bot/internal/bot/handlers"
)

// EventFromUpdate classifies an update. Updates the bot does not react to return false.
func EventFromUpdate(update tgbotapi.Update) (handlers.Event, bool) {
	if q := update.CallbackQuery; q != nil {
		if q.From == nil {
			return handlers.Event{}, false
		}
		ev := userEvent(q.From)
		ev.Kind = handlers.KindCallback
		ev.ChatID = q.From.ID
		if q.Message != nil && q.Message.Chat != nil {
			ev.ChatID = q.Message.Chat.ID
			ev.MessageID = q.Message.MessageID
		}
		ev.CallbackID = q.ID
		ev.CallbackData = q.Data
		return ev, true
	}

	m := update.Message
	if m == nil || m.From == nil || m.Chat == nil {
		return handlers.Event{}, false
	}
	ev := userEvent(m.From)
	ev.ChatID = m.Chat.ID
	ev.MessageID = m.MessageID

	switch {
	case m.Voice != nil:
		ev.Kind = handlers.KindVoice
		ev.VoiceFileID = m.Voice.FileID
	case strings.HasPrefix(m.Text, "/"):
		ev.Kind = handlers.KindCommand
		ev.Text = m.Text
		ev.Command = parseCommand(m.Text)
	case strings.TrimSpace(m.Text) != "":
		ev.Kind = handlers.KindText
		ev.Text = m.Text
	default:
		return handlers.Event{}, false
	}
	return ev, true
}

func userEvent(from *tgbotapi.User) handlers.Event {
	return handlers.Event{
		UserID:       from.ID,
		Username:     from.UserName,
		FirstName:    from.FirstName,
		LastName:     from.LastName,
		LanguageCode: from.LanguageCode,
	}
}

// parseCommand extracts "help" from "/help@my_bot args". Telegram only marks latin
// commands as bot_command entities, so the text is parsed directly.
func parseCommand(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	cmd := strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd)
}
