package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/translator-bot/internal/bot/bottest"
	"github.com/vladimiradmaev/translator-bot/internal/bot/handlers"
	"github.com/vladimiradmaev/translator-bot/internal/bot/keyboards"
	"github.com/vladimiradmaev/translator-bot/internal/bot/messages"
	"github.com/vladimiradmaev/translator-bot/internal/domain"
	"github.com/vladimiradmaev/translator-bot/internal/ratelimit"
	"github.com/vladimiradmaev/translator-bot/internal/repository"
	"github.com/vladimiradmaev/translator-bot/internal/services"
	"github.com/vladimiradmaev/translator-bot/internal/session"
	"github.com/vladimiradmaev/translator-bot/internal/utils"
)

type harness struct {
	api        *bottest.Sender
	users      *services.UserService
	userRepo   *repository.MemoryUserRepository
	history    *repository.MemoryHistoryRepository
	translator *bottest.Translator
	voice      *bottest.Voice
	sessions   *session.MemoryStore
	router     *Router

	mu  sync.Mutex
	now time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		api:        bottest.NewSender(),
		userRepo:   repository.NewMemoryUserRepository(),
		history:    repository.NewMemoryHistoryRepository(),
		translator: &bottest.Translator{},
		voice:      &bottest.Voice{},
		sessions:   session.NewMemoryStore(),
		now:        time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC),
	}
	h.users = services.NewUserService(h.userRepo, h.history, 5, 0)
	h.router = NewRouter(h.api, h.users, ratelimit.NewWithClock(h.clock))
	RegisterRoutes(h.router, handlers.Dependencies{
		API:        h.api,
		Users:      h.users,
		Translator: h.translator,
		Voice:      h.voice,
		Sessions:   h.sessions,
	})
	return h
}

func (h *harness) clock() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.now
}

func (h *harness) advance(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.now = h.now.Add(d)
}

func (h *harness) dispatch(t *testing.T, update tgbotapi.Update) {
	t.Helper()
	ev, ok := EventFromUpdate(update)
	require.True(t, ok)
	h.router.Dispatch(context.Background(), ev)
}

func (h *harness) user(t *testing.T, id int64) *domain.UserProfile {
	t.Helper()
	u, err := h.users.GetUser(context.Background(), id)
	require.NoError(t, err)
	return u
}

func textUpdate(userID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, LanguageCode: "ru"},
		Chat:      &tgbotapi.Chat{ID: userID},
		Text:      text,
	}}
}

func voiceUpdate(userID int64, fileID string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, LanguageCode: "ru"},
		Chat:      &tgbotapi.Chat{ID: userID},
		Voice:     &tgbotapi.Voice{FileID: fileID},
	}}
}

func callbackUpdate(userID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-" + data,
		From:    &tgbotapi.User{ID: userID, LanguageCode: "ru"},
		Message: &tgbotapi.Message{MessageID: 5, Chat: &tgbotapi.Chat{ID: userID}},
		Data:    data,
	}}
}

func translateTo(text string) func(context.Context, services.TranslateRequest) (*domain.TranslationResult, error) {
	return func(context.Context, services.TranslateRequest) (*domain.TranslationResult, error) {
		return &domain.TranslationResult{Text: text, Metadata: domain.TranslationMetadata{SourceLang: "en"}}, nil
	}
}

func TestRouter_FreeUserFirstTranslation(t *testing.T) {
	h := newHarness(t)
	h.translator.TranslateFunc = translateTo("Привет")

	h.dispatch(t, callbackUpdate(1, "lang:ru"))
	assert.Equal(t, "ru", h.user(t, 1).TargetLanguage)
	require.Len(t, h.api.Requests(), 1)

	h.dispatch(t, textUpdate(1, "Hello"))

	reply := h.api.LastText()
	assert.Contains(t, reply, "📝 *Перевод:*\nПривет")
	assert.Contains(t, reply, "Осталось переводов сегодня: 4")
	assert.Equal(t, 1, h.user(t, 1).DailyTranslations)
	assert.Equal(t, 1, h.history.Len())
}

func TestRouter_QuotaExhausted(t *testing.T) {
	h := newHarness(t)
	h.translator.TranslateFunc = translateTo("Привет")

	h.dispatch(t, textUpdate(1, "/start"))
	u := h.user(t, 1)
	u.DailyTranslations = 5
	u.DailyResetAt = utils.StartOfDay(time.Now())
	h.userRepo.Put(*u)

	h.dispatch(t, textUpdate(1, "Hello"))

	assert.Equal(t, messages.Get(messages.DailyLimitReached, "ru"), h.api.LastText())
	assert.Empty(t, h.translator.Calls())
	assert.Equal(t, 5, h.user(t, 1).DailyTranslations)
}

func TestRouter_PremiumVoice(t *testing.T) {
	h := newHarness(t)
	h.userRepo.Put(domain.UserProfile{
		TelegramID: 2, IsPremium: true, InterfaceLanguage: "ru", TargetLanguage: "ru",
		TranslationStyle: domain.DefaultStyle, VoiceSpeed: 1,
	})
	h.voice.TranscribeFunc = func(_ context.Context, fileID string) (string, error) {
		assert.Equal(t, "voice-1", fileID)
		return "Good afternoon", nil
	}
	h.translator.TranslateFunc = func(_ context.Context, req services.TranslateRequest) (*domain.TranslationResult, error) {
		assert.True(t, req.Enhance)
		return &domain.TranslationResult{
			Text:     "Добрый день!",
			Metadata: domain.TranslationMetadata{SourceLang: "en", BasicTranslation: "Хорошего дня"},
		}, nil
	}

	h.dispatch(t, voiceUpdate(2, "voice-1"))

	reply := h.api.LastText()
	assert.Contains(t, reply, "🎤 *Распознано:* Good afternoon")
	assert.Contains(t, reply, "📝 *Точный перевод:*\nХорошего дня")
	assert.Contains(t, reply, "✨ *Улучшенный перевод:*\nДобрый день!")

	entry, found, err := h.sessions.Load(context.Background(), 2)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Хорошего дня", entry.Metadata.BasicTranslation)
}

func TestRouter_TranslationFailureIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.translator.TranslateFunc = func(context.Context, services.TranslateRequest) (*domain.TranslationResult, error) {
		return nil, errors.New("provider unavailable")
	}

	h.dispatch(t, textUpdate(1, "Hello"))

	assert.Equal(t, messages.Get(messages.TranslationFailed, "ru"), h.api.LastText())
	assert.Equal(t, 0, h.user(t, 1).DailyTranslations)
	assert.Equal(t, 0, h.history.Len())
}

func TestRouter_RateLimit(t *testing.T) {
	h := newHarness(t)
	h.userRepo.Put(domain.UserProfile{TelegramID: 2, IsPremium: true, InterfaceLanguage: "ru", TargetLanguage: "ru", VoiceSpeed: 1})
	h.translator.TranslateFunc = translateTo("Привет")

	for i := 0; i < TranslationPolicy.Rate; i++ {
		h.dispatch(t, textUpdate(2, fmt.Sprintf("Hello %d", i)))
	}
	require.Len(t, h.translator.Calls(), TranslationPolicy.Rate)

	h.dispatch(t, textUpdate(2, "one more"))
	assert.Equal(t, messages.Get(messages.RateLimited, "ru"), h.api.LastText())
	assert.Len(t, h.translator.Calls(), TranslationPolicy.Rate)

	h.advance(TranslationPolicy.Period + time.Second)
	h.dispatch(t, textUpdate(2, "after the window"))
	assert.Len(t, h.translator.Calls(), TranslationPolicy.Rate+1)
}

func TestRouter_Priority(t *testing.T) {
	h := newHarness(t)
	h.translator.TranslateFunc = translateTo("x")

	h.dispatch(t, textUpdate(1, "/помощь"))
	assert.Equal(t, messages.Get(messages.Help, "ru"), h.api.LastText())

	h.dispatch(t, textUpdate(1, keyboards.LabelStyle))
	assert.Contains(t, h.api.LastText(), "🎨")

	sentBefore := len(h.api.Sent())
	h.dispatch(t, textUpdate(1, "/unknown"))
	assert.Len(t, h.api.Sent(), sentBefore)

	assert.Empty(t, h.translator.Calls())

	h.dispatch(t, textUpdate(1, "Style"))
	assert.Len(t, h.translator.Calls(), 1)
}

func TestRouter_ErrorBoundary(t *testing.T) {
	h := newHarness(t)
	h.translator.TranslateFunc = func(context.Context, services.TranslateRequest) (*domain.TranslationResult, error) {
		panic("boom")
	}

	assert.NotPanics(t, func() { h.dispatch(t, textUpdate(1, "Hello")) })
	assert.Equal(t, messages.Get(messages.GenericError, "ru"), h.api.LastText())

	h.dispatch(t, callbackUpdate(1, "lang:xx"))
	assert.Equal(t, messages.Get(messages.GenericError, "ru"), h.api.LastText())
}

func TestRouter_UnknownCallbackIsAnswered(t *testing.T) {
	h := newHarness(t)

	h.dispatch(t, callbackUpdate(1, "stale_button"))
	assert.Empty(t, h.api.Sent())
	assert.Len(t, h.api.Requests(), 1)
}
