package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/translator-bot/internal/bot/bottest"
	"github.com/vladimiradmaev/translator-bot/internal/bot/messages"
	"github.com/vladimiradmaev/translator-bot/internal/domain"
	"github.com/vladimiradmaev/translator-bot/internal/repository"
	"github.com/vladimiradmaev/translator-bot/internal/services"
	"github.com/vladimiradmaev/translator-bot/internal/session"
	"github.com/vladimiradmaev/translator-bot/internal/utils"
)

const (
	freeUser    int64 = 1
	premiumUser int64 = 2
)

type testEnv struct {
	api        *bottest.Sender
	users      *services.UserService
	userRepo   *repository.MemoryUserRepository
	history    *repository.MemoryHistoryRepository
	translator *bottest.Translator
	voice      *bottest.Voice
	sessions   *session.MemoryStore
	deps       Dependencies
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	e := &testEnv{
		api:        bottest.NewSender(),
		userRepo:   repository.NewMemoryUserRepository(),
		history:    repository.NewMemoryHistoryRepository(),
		translator: &bottest.Translator{},
		voice:      &bottest.Voice{},
		sessions:   session.NewMemoryStore(),
	}
	e.users = services.NewUserService(e.userRepo, e.history, 5, 0)
	e.deps = Dependencies{
		API:        e.api,
		Users:      e.users,
		Translator: e.translator,
		Voice:      e.voice,
		Sessions:   e.sessions,
	}

	e.putUser(domain.UserProfile{TelegramID: freeUser})
	e.putUser(domain.UserProfile{TelegramID: premiumUser, IsPremium: true})
	return e
}

func (e *testEnv) putUser(p domain.UserProfile) {
	p.InterfaceLanguage = "ru"
	if p.TargetLanguage == "" {
		p.TargetLanguage = "ru"
	}
	p.TranslationStyle = domain.DefaultStyle
	if p.VoiceSpeed == 0 {
		p.VoiceSpeed = domain.DefaultVoiceSpeed
	}
	e.userRepo.Put(p)
}

func (e *testEnv) request(t *testing.T, userID int64, ev Event) *Request {
	t.Helper()
	user, err := e.users.GetUser(context.Background(), userID)
	require.NoError(t, err)
	ev.UserID = userID
	ev.ChatID = userID
	return &Request{Event: ev, User: user, Lang: user.InterfaceLanguage, Premium: e.users.HasPremium(user)}
}

func (e *testEnv) user(t *testing.T, userID int64) *domain.UserProfile {
	t.Helper()
	user, err := e.users.GetUser(context.Background(), userID)
	require.NoError(t, err)
	return user
}

func singleStage(text, source string) func(context.Context, services.TranslateRequest) (*domain.TranslationResult, error) {
	return func(context.Context, services.TranslateRequest) (*domain.TranslationResult, error) {
		return &domain.TranslationResult{Text: text, Metadata: domain.TranslationMetadata{SourceLang: source}}, nil
	}
}

func twoStage(context.Context, services.TranslateRequest) (*domain.TranslationResult, error) {
	return &domain.TranslationResult{
		Text: "Как дела?",
		Metadata: domain.TranslationMetadata{
			SourceLang:       "en",
			BasicTranslation: "Как ты делаешь?",
			Alternatives:     []string{"Как ты?", "Как жизнь?"},
			Explanation:      "Разговорная форма",
			Grammar:          "Вопросительное предложение",
		},
	}, nil
}

func TestTranslation_FreeUserWithinQuota(t *testing.T) {
	e := newTestEnv(t)
	e.translator.TranslateFunc = singleStage("Привет", "en")
	ctx := context.Background()

	err := NewTranslationHandler(e.deps).Handle(ctx, e.request(t, freeUser, Event{Kind: KindText, Text: "Hello"}))
	require.NoError(t, err)

	reply := e.api.LastText()
	assert.Contains(t, reply, "🌍 *Английский → Русский*")
	assert.Contains(t, reply, "📝 *Перевод:*\nПривет")
	assert.Contains(t, reply, "📊 Осталось переводов сегодня: 4")

	assert.Equal(t, 1, e.user(t, freeUser).DailyTranslations)
	assert.Equal(t, 1, e.history.Len())

	calls := e.translator.Calls()
	require.Len(t, calls, 1)
	assert.False(t, calls[0].Enhance)
	assert.Equal(t, "ru", calls[0].TargetLang)

	_, found, err := e.sessions.Load(ctx, freeUser)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTranslation_QuotaExhausted(t *testing.T) {
	e := newTestEnv(t)
	e.putUser(domain.UserProfile{TelegramID: freeUser, DailyTranslations: 5, DailyResetAt: utils.StartOfDay(time.Now())})
	e.translator.TranslateFunc = singleStage("Привет", "en")

	err := NewTranslationHandler(e.deps).Handle(context.Background(), e.request(t, freeUser, Event{Kind: KindText, Text: "Hello"}))
	require.NoError(t, err)

	assert.Equal(t, messages.Get(messages.DailyLimitReached, "ru"), e.api.LastText())
	assert.Empty(t, e.translator.Calls())
	assert.Equal(t, 5, e.user(t, freeUser).DailyTranslations)
	assert.Equal(t, 0, e.history.Len())
}

func TestTranslation_ProviderFailureChangesNothing(t *testing.T) {
	e := newTestEnv(t)
	e.translator.TranslateFunc = func(context.Context, services.TranslateRequest) (*domain.TranslationResult, error) {
		return nil, errors.New("provider down")
	}

	err := NewTranslationHandler(e.deps).Handle(context.Background(), e.request(t, freeUser, Event{Kind: KindText, Text: "Hello"}))
	require.NoError(t, err)

	assert.Equal(t, messages.Get(messages.TranslationFailed, "ru"), e.api.LastText())
	assert.Equal(t, 0, e.user(t, freeUser).DailyTranslations)
	assert.Equal(t, 0, e.history.Len())
}

func TestTranslation_PremiumTwoStageStoresSession(t *testing.T) {
	e := newTestEnv(t)
	e.translator.TranslateFunc = twoStage
	ctx := context.Background()

	err := NewTranslationHandler(e.deps).Handle(ctx, e.request(t, premiumUser, Event{Kind: KindText, Text: "How are you doing?"}))
	require.NoError(t, err)

	reply := e.api.LastText()
	assert.Contains(t, reply, "📝 *Точный перевод:*\nКак ты делаешь?")
	assert.Contains(t, reply, "✨ *Улучшенный перевод:*\nКак дела?")
	assert.NotContains(t, reply, "Осталось")
	assert.True(t, e.translator.Calls()[0].Enhance)

	entry, found, err := e.sessions.Load(ctx, premiumUser)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "How are you doing?", entry.SourceText)
	assert.Equal(t, []string{"Как ты?", "Как жизнь?"}, entry.Metadata.Alternatives)
	assert.Empty(t, e.api.Voices())
}

func TestTranslation_AutoVoiceSpeaksBasicTranslation(t *testing.T) {
	e := newTestEnv(t)
	e.putUser(domain.UserProfile{TelegramID: premiumUser, IsPremium: true, AutoVoice: true, VoiceSpeed: 1.25})
	e.translator.TranslateFunc = twoStage

	var spoken string
	var speed float64
	e.voice.SpeechFunc = func(_ context.Context, text, _ string, premium bool, s float64) ([]byte, error) {
		spoken, speed = text, s
		assert.True(t, premium)
		return []byte("mp3"), nil
	}

	err := NewTranslationHandler(e.deps).Handle(context.Background(), e.request(t, premiumUser, Event{Kind: KindText, Text: "How are you doing?"}))
	require.NoError(t, err)

	assert.Equal(t, "Как ты делаешь?", spoken)
	assert.Equal(t, 1.25, speed)
	assert.Len(t, e.api.Voices(), 1)
}

func TestTranslation_MarkdownFallback(t *testing.T) {
	e := newTestEnv(t)
	e.translator.TranslateFunc = singleStage("*broken", "en")
	e.api.SendErr = func(c tgbotapi.Chattable) error {
		if m, ok := c.(tgbotapi.MessageConfig); ok && m.ParseMode != "" {
			return errors.New("can't parse entities")
		}
		return nil
	}

	err := NewTranslationHandler(e.deps).Handle(context.Background(), e.request(t, freeUser, Event{Kind: KindText, Text: "Hello"}))
	require.NoError(t, err)
	assert.Contains(t, e.api.LastText(), "*broken")
}

func TestVoice_RequiresPremium(t *testing.T) {
	e := newTestEnv(t)

	err := NewVoiceHandler(e.deps).Handle(context.Background(), e.request(t, freeUser, Event{Kind: KindVoice, VoiceFileID: "f1"}))
	require.NoError(t, err)
	assert.Equal(t, messages.Get(messages.VoicePremiumRequired, "ru"), e.api.LastText())
	assert.Empty(t, e.translator.Calls())
}

func TestVoice_PremiumTwoStage(t *testing.T) {
	e := newTestEnv(t)
	e.voice.TranscribeFunc = func(context.Context, string) (string, error) { return "How are you doing?", nil }
	e.translator.TranslateFunc = twoStage
	ctx := context.Background()

	err := NewVoiceHandler(e.deps).Handle(ctx, e.request(t, premiumUser, Event{Kind: KindVoice, VoiceFileID: "f1"}))
	require.NoError(t, err)

	texts := e.api.Texts()
	require.Len(t, texts, 2)
	assert.Equal(t, messages.Get(messages.ProcessingVoice, "ru"), texts[0])
	assert.Contains(t, texts[1], "🎤 *Распознано:* How are you doing?")
	assert.Contains(t, texts[1], "📝 *Точный перевод:*")
	assert.Contains(t, texts[1], "✨ *Улучшенный перевод:*")

	records, err := e.users.GetUserHistory(ctx, premiumUser, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsVoice)

	_, found, err := e.sessions.Load(ctx, premiumUser)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestVoice_TranscriptionFailure(t *testing.T) {
	e := newTestEnv(t)
	e.voice.TranscribeFunc = func(context.Context, string) (string, error) { return "", errors.New("whisper down") }

	err := NewVoiceHandler(e.deps).Handle(context.Background(), e.request(t, premiumUser, Event{Kind: KindVoice, VoiceFileID: "f1"}))
	require.NoError(t, err)

	assert.Equal(t, messages.Get(messages.VoiceFailed, "ru"), e.api.LastText())
	assert.Empty(t, e.translator.Calls())
	assert.Equal(t, 0, e.user(t, premiumUser).DailyTranslations)
	assert.Equal(t, 0, e.history.Len())
}

func TestCallbacks_MetadataNeedsSession(t *testing.T) {
	e := newTestEnv(t)
	h := NewCallbackHandler(e.deps)
	ctx := context.Background()

	require.NoError(t, h.MoreAlternatives(ctx, e.request(t, premiumUser, Event{Kind: KindCallback, CallbackData: "more_alts"})))
	assert.Equal(t, messages.Get(messages.NoRecentTranslation, "ru"), e.api.LastText())

	require.NoError(t, e.sessions.Save(ctx, premiumUser, session.Entry{
		Translated: "Как дела?",
		TargetLang: "ru",
		Metadata:   domain.TranslationMetadata{Alternatives: []string{"a", "b", "c"}, Grammar: "rules"},
	}))

	require.NoError(t, h.MoreAlternatives(ctx, e.request(t, premiumUser, Event{Kind: KindCallback})))
	assert.Equal(t, "🔄 *Альтернативы:*\n• a\n• b\n• c", e.api.LastText())

	require.NoError(t, h.Explain(ctx, e.request(t, premiumUser, Event{Kind: KindCallback})))
	assert.Equal(t, messages.Get(messages.NoExplanation, "ru"), e.api.LastText())

	require.NoError(t, h.Grammar(ctx, e.request(t, premiumUser, Event{Kind: KindCallback})))
	assert.Equal(t, "📖 *Грамматика:*\nrules", e.api.LastText())
}

func TestCallbacks_MetadataRequiresPremium(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, e.sessions.Save(context.Background(), freeUser, session.Entry{Translated: "x"}))

	err := NewCallbackHandler(e.deps).Explain(context.Background(), e.request(t, freeUser, Event{Kind: KindCallback}))
	require.NoError(t, err)
	assert.Equal(t, messages.Get(messages.PremiumRequired, "ru"), e.api.LastText())
}

func TestCallbacks_Speak(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, e.sessions.Save(ctx, premiumUser, session.Entry{Translated: "Hallo", TargetLang: "de"}))

	var language string
	e.voice.SpeechFunc = func(_ context.Context, _, lang string, _ bool, _ float64) ([]byte, error) {
		language = lang
		return []byte("mp3"), nil
	}
	require.NoError(t, NewCallbackHandler(e.deps).Speak(ctx, e.request(t, premiumUser, Event{Kind: KindCallback})))
	assert.Equal(t, "de", language)
	assert.Len(t, e.api.Voices(), 1)

	e.voice.SpeechFunc = func(context.Context, string, string, bool, float64) ([]byte, error) {
		return nil, errors.New("tts down")
	}
	require.NoError(t, NewCallbackHandler(e.deps).Speak(ctx, e.request(t, premiumUser, Event{Kind: KindCallback})))
	assert.Equal(t, messages.Get(messages.SpeechFailed, "ru"), e.api.LastText())
}

func TestCallbacks_Settings(t *testing.T) {
	e := newTestEnv(t)
	h := NewCallbackHandler(e.deps)
	ctx := context.Background()

	require.NoError(t, h.SelectLanguage(ctx, e.request(t, freeUser, Event{CallbackData: "lang:de"})))
	assert.Equal(t, "de", e.user(t, freeUser).TargetLanguage)
	assert.Equal(t, "✅ Язык перевода: 🇩🇪 Deutsch", e.api.LastText())

	assert.Error(t, h.SelectLanguage(ctx, e.request(t, freeUser, Event{CallbackData: "lang:xx"})))
	assert.Equal(t, "de", e.user(t, freeUser).TargetLanguage)

	require.NoError(t, h.SelectStyle(ctx, e.request(t, freeUser, Event{CallbackData: "style:formal"})))
	assert.Equal(t, "formal", e.user(t, freeUser).TranslationStyle)

	require.NoError(t, h.SetVoiceSpeed(ctx, e.request(t, freeUser, Event{CallbackData: "speed:1.25"})))
	assert.Equal(t, 1.25, e.user(t, freeUser).VoiceSpeed)
	assert.Equal(t, "✅ Скорость речи: 1.25x", e.api.LastText())

	assert.Error(t, h.SetVoiceSpeed(ctx, e.request(t, freeUser, Event{CallbackData: "speed:fast"})))

	require.NoError(t, h.ToggleAutoVoice(ctx, e.request(t, premiumUser, Event{})))
	assert.True(t, e.user(t, premiumUser).AutoVoice)
	assert.Equal(t, messages.Get(messages.AutoVoiceOn, "ru"), e.api.LastText())

	require.NoError(t, h.ToggleAutoVoice(ctx, e.request(t, freeUser, Event{})))
	assert.False(t, e.user(t, freeUser).AutoVoice)
}

func TestCommands_History(t *testing.T) {
	e := newTestEnv(t)
	h := NewCommandHandler(e.deps)
	ctx := context.Background()

	require.NoError(t, h.History(ctx, e.request(t, freeUser, Event{Kind: KindCommand})))
	assert.Equal(t, messages.Get(messages.PremiumRequired, "ru"), e.api.LastText())

	require.NoError(t, h.History(ctx, e.request(t, premiumUser, Event{Kind: KindCommand})))
	assert.Equal(t, messages.Get(messages.NoHistory, "ru"), e.api.LastText())

	require.NoError(t, e.users.AddTranslationHistory(ctx, &domain.TranslationRecord{
		TelegramID: premiumUser, SourceText: "Hello", TranslatedText: "Привет",
	}))
	require.NoError(t, h.History(ctx, e.request(t, premiumUser, Event{Kind: KindCommand})))
	assert.Contains(t, e.api.LastText(), "🔸 Hello\n   → Привет")
}

func TestCommands_Premium(t *testing.T) {
	e := newTestEnv(t)
	h := NewCommandHandler(e.deps)
	ctx := context.Background()

	require.NoError(t, h.Premium(ctx, e.request(t, premiumUser, Event{})))
	assert.Equal(t, messages.Get(messages.AlreadyPremium, "ru"), e.api.LastText())

	require.NoError(t, h.Premium(ctx, e.request(t, freeUser, Event{})))
	assert.Equal(t, messages.Get(messages.PremiumInfo, "ru"), e.api.LastText())
}

func TestCommands_StartSendsReplyKeyboardAndMenu(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, NewCommandHandler(e.deps).Start(context.Background(), e.request(t, freeUser, Event{Kind: KindCommand})))

	sent := e.api.Sent()
	require.Len(t, sent, 2)
	welcome := sent[0].(tgbotapi.MessageConfig)
	_, isReply := welcome.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	assert.True(t, isReply)
	menu := sent[1].(tgbotapi.MessageConfig)
	_, isInline := menu.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	assert.True(t, isInline)
}
