package handlers

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/translator-bot/internal/bot/compose"
	"github.com/vladimiradmaev/translator-bot/internal/bot/keyboards"
	"github.com/vladimiradmaev/translator-bot/internal/bot/menus"
	"github.com/vladimiradmaev/translator-bot/internal/bot/messages"
	"github.com/vladimiradmaev/translator-bot/internal/domain"
	apperrors "github.com/vladimiradmaev/translator-bot/internal/errors"
	"github.com/vladimiradmaev/translator-bot/internal/logger"
	"github.com/vladimiradmaev/translator-bot/internal/services"
	"github.com/vladimiradmaev/translator-bot/internal/session"
)

// TranslationHandler translates free text
type TranslationHandler struct {
	deps Dependencies
}

// NewTranslationHandler creates a new translation handler
func NewTranslationHandler(deps Dependencies) *TranslationHandler {
	return &TranslationHandler{deps: deps}
}

// Handle runs the text pipeline: quota gate, translation, bookkeeping, reply, auto voice
func (h *TranslationHandler) Handle(ctx context.Context, req *Request) error {
	log := logger.FromContext(ctx)

	allowed, remaining, err := h.deps.Users.CheckDailyLimit(ctx, req.UserID)
	if err != nil {
		return err
	}
	if !allowed {
		log.Info("Translation refused", apperrors.ErrDailyLimitReached.LogFields()...)
		_, err := menus.SendMarkdown(h.deps.API, req.ChatID, messages.Get(messages.DailyLimitReached, req.Lang),
			keyboards.TranslationActions(false, false, req.Lang))
		return err
	}

	if _, err := h.deps.API.Request(tgbotapi.NewChatAction(req.ChatID, tgbotapi.ChatTyping)); err != nil {
		log.Debug("Failed to send typing action", "error", err)
	}

	user := req.User
	result, err := h.deps.Translator.Translate(ctx, services.TranslateRequest{
		Text:       req.Text,
		TargetLang: user.TargetLanguage,
		Style:      user.TranslationStyle,
		Enhance:    req.Premium,
	})
	if err != nil {
		log.Error("Translation failed", "error", err)
		return menus.SendText(h.deps.API, req.ChatID, messages.Get(messages.TranslationFailed, req.Lang))
	}

	recordTranslation(ctx, h.deps, req, req.Text, result, false)

	text := compose.Translation(compose.Input{
		Mode:           compose.ModeText,
		Lang:           req.Lang,
		SourceText:     req.Text,
		Translated:     result.Text,
		Metadata:       result.Metadata,
		HasPremium:     req.Premium,
		ShowQuota:      !req.Premium,
		SourceLangName: h.deps.Translator.LanguageName(result.Metadata.SourceLang, req.Lang),
		TargetLangName: h.deps.Translator.LanguageName(user.TargetLanguage, req.Lang),
		Remaining:      remaining,
	})
	keyboard := keyboards.TranslationActions(result.Metadata.HasAlternatives(), req.Premium, req.Lang)
	if _, err := menus.SendMarkdown(h.deps.API, req.ChatID, text, keyboard); err != nil {
		return err
	}

	if req.Premium {
		storeSession(ctx, h.deps, req, req.Text, result)
	}

	if req.Premium && user.AutoVoice {
		if err := speak(ctx, h.deps, req, spokenText(result), user.TargetLanguage); err != nil {
			log.Error("Auto voice failed", "error", err)
		}
	}
	return nil
}

// recordTranslation counts a successful translation and appends it to the history.
// Storage failures are logged; the user still gets the translation.
func recordTranslation(ctx context.Context, deps Dependencies, req *Request, source string, result *domain.TranslationResult, isVoice bool) {
	log := logger.FromContext(ctx)

	if err := deps.Users.IncrementTranslationCount(ctx, req.UserID); err != nil {
		log.Error("Failed to increment translation count", "error", err)
	}

	record := &domain.TranslationRecord{
		TelegramID:     req.UserID,
		SourceText:     source,
		SourceLanguage: result.Metadata.SourceLang,
		TranslatedText: result.Text,
		TargetLanguage: req.User.TargetLanguage,
		Style:          req.User.TranslationStyle,
		IsVoice:        isVoice,
	}
	if err := deps.Users.AddTranslationHistory(ctx, record); err != nil {
		log.Error("Failed to add translation history", "error", err)
	}
}

func storeSession(ctx context.Context, deps Dependencies, req *Request, source string, result *domain.TranslationResult) {
	entry := session.Entry{
		SourceText: source,
		Translated: result.Text,
		TargetLang: req.User.TargetLanguage,
		Metadata:   result.Metadata,
		CreatedAt:  time.Now(),
	}
	if err := deps.Sessions.Save(ctx, req.UserID, entry); err != nil {
		logger.FromContext(ctx).Warn("Failed to store session", "error", err)
	}
}

// spokenText prefers the basic translation, which is closer to the source for pronunciation
func spokenText(result *domain.TranslationResult) string {
	if result.Metadata.HasBasic() {
		return result.Metadata.BasicTranslation
	}
	return result.Text
}

func speak(ctx context.Context, deps Dependencies, req *Request, text, language string) error {
	audio, err := deps.Voice.GenerateSpeech(ctx, text, language, req.Premium, req.User.VoiceSpeed)
	if err != nil {
		return err
	}
	voice := tgbotapi.NewVoice(req.ChatID, tgbotapi.FileBytes{Name: "translation.mp3", Bytes: audio})
	_, err = deps.API.Send(voice)
	return err
}
