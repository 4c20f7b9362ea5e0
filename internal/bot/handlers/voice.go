package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/translator-bot/internal/bot/compose"
	"github.com/vladimiradmaev/translator-bot/internal/bot/keyboards"
	"github.com/vladimiradmaev/translator-bot/internal/bot/menus"
	"github.com/vladimiradmaev/translator-bot/internal/bot/messages"
	"github.com/vladimiradmaev/translator-bot/internal/logger"
	"github.com/vladimiradmaev/translator-bot/internal/services"
)

// VoiceHandler transcribes and translates voice messages
type VoiceHandler struct {
	deps Dependencies
}

// NewVoiceHandler creates a new voice handler
func NewVoiceHandler(deps Dependencies) *VoiceHandler {
	return &VoiceHandler{deps: deps}
}

// Handle runs the voice pipeline. The processing notice is edited in place with the result.
func (h *VoiceHandler) Handle(ctx context.Context, req *Request) error {
	log := logger.FromContext(ctx)

	if !req.Premium {
		_, err := menus.SendMarkdown(h.deps.API, req.ChatID, messages.Get(messages.VoicePremiumRequired, req.Lang),
			keyboards.TranslationActions(false, false, req.Lang))
		return err
	}

	allowed, remaining, err := h.deps.Users.CheckDailyLimit(ctx, req.UserID)
	if err != nil {
		return err
	}
	if !allowed {
		return menus.SendText(h.deps.API, req.ChatID, messages.Get(messages.DailyLimitReached, req.Lang))
	}

	processing, err := h.deps.API.Send(tgbotapi.NewMessage(req.ChatID, messages.Get(messages.ProcessingVoice, req.Lang)))
	if err != nil {
		return err
	}

	recognized, err := h.deps.Voice.ProcessVoiceMessage(ctx, req.VoiceFileID, h.deps.API)
	if err != nil {
		log.Error("Voice recognition failed", "error", err)
		return h.editPlain(req, processing.MessageID, messages.Get(messages.VoiceFailed, req.Lang))
	}
	log.Info("Voice recognized", "chars", len([]rune(recognized)))

	user := req.User
	result, err := h.deps.Translator.Translate(ctx, services.TranslateRequest{
		Text:       recognized,
		TargetLang: user.TargetLanguage,
		Style:      user.TranslationStyle,
		Enhance:    true,
	})
	if err != nil {
		log.Error("Voice translation failed", "error", err)
		return h.editPlain(req, processing.MessageID, messages.Get(messages.TranslationFailed, req.Lang))
	}

	recordTranslation(ctx, h.deps, req, recognized, result, true)

	text := compose.Translation(compose.Input{
		Mode:           compose.ModeVoice,
		Lang:           req.Lang,
		SourceText:     recognized,
		Translated:     result.Text,
		Metadata:       result.Metadata,
		HasPremium:     req.Premium,
		ShowQuota:      !req.Premium,
		SourceLangName: h.deps.Translator.LanguageName(result.Metadata.SourceLang, req.Lang),
		TargetLangName: h.deps.Translator.LanguageName(user.TargetLanguage, req.Lang),
		Remaining:      remaining,
	})
	keyboard := keyboards.TranslationActions(result.Metadata.HasAlternatives(), req.Premium, req.Lang)

	edit := tgbotapi.NewEditMessageTextAndMarkup(req.ChatID, processing.MessageID, text, keyboard)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := h.deps.API.Send(edit); err != nil {
		log.Warn("Markdown edit failed, retrying as plain text", "error", err)
		edit.ParseMode = ""
		if _, err := h.deps.API.Send(edit); err != nil {
			return err
		}
	}

	storeSession(ctx, h.deps, req, recognized, result)
	return nil
}

func (h *VoiceHandler) editPlain(req *Request, messageID int, text string) error {
	_, err := h.deps.API.Send(tgbotapi.NewEditMessageText(req.ChatID, messageID, text))
	return err
}
