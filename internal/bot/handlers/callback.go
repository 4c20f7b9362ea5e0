package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/vladimiradmaev/translator-bot/internal/bot/compose"
	"github.com/vladimiradmaev/translator-bot/internal/bot/keyboards"
	"github.com/vladimiradmaev/translator-bot/internal/bot/menus"
	"github.com/vladimiradmaev/translator-bot/internal/bot/messages"
	"github.com/vladimiradmaev/translator-bot/internal/config"
	apperrors "github.com/vladimiradmaev/translator-bot/internal/errors"
	"github.com/vladimiradmaev/translator-bot/internal/logger"
	"github.com/vladimiradmaev/translator-bot/internal/session"
)

// CallbackHandler handles settings changes and the buttons under a translation
type CallbackHandler struct {
	deps Dependencies
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(deps Dependencies) *CallbackHandler {
	return &CallbackHandler{deps: deps}
}

// SelectLanguage handles "lang:<code>"
func (h *CallbackHandler) SelectLanguage(ctx context.Context, req *Request) error {
	code := strings.TrimPrefix(req.CallbackData, keyboards.CallbackLanguagePrefix)
	if err := h.deps.Users.SetTargetLanguage(ctx, req.UserID, code); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Target language changed", "language", code)

	text := messages.Format(messages.LanguageChanged, req.Lang, config.LanguageLabel(code))
	_, err := menus.SendMarkdown(h.deps.API, req.ChatID, text, keyboards.BackToMenu(req.Lang))
	return err
}

// SelectStyle handles "style:<code>"
func (h *CallbackHandler) SelectStyle(ctx context.Context, req *Request) error {
	code := strings.TrimPrefix(req.CallbackData, keyboards.CallbackStylePrefix)
	if err := h.deps.Users.SetStyle(ctx, req.UserID, code); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Translation style changed", "style", code)

	text := messages.Format(messages.StyleChanged, req.Lang, config.StyleLabel(code))
	_, err := menus.SendMarkdown(h.deps.API, req.ChatID, text, keyboards.BackToMenu(req.Lang))
	return err
}

func (h *CallbackHandler) ToggleAutoVoice(ctx context.Context, req *Request) error {
	if !req.Premium {
		return h.premiumRequired(req)
	}
	enabled, err := h.deps.Users.ToggleAutoVoice(ctx, req.UserID)
	if err != nil {
		return err
	}
	key := messages.AutoVoiceOff
	if enabled {
		key = messages.AutoVoiceOn
	}
	return menus.SendText(h.deps.API, req.ChatID, messages.Get(key, req.Lang))
}

// SetVoiceSpeed handles "speed:<multiplier>"
func (h *CallbackHandler) SetVoiceSpeed(ctx context.Context, req *Request) error {
	raw := strings.TrimPrefix(req.CallbackData, keyboards.CallbackSpeedPrefix)
	speed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid voice speed " + raw)
	}
	if err := h.deps.Users.SetVoiceSpeed(ctx, req.UserID, speed); err != nil {
		return err
	}
	return menus.SendText(h.deps.API, req.ChatID, messages.Format(messages.VoiceSpeedSet, req.Lang, speed))
}

func (h *CallbackHandler) MoreAlternatives(ctx context.Context, req *Request) error {
	entry, ok, err := h.lastTranslation(ctx, req)
	if !ok || err != nil {
		return err
	}
	if !entry.Metadata.HasAlternatives() {
		return menus.SendText(h.deps.API, req.ChatID, messages.Get(messages.NoAlternatives, req.Lang))
	}
	_, err = menus.SendMarkdown(h.deps.API, req.ChatID, compose.Alternatives(entry.Metadata, req.Lang), nil)
	return err
}

func (h *CallbackHandler) Explain(ctx context.Context, req *Request) error {
	entry, ok, err := h.lastTranslation(ctx, req)
	if !ok || err != nil {
		return err
	}
	if !entry.Metadata.HasExplanation() {
		return menus.SendText(h.deps.API, req.ChatID, messages.Get(messages.NoExplanation, req.Lang))
	}
	_, err = menus.SendMarkdown(h.deps.API, req.ChatID, compose.Explanation(entry.Metadata, req.Lang), nil)
	return err
}

func (h *CallbackHandler) Grammar(ctx context.Context, req *Request) error {
	entry, ok, err := h.lastTranslation(ctx, req)
	if !ok || err != nil {
		return err
	}
	if !entry.Metadata.HasGrammar() {
		return menus.SendText(h.deps.API, req.ChatID, messages.Get(messages.NoGrammar, req.Lang))
	}
	_, err = menus.SendMarkdown(h.deps.API, req.ChatID, compose.Grammar(entry.Metadata, req.Lang), nil)
	return err
}

// Speak voices the last translation
func (h *CallbackHandler) Speak(ctx context.Context, req *Request) error {
	entry, ok, err := h.lastTranslation(ctx, req)
	if !ok || err != nil {
		return err
	}
	if err := speak(ctx, h.deps, req, entry.Translated, entry.TargetLang); err != nil {
		logger.FromContext(ctx).Error("Speech generation failed", "error", err)
		return menus.SendText(h.deps.API, req.ChatID, messages.Get(messages.SpeechFailed, req.Lang))
	}
	return nil
}

// lastTranslation loads the session entry behind the metadata buttons. When it returns
// ok=false the user has already been told why.
func (h *CallbackHandler) lastTranslation(ctx context.Context, req *Request) (session.Entry, bool, error) {
	if !req.Premium {
		return session.Entry{}, false, h.premiumRequired(req)
	}
	entry, found, err := h.deps.Sessions.Load(ctx, req.UserID)
	if err != nil {
		return session.Entry{}, false, err
	}
	if !found {
		return session.Entry{}, false, menus.SendText(h.deps.API, req.ChatID, messages.Get(messages.NoRecentTranslation, req.Lang))
	}
	return entry, true, nil
}

func (h *CallbackHandler) premiumRequired(req *Request) error {
	_, err := menus.SendMarkdown(h.deps.API, req.ChatID, messages.Get(messages.PremiumRequired, req.Lang),
		keyboards.TranslationActions(false, false, req.Lang))
	return err
}
