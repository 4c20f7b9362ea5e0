package handlers

import (
	"context"

	"github.com/vladimiradmaev/translator-bot/internal/bot/compose"
	"github.com/vladimiradmaev/translator-bot/internal/bot/keyboards"
	"github.com/vladimiradmaev/translator-bot/internal/bot/menus"
	"github.com/vladimiradmaev/translator-bot/internal/bot/messages"
	"github.com/vladimiradmaev/translator-bot/internal/logger"
	"github.com/vladimiradmaev/translator-bot/internal/services"
)

// CommandHandler handles commands, menu buttons and the navigation callbacks that mirror them
type CommandHandler struct {
	deps Dependencies
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(deps Dependencies) *CommandHandler {
	return &CommandHandler{deps: deps}
}

// Start greets the user and shows the menus
func (h *CommandHandler) Start(ctx context.Context, req *Request) error {
	logger.FromContext(ctx).Info("User started bot", "username", req.User.Username, "premium", req.Premium)
	return menus.SendWelcome(h.deps.API, req.ChatID, req.Lang, req.Premium)
}

// MainMenu shows the main inline menu
func (h *CommandHandler) MainMenu(ctx context.Context, req *Request) error {
	return menus.SendMainMenu(h.deps.API, req.ChatID, req.Lang, req.Premium)
}

func (h *CommandHandler) Help(ctx context.Context, req *Request) error {
	_, err := menus.SendMarkdown(h.deps.API, req.ChatID, messages.Get(messages.Help, req.Lang), keyboards.BackToMenu(req.Lang))
	return err
}

// Premium describes the premium tier, or thanks users who already have it
func (h *CommandHandler) Premium(ctx context.Context, req *Request) error {
	if req.Premium {
		return menus.SendText(h.deps.API, req.ChatID, messages.Get(messages.AlreadyPremium, req.Lang))
	}
	_, err := menus.SendMarkdown(h.deps.API, req.ChatID, messages.Get(messages.PremiumInfo, req.Lang), keyboards.BackToMenu(req.Lang))
	return err
}

func (h *CommandHandler) Language(ctx context.Context, req *Request) error {
	return menus.SendLanguageMenu(h.deps.API, req.ChatID, req.User)
}

func (h *CommandHandler) Style(ctx context.Context, req *Request) error {
	return menus.SendStyleMenu(h.deps.API, req.ChatID, req.User)
}

func (h *CommandHandler) Settings(ctx context.Context, req *Request) error {
	return menus.SendSettingsMenu(h.deps.API, req.ChatID, req.User)
}

// History lists the most recent translations; premium only
func (h *CommandHandler) History(ctx context.Context, req *Request) error {
	if !req.Premium {
		return menus.SendText(h.deps.API, req.ChatID, messages.Get(messages.PremiumRequired, req.Lang))
	}

	records, err := h.deps.Users.GetUserHistory(ctx, req.UserID, services.HistoryLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return menus.SendText(h.deps.API, req.ChatID, messages.Get(messages.NoHistory, req.Lang))
	}

	_, err = menus.SendMarkdown(h.deps.API, req.ChatID, compose.History(records, req.Lang), keyboards.History(req.Lang))
	return err
}
