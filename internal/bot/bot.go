package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/vladimiradmaev/translator-bot/internal/bot/handlers"
	"github.com/vladimiradmaev/translator-bot/internal/interfaces"
	"github.com/vladimiradmaev/translator-bot/internal/logger"
	"github.com/vladimiradmaev/translator-bot/internal/ratelimit"
	"github.com/vladimiradmaev/translator-bot/internal/session"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	updateTimeout          = 2 * time.Minute
)

type Bot struct {
	api     *tgbotapi.BotAPI
	router  *Router
	limiter *ratelimit.Limiter
	wg      sync.WaitGroup
}

func NewBot(
	token string,
	userService interfaces.UserServiceInterface,
	translator interfaces.TranslatorInterface,
	voice interfaces.VoiceInterface,
	sessions session.Store,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	logger.Info("Bot authorized", "username", api.Self.UserName)

	limiter := ratelimit.New()
	router := NewRouter(api, userService, limiter)
	RegisterRoutes(router, handlers.Dependencies{
		API:        api,
		Users:      userService,
		Translator: translator,
		Voice:      voice,
		Sessions:   sessions,
	})

	return &Bot{
		api:     api,
		router:  router,
		limiter: limiter,
	}, nil
}

// Start polls for updates until ctx is cancelled, then waits for running handlers
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates")

	cleanup := time.NewTicker(limiterCleanupInterval)
	defer cleanup.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down")
			b.api.StopReceivingUpdates()
			b.wg.Wait()
			return ctx.Err()
		case <-cleanup.C:
			if removed := b.limiter.Cleanup(); removed > 0 {
				logger.Debug("Rate limiter cleanup", "removed", removed)
			}
		case update, ok := <-updates:
			if !ok {
				b.wg.Wait()
				return nil
			}
			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				b.handleUpdate(ctx, update)
			}()
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	ev, ok := EventFromUpdate(update)
	if !ok {
		return
	}

	log := logger.WithFields(
		"request_id", uuid.NewString(),
		"update_id", update.UpdateID,
		"user_id", ev.UserID,
		"kind", ev.Kind.String(),
	)
	log.Debug("Received update")

	ctx, cancel := context.WithTimeout(ctx, updateTimeout)
	defer cancel()
	b.router.Dispatch(logger.WithContext(ctx, log), ev)
}
