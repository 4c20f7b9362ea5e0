package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sashabaranov/go-openai"
	"github.com/vladimiradmaev/translator-bot/internal/bot"
	"github.com/vladimiradmaev/translator-bot/internal/config"
	"github.com/vladimiradmaev/translator-bot/internal/database"
	"github.com/vladimiradmaev/translator-bot/internal/logger"
	"github.com/vladimiradmaev/translator-bot/internal/repository"
	"github.com/vladimiradmaev/translator-bot/internal/services"
	"github.com/vladimiradmaev/translator-bot/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	if err := logger.InitWithConfig(cfg.Logger.ToLogger()); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	logger.Info("Starting translator bot", "provider", cfg.TranslationProvider)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	repos := repository.New(db)

	aiService, err := services.NewAIService(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to create AI service", "error", err)
	}
	defer aiService.Close()

	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set, voice features will fail")
	}
	voiceService := services.NewVoiceService(openai.NewClient(cfg.OpenAIAPIKey), cfg.MaxVoiceBytes)
	translator := services.NewTranslatorService(aiService, cfg.BasicModel, cfg.EnhanceModel)
	userService := services.NewUserService(repos.Users, repos.History, cfg.FreeDailyLimit, cfg.AdminID).
		WithDefaultVoiceSpeed(cfg.DefaultVoiceSpeed)

	sessions, closeSessions, err := newSessionStore(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to create session store", "error", err)
	}
	defer closeSessions()

	telegramBot, err := bot.NewBot(cfg.TelegramToken, userService, translator, voiceService, sessions)
	if err != nil {
		logger.Fatal("Failed to create bot", "error", err)
	}

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Bot stopped")
}

// newSessionStore uses redis when REDIS_HOST is set and process memory otherwise
func newSessionStore(ctx context.Context, cfg config.RedisConfig) (session.Store, func(), error) {
	if !cfg.Enabled() {
		logger.Info("Using in-memory session store")
		return session.NewMemoryStore(), func() {}, nil
	}

	store, err := session.NewRedisStore(ctx, session.RedisConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Using redis session store", "host", cfg.Host)
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close redis client", "error", err)
		}
	}, nil
}
