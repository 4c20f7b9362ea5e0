package interfaces

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/translator-bot/internal/domain"
	"github.com/vladimiradmaev/translator-bot/internal/services"
)

// Sender is the part of the Telegram API the handlers talk to
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// UserServiceInterface defines the contract for profile, quota and history operations
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName, languageCode string) (*domain.UserProfile, error)
	GetUser(ctx context.Context, telegramID int64) (*domain.UserProfile, error)
	HasPremium(user *domain.UserProfile) bool
	IsAdmin(telegramID int64) bool
	CheckDailyLimit(ctx context.Context, telegramID int64) (bool, int, error)
	IncrementTranslationCount(ctx context.Context, telegramID int64) error
	SetTargetLanguage(ctx context.Context, telegramID int64, code string) error
	SetStyle(ctx context.Context, telegramID int64, style string) error
	ToggleAutoVoice(ctx context.Context, telegramID int64) (bool, error)
	SetVoiceSpeed(ctx context.Context, telegramID int64, speed float64) error
	AddTranslationHistory(ctx context.Context, record *domain.TranslationRecord) error
	GetUserHistory(ctx context.Context, telegramID int64, limit int) ([]domain.TranslationRecord, error)
}

// TranslatorInterface defines the contract for translation
type TranslatorInterface interface {
	Translate(ctx context.Context, req services.TranslateRequest) (*domain.TranslationResult, error)
	LanguageName(code, interfaceLang string) string
}

// VoiceInterface defines the contract for transcription and speech synthesis
type VoiceInterface interface {
	ProcessVoiceMessage(ctx context.Context, fileID string, files services.FileLinker) (string, error)
	GenerateSpeech(ctx context.Context, text, language string, premium bool, speed float64) ([]byte, error)
}
