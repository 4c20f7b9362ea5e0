package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/vladimiradmaev/translator-bot/internal/config"
	"github.com/vladimiradmaev/translator-bot/internal/domain"
	apperrors "github.com/vladimiradmaev/translator-bot/internal/errors"
)

// HistoryLimit is how many records the history view shows
const HistoryLimit = 10

// UserService owns profiles, daily quotas and translation history
type UserService struct {
	users      domain.UserRepository
	history    domain.HistoryRepository
	dailyLimit int
	adminID    int64
	voiceSpeed float64
	now        func() time.Time
}

func NewUserService(users domain.UserRepository, history domain.HistoryRepository, dailyLimit int, adminID int64) *UserService {
	return &UserService{
		users:      users,
		history:    history,
		dailyLimit: dailyLimit,
		adminID:    adminID,
		voiceSpeed: domain.DefaultVoiceSpeed,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for day boundaries
func (s *UserService) WithClock(now func() time.Time) *UserService {
	s.now = now
	return s
}

// WithDefaultVoiceSpeed sets the speech speed given to new profiles
func (s *UserService) WithDefaultVoiceSpeed(speed float64) *UserService {
	s.voiceSpeed = ClampSpeed(speed)
	return s
}

// DailyLimit returns the free-tier ceiling
func (s *UserService) DailyLimit() int {
	return s.dailyLimit
}

// RegisterUser returns the stored profile, creating it with defaults on first contact
func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName, languageCode string) (*domain.UserProfile, error) {
	profile := &domain.UserProfile{
		TelegramID:        telegramID,
		Username:          username,
		FirstName:         firstName,
		LastName:          lastName,
		InterfaceLanguage: config.NormalizeInterfaceLanguage(languageCode),
		TargetLanguage:    domain.DefaultTargetLanguage,
		TranslationStyle:  domain.DefaultStyle,
		VoiceSpeed:        s.voiceSpeed,
	}

	user, err := s.users.GetOrCreate(ctx, profile)
	if err != nil {
		return nil, wrapDB(fmt.Errorf("failed to register user: %w", err))
	}
	return user, nil
}

// GetUser returns the stored profile
func (s *UserService) GetUser(ctx context.Context, telegramID int64) (*domain.UserProfile, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, wrapDB(err)
	}
	return user, nil
}

// HasPremium reports whether premium features apply; the administrator always has them
func (s *UserService) HasPremium(user *domain.UserProfile) bool {
	return user.IsPremium || s.IsAdmin(user.TelegramID)
}

func (s *UserService) IsAdmin(telegramID int64) bool {
	return s.adminID != 0 && s.adminID == telegramID
}

// CheckDailyLimit reports whether the user may translate now and how many
// translations remain today. Premium users get domain.Unlimited.
func (s *UserService) CheckDailyLimit(ctx context.Context, telegramID int64) (bool, int, error) {
	user, err := s.GetUser(ctx, telegramID)
	if err != nil {
		return false, 0, err
	}
	if s.HasPremium(user) {
		return true, domain.Unlimited, nil
	}

	remaining := domain.QuotaFor(user, s.dailyLimit).Remaining(s.now())
	return remaining > 0, remaining, nil
}

// IncrementTranslationCount records one successful translation for today.
// Callers invoke it once per completed translation.
func (s *UserService) IncrementTranslationCount(ctx context.Context, telegramID int64) error {
	user, err := s.GetUser(ctx, telegramID)
	if err != nil {
		return err
	}

	next := domain.QuotaFor(user, s.dailyLimit).Increment(s.now())
	if err := s.users.SaveQuota(ctx, telegramID, next); err != nil {
		return wrapDB(fmt.Errorf("failed to save quota: %w", err))
	}
	return nil
}

// SetTargetLanguage changes the translation target
func (s *UserService) SetTargetLanguage(ctx context.Context, telegramID int64, code string) error {
	if !config.IsSupportedLanguage(code) {
		return apperrors.NewValidationError(fmt.Sprintf("unsupported language %q", code))
	}
	return s.update(ctx, telegramID, map[string]interface{}{"target_language": code})
}

// SetStyle changes the translation style
func (s *UserService) SetStyle(ctx context.Context, telegramID int64, style string) error {
	if !config.IsSupportedStyle(style) {
		return apperrors.NewValidationError(fmt.Sprintf("unsupported style %q", style))
	}
	return s.update(ctx, telegramID, map[string]interface{}{"translation_style": style})
}

// ToggleAutoVoice flips the auto-voice flag and returns the new value
func (s *UserService) ToggleAutoVoice(ctx context.Context, telegramID int64) (bool, error) {
	user, err := s.GetUser(ctx, telegramID)
	if err != nil {
		return false, err
	}
	enabled := !user.AutoVoice
	if err := s.update(ctx, telegramID, map[string]interface{}{"auto_voice": enabled}); err != nil {
		return false, err
	}
	return enabled, nil
}

// SetVoiceSpeed stores the speech speed multiplier
func (s *UserService) SetVoiceSpeed(ctx context.Context, telegramID int64, speed float64) error {
	if speed < MinSpeechSpeed || speed > MaxSpeechSpeed {
		return apperrors.NewValidationError(fmt.Sprintf("voice speed %.2f out of range", speed))
	}
	return s.update(ctx, telegramID, map[string]interface{}{"voice_speed": speed})
}

// AddTranslationHistory appends a record to the user's history
func (s *UserService) AddTranslationHistory(ctx context.Context, record *domain.TranslationRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now()
	}
	if err := s.history.Add(ctx, record); err != nil {
		return wrapDB(fmt.Errorf("failed to add history: %w", err))
	}
	return nil
}

// GetUserHistory returns up to limit records, newest first
func (s *UserService) GetUserHistory(ctx context.Context, telegramID int64, limit int) ([]domain.TranslationRecord, error) {
	records, err := s.history.ListByUser(ctx, telegramID, limit)
	if err != nil {
		return nil, wrapDB(fmt.Errorf("failed to get history: %w", err))
	}
	return records, nil
}

func (s *UserService) update(ctx context.Context, telegramID int64, fields map[string]interface{}) error {
	if err := s.users.UpdateSettings(ctx, telegramID, fields); err != nil {
		return wrapDB(fmt.Errorf("failed to update settings: %w", err))
	}
	return nil
}

// wrapDB keeps application errors as they are and marks everything else as a database failure
func wrapDB(err error) error {
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	return apperrors.NewDatabaseError(err)
}
