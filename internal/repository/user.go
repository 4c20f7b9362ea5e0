package repository

import (
	"context"
	"errors"

	"github.com/vladimiradmaev/translator-bot/internal/database"
	"github.com/vladimiradmaev/translator-bot/internal/domain"
	apperrors "github.com/vladimiradmaev/translator-bot/internal/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository handles user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ domain.UserRepository = (*UserRepository)(nil)

// GetOrCreate returns the stored profile, inserting profile first if the user is new.
// Concurrent first contacts of the same user end up with a single row.
func (r *UserRepository) GetOrCreate(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	row := fromProfile(profile)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "telegram_id"}}, DoNothing: true}).
		Create(&row).Error
	if err != nil {
		return nil, err
	}
	return r.GetByTelegramID(ctx, profile.TelegramID)
}

// GetByTelegramID gets a user by their Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.UserProfile, error) {
	var user database.User
	err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return toProfile(&user), nil
}

// UpdateSettings writes the given columns for one user
func (r *UserRepository) UpdateSettings(ctx context.Context, telegramID int64, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&database.User{}).
		Where("telegram_id = ?", telegramID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SaveQuota stores the daily counter and the day it belongs to
func (r *UserRepository) SaveQuota(ctx context.Context, telegramID int64, quota domain.QuotaState) error {
	return r.UpdateSettings(ctx, telegramID, map[string]interface{}{
		"daily_translations": quota.Used,
		"daily_reset_at":     quota.Day,
	})
}

func fromProfile(p *domain.UserProfile) database.User {
	return database.User{
		TelegramID:        p.TelegramID,
		Username:          p.Username,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		InterfaceLanguage: p.InterfaceLanguage,
		TargetLanguage:    p.TargetLanguage,
		TranslationStyle:  p.TranslationStyle,
		IsPremium:         p.IsPremium,
		DailyTranslations: p.DailyTranslations,
		DailyResetAt:      p.DailyResetAt,
		AutoVoice:         p.AutoVoice,
		VoiceSpeed:        p.VoiceSpeed,
	}
}

func toProfile(u *database.User) *domain.UserProfile {
	return &domain.UserProfile{
		ID:                u.ID,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
		TelegramID:        u.TelegramID,
		Username:          u.Username,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		InterfaceLanguage: u.InterfaceLanguage,
		TargetLanguage:    u.TargetLanguage,
		TranslationStyle:  u.TranslationStyle,
		IsPremium:         u.IsPremium,
		DailyTranslations: u.DailyTranslations,
		DailyResetAt:      u.DailyResetAt,
		AutoVoice:         u.AutoVoice,
		VoiceSpeed:        u.VoiceSpeed,
	}
}
