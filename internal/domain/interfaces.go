package domain

import (
	"context"
)

// UserRepository persists user profiles
type UserRepository interface {
	GetOrCreate(ctx context.Context, profile *UserProfile) (*UserProfile, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*UserProfile, error)
	UpdateSettings(ctx context.Context, telegramID int64, fields map[string]interface{}) error
	SaveQuota(ctx context.Context, telegramID int64, quota QuotaState) error
}

// HistoryRepository persists translation records
type HistoryRepository interface {
	Add(ctx context.Context, record *TranslationRecord) error
	ListByUser(ctx context.Context, telegramID int64, limit int) ([]TranslationRecord, error)
}
