package repository

import (
	"context"

	"github.com/vladimiradmaev/translator-bot/internal/database"
	"github.com/vladimiradmaev/translator-bot/internal/domain"
	"gorm.io/gorm"
)

// HistoryRepository stores translation records
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

var _ domain.HistoryRepository = (*HistoryRepository)(nil)

// Add appends a record and fills in its id and timestamp
func (r *HistoryRepository) Add(ctx context.Context, record *domain.TranslationRecord) error {
	row := database.TranslationHistory{
		TelegramID:     record.TelegramID,
		SourceText:     record.SourceText,
		SourceLanguage: record.SourceLanguage,
		TranslatedText: record.TranslatedText,
		TargetLanguage: record.TargetLanguage,
		Style:          record.Style,
		IsVoice:        record.IsVoice,
	}
	if !record.CreatedAt.IsZero() {
		row.CreatedAt = record.CreatedAt
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	record.ID = row.ID
	record.CreatedAt = row.CreatedAt
	return nil
}

// ListByUser returns up to limit records, newest first
func (r *HistoryRepository) ListByUser(ctx context.Context, telegramID int64, limit int) ([]domain.TranslationRecord, error) {
	var rows []database.TranslationHistory
	err := r.db.WithContext(ctx).
		Where("telegram_id = ?", telegramID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]domain.TranslationRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.TranslationRecord{
			ID:             row.ID,
			TelegramID:     row.TelegramID,
			SourceText:     row.SourceText,
			SourceLanguage: row.SourceLanguage,
			TranslatedText: row.TranslatedText,
			TargetLanguage: row.TargetLanguage,
			Style:          row.Style,
			IsVoice:        row.IsVoice,
			CreatedAt:      row.CreatedAt,
		})
	}
	return records, nil
}
