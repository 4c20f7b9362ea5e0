package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vladimiradmaev/translator-bot/internal/domain"
	apperrors "github.com/vladimiradmaev/translator-bot/internal/errors"
)

// MemoryUserRepository keeps profiles in process memory. It backs service and
// handler tests and mirrors the column names accepted by UpdateSettings.
type MemoryUserRepository struct {
	mu     sync.Mutex
	users  map[int64]domain.UserProfile
	nextID uint
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[int64]domain.UserProfile)}
}

var _ domain.UserRepository = (*MemoryUserRepository)(nil)

func (r *MemoryUserRepository) GetOrCreate(_ context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[profile.TelegramID]; ok {
		return &u, nil
	}
	r.nextID++
	u := *profile
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.TelegramID] = u
	return &u, nil
}

func (r *MemoryUserRepository) GetByTelegramID(_ context.Context, telegramID int64) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[telegramID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) UpdateSettings(_ context.Context, telegramID int64, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[telegramID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	for column, value := range fields {
		switch column {
		case "target_language":
			u.TargetLanguage = value.(string)
		case "translation_style":
			u.TranslationStyle = value.(string)
		case "interface_language":
			u.InterfaceLanguage = value.(string)
		case "auto_voice":
			u.AutoVoice = value.(bool)
		case "voice_speed":
			u.VoiceSpeed = value.(float64)
		case "is_premium":
			u.IsPremium = value.(bool)
		case "daily_translations":
			u.DailyTranslations = value.(int)
		case "daily_reset_at":
			u.DailyResetAt = value.(time.Time)
		default:
			return apperrors.NewValidationError("unknown column " + column)
		}
	}
	u.UpdatedAt = time.Now()
	r.users[telegramID] = u
	return nil
}

func (r *MemoryUserRepository) SaveQuota(ctx context.Context, telegramID int64, quota domain.QuotaState) error {
	return r.UpdateSettings(ctx, telegramID, map[string]interface{}{
		"daily_translations": quota.Used,
		"daily_reset_at":     quota.Day,
	})
}

// Put stores a profile as is, replacing any existing one
func (r *MemoryUserRepository) Put(profile domain.UserProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.ID == 0 {
		r.nextID++
		profile.ID = r.nextID
	}
	r.users[profile.TelegramID] = profile
}

// MemoryHistoryRepository keeps translation records in process memory
type MemoryHistoryRepository struct {
	mu      sync.Mutex
	records []domain.TranslationRecord
}

func NewMemoryHistoryRepository() *MemoryHistoryRepository {
	return &MemoryHistoryRepository{}
}

var _ domain.HistoryRepository = (*MemoryHistoryRepository)(nil)

func (r *MemoryHistoryRepository) Add(_ context.Context, record *domain.TranslationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.ID = uint(len(r.records) + 1)
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *MemoryHistoryRepository) ListByUser(_ context.Context, telegramID int64, limit int) ([]domain.TranslationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.TranslationRecord
	for _, rec := range r.records {
		if rec.TelegramID == telegramID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Len returns the number of stored records
func (r *MemoryHistoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
