package session

import (
	"context"
	"time"

	"github.com/vladimiradmaev/translator-bot/internal/domain"
)

// Entry is the last translation shown to a user, kept so that follow-up
// buttons can work without asking the provider again
type Entry struct {
	SourceText string                     `json:"source_text"`
	Translated string                     `json:"translated"`
	TargetLang string                     `json:"target_lang"`
	Metadata   domain.TranslationMetadata `json:"metadata"`
	CreatedAt  time.Time                  `json:"created_at"`
}

// Store keeps at most one entry per user; a later Save replaces the earlier one
type Store interface {
	Save(ctx context.Context, userID int64, entry Entry) error
	Load(ctx context.Context, userID int64) (Entry, bool, error)
}
