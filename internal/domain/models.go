package domain

import (
	"strings"
	"time"
)

// Default profile values applied on first contact
const (
	DefaultInterfaceLanguage = "ru"
	DefaultTargetLanguage    = "en"
	DefaultStyle             = "informal"
	DefaultVoiceSpeed        = 1.0
)

// UserProfile represents a telegram user and their translation settings
type UserProfile struct {
	ID                uint
	CreatedAt         time.Time
	UpdatedAt         time.Time
	TelegramID        int64
	Username          string
	FirstName         string
	LastName          string
	InterfaceLanguage string
	TargetLanguage    string
	TranslationStyle  string
	IsPremium         bool
	DailyTranslations int
	DailyResetAt      time.Time // Day the counter belongs to
	AutoVoice         bool
	VoiceSpeed        float64
}

// DisplayName returns the best available human name for the user
func (u *UserProfile) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	return u.Username
}

// TranslationRecord is an immutable history entry
type TranslationRecord struct {
	ID             uint
	TelegramID     int64
	SourceText     string
	SourceLanguage string
	TranslatedText string
	TargetLanguage string
	Style          string
	IsVoice        bool
	CreatedAt      time.Time
}

// TranslationMetadata is the structured byproduct of a translation call.
// Optional parts are empty when the provider did not return them.
type TranslationMetadata struct {
	SourceLang       string   `json:"source_lang"`
	BasicTranslation string   `json:"basic_translation,omitempty"`
	Alternatives     []string `json:"alternatives,omitempty"`
	Explanation      string   `json:"explanation,omitempty"`
	Grammar          string   `json:"grammar,omitempty"`
}

func (m TranslationMetadata) HasBasic() bool {
	return strings.TrimSpace(m.BasicTranslation) != ""
}

func (m TranslationMetadata) HasAlternatives() bool {
	return len(m.Alternatives) > 0
}

func (m TranslationMetadata) HasExplanation() bool {
	return strings.TrimSpace(m.Explanation) != ""
}

func (m TranslationMetadata) HasGrammar() bool {
	return strings.TrimSpace(m.Grammar) != ""
}

// TranslationResult is what the translator hands back on success
type TranslationResult struct {
	Text     string
	Metadata TranslationMetadata
}

// TwoStage reports whether the enhanced text differs from a returned basic translation
func (r *TranslationResult) TwoStage() bool {
	return r.Metadata.HasBasic() &&
		strings.TrimSpace(r.Metadata.BasicTranslation) != strings.TrimSpace(r.Text)
}
