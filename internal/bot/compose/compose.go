// Package compose builds the text of translation replies.
package compose

import (
	"fmt"
	"strings"

	"github.com/vladimiradmaev/translator-bot/internal/bot/messages"
	"github.com/vladimiradmaev/translator-bot/internal/domain"
)

// Mode selects the reply layout
type Mode int

const (
	ModeText Mode = iota
	ModeVoice
)

// Explanation budgets in characters
const (
	TextExplanationBudget  = 200
	VoiceExplanationBudget = 150
)

// MaxAlternatives is how many alternatives a reply shows
const MaxAlternatives = 2

// Input is everything the composer needs for one reply
type Input struct {
	Mode           Mode
	Lang           string // interface language
	SourceText     string
	Translated     string
	Metadata       domain.TranslationMetadata
	HasPremium     bool
	ShowQuota      bool
	SourceLangName string
	TargetLangName string
	Remaining      int // as returned by the quota check before this translation
}

// Translation formats a translation reply. The two-stage layout is used only for
// premium callers whose metadata carries a basic translation distinct from the result.
func Translation(in Input) string {
	var sb strings.Builder
	budget := TextExplanationBudget

	if in.Mode == ModeVoice {
		budget = VoiceExplanationBudget
		fmt.Fprintf(&sb, "%s %s\n\n", messages.Get(messages.LabelRecognized, in.Lang), in.SourceText)
	} else {
		fmt.Fprintf(&sb, "🌍 *%s → %s*\n\n", in.SourceLangName, in.TargetLangName)
	}

	result := domain.TranslationResult{Text: in.Translated, Metadata: in.Metadata}
	switch {
	case in.HasPremium && result.TwoStage():
		fmt.Fprintf(&sb, "%s\n%s\n\n", messages.Get(messages.LabelExact, in.Lang), in.Metadata.BasicTranslation)
		fmt.Fprintf(&sb, "%s\n%s", messages.Get(messages.LabelEnhanced, in.Lang), in.Translated)

		if in.Metadata.HasAlternatives() {
			fmt.Fprintf(&sb, "\n\n%s\n", messages.Get(messages.LabelAlternatives, in.Lang))
			for _, alt := range firstN(in.Metadata.Alternatives, MaxAlternatives) {
				fmt.Fprintf(&sb, "• %s\n", alt)
			}
		}
		if in.Metadata.HasExplanation() {
			fmt.Fprintf(&sb, "\n%s %s", messages.Get(messages.LabelExplanation, in.Lang),
				TruncateExplanation(strings.TrimSpace(in.Metadata.Explanation), budget))
		}
	case in.Mode == ModeVoice:
		fmt.Fprintf(&sb, "%s\n%s", messages.Format(messages.LabelTranslationTo, in.Lang, in.TargetLangName), in.Translated)
	default:
		fmt.Fprintf(&sb, "%s\n%s", messages.Get(messages.LabelTranslation, in.Lang), in.Translated)
	}

	if in.ShowQuota {
		fmt.Fprintf(&sb, "\n\n%s", messages.Format(messages.LabelRemaining, in.Lang, DisplayRemaining(in.Remaining)))
	}
	return sb.String()
}

// DisplayRemaining is the count shown after a translation: the pre-check value minus
// the translation just made. The stored counter is not touched.
func DisplayRemaining(remaining int) int {
	if remaining <= 0 {
		return 0
	}
	return remaining - 1
}

// TruncateExplanation cuts s to budget characters and appends "..." when it was longer
func TruncateExplanation(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget]) + "..."
}

// Alternatives lists every alternative of the last translation
func Alternatives(meta domain.TranslationMetadata, lang string) string {
	var sb strings.Builder
	sb.WriteString(messages.Get(messages.LabelAlternatives, lang))
	sb.WriteString("\n")
	for _, alt := range meta.Alternatives {
		fmt.Fprintf(&sb, "• %s\n", alt)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Explanation shows the full explanation of the last translation
func Explanation(meta domain.TranslationMetadata, lang string) string {
	return messages.Get(messages.LabelExplanation, lang) + "\n" + strings.TrimSpace(meta.Explanation)
}

// Grammar shows the grammar notes of the last translation
func Grammar(meta domain.TranslationMetadata, lang string) string {
	return messages.Get(messages.LabelGrammar, lang) + "\n" + strings.TrimSpace(meta.Grammar)
}

// History lists records with shortened previews
func History(records []domain.TranslationRecord, lang string) string {
	var sb strings.Builder
	sb.WriteString(messages.Get(messages.HistoryHeader, lang))
	sb.WriteString("\n\n")
	for _, r := range records {
		icon := "🔸"
		if r.IsVoice {
			icon = "🎤"
		}
		fmt.Fprintf(&sb, "%s %s\n   → %s\n   📅 %s\n\n",
			icon, preview(r.SourceText, 50), preview(r.TranslatedText, 50), r.CreatedAt.Format("02.01.2006 15:04"))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func preview(s string, n int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "..."
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
