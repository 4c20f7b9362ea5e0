package compose

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vladimiradmaev/translator-bot/internal/domain"
)

func TestTruncateExplanation(t *testing.T) {
	long := strings.Repeat("я", 250)
	got := TruncateExplanation(long, TextExplanationBudget)
	assert.Equal(t, strings.Repeat("я", 200)+"...", got)

	got = TruncateExplanation(long, VoiceExplanationBudget)
	assert.Equal(t, strings.Repeat("я", 150)+"...", got)

	short := "короткое объяснение"
	assert.Equal(t, short, TruncateExplanation(short, TextExplanationBudget))

	exact := strings.Repeat("a", 200)
	assert.Equal(t, exact, TruncateExplanation(exact, TextExplanationBudget))
}

func TestTranslation_SingleStageFreeUser(t *testing.T) {
	out := Translation(Input{
		Mode:           ModeText,
		Lang:           "ru",
		Translated:     "Привет",
		Metadata:       domain.TranslationMetadata{SourceLang: "en"},
		ShowQuota:      true,
		SourceLangName: "Английский",
		TargetLangName: "Русский",
		Remaining:      5,
	})
	assert.Equal(t, "🌍 *Английский → Русский*\n\n📝 *Перевод:*\nПривет\n\n📊 Осталось переводов сегодня: 4", out)
}

func TestTranslation_TwoStagePremium(t *testing.T) {
	meta := domain.TranslationMetadata{
		SourceLang:       "en",
		BasicTranslation: "Как ты делаешь?",
		Alternatives:     []string{"Как ты?", "Как жизнь?", "Что нового?"},
		Explanation:      strings.Repeat("x", 201),
	}
	out := Translation(Input{
		Mode:           ModeText,
		Lang:           "ru",
		Translated:     "Как дела?",
		Metadata:       meta,
		HasPremium:     true,
		SourceLangName: "Английский",
		TargetLangName: "Русский",
	})

	assert.Contains(t, out, "📝 *Точный перевод:*\nКак ты делаешь?\n\n✨ *Улучшенный перевод:*\nКак дела?")
	assert.Contains(t, out, "• Как ты?\n• Как жизнь?\n")
	assert.NotContains(t, out, "Что нового?")
	assert.Contains(t, out, "💡 *Объяснение:* "+strings.Repeat("x", 200)+"...")
	assert.NotContains(t, out, "Осталось")
	assert.Equal(t, 1, strings.Count(out, "Альтернативы"))
}

func TestTranslation_TwoStageNeedsPremiumAndDistinctBasic(t *testing.T) {
	meta := domain.TranslationMetadata{BasicTranslation: "Привет"}

	free := Translation(Input{Lang: "ru", Translated: "Приветик", Metadata: meta})
	assert.NotContains(t, free, "Точный перевод")
	assert.Contains(t, free, "📝 *Перевод:*\nПриветик")

	same := Translation(Input{Lang: "ru", Translated: " Привет", Metadata: meta, HasPremium: true})
	assert.NotContains(t, same, "Точный перевод")
	assert.Equal(t, same, Translation(Input{Lang: "ru", Translated: " Привет", Metadata: meta, HasPremium: true}))
}

func TestTranslation_VoiceLayout(t *testing.T) {
	meta := domain.TranslationMetadata{
		BasicTranslation: "Добрый день",
		Explanation:      strings.Repeat("y", 160),
	}
	out := Translation(Input{
		Mode:           ModeVoice,
		Lang:           "ru",
		SourceText:     "Good afternoon",
		Translated:     "Добрый день!",
		Metadata:       meta,
		HasPremium:     true,
		TargetLangName: "Русский",
	})
	assert.True(t, strings.HasPrefix(out, "🎤 *Распознано:* Good afternoon\n\n"))
	assert.Contains(t, out, strings.Repeat("y", 150)+"...")

	single := Translation(Input{Mode: ModeVoice, Lang: "ru", SourceText: "Hi", Translated: "Привет", TargetLangName: "Русский"})
	assert.Contains(t, single, "🌍 *Перевод (Русский):*\nПривет")
}

func TestTranslation_English(t *testing.T) {
	out := Translation(Input{Lang: "en", Translated: "Hallo", ShowQuota: true, Remaining: 3, SourceLangName: "English", TargetLangName: "German"})
	assert.Contains(t, out, "📝 *Translation:*\nHallo")
	assert.Contains(t, out, "Translations left today: 2")
}

func TestDisplayRemaining(t *testing.T) {
	assert.Equal(t, 4, DisplayRemaining(5))
	assert.Equal(t, 0, DisplayRemaining(1))
	assert.Equal(t, 0, DisplayRemaining(0))
}

func TestHistory(t *testing.T) {
	out := History([]domain.TranslationRecord{
		{SourceText: strings.Repeat("a", 60), TranslatedText: "b", CreatedAt: time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)},
		{SourceText: "voice", TranslatedText: "голос", IsVoice: true, CreatedAt: time.Date(2024, 5, 10, 9, 31, 0, 0, time.UTC)},
	}, "ru")

	assert.True(t, strings.HasPrefix(out, "📚 *Последние переводы:*\n\n"))
	assert.Contains(t, out, "🔸 "+strings.Repeat("a", 50)+"...\n   → b\n   📅 10.05.2024 09:30")
	assert.Contains(t, out, "🎤 voice")
}

func TestMetadataViews(t *testing.T) {
	meta := domain.TranslationMetadata{Alternatives: []string{"a", "b", "c"}, Explanation: " why ", Grammar: "rules"}
	assert.Equal(t, "🔄 *Альтернативы:*\n• a\n• b\n• c", Alternatives(meta, "ru"))
	assert.Equal(t, "💡 *Explanation:*\nwhy", Explanation(meta, "en"))
	assert.Equal(t, "📖 *Грамматика:*\nrules", Grammar(meta, "ru"))
}
