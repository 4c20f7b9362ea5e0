// Package messages holds the user-facing texts in every interface language.
package messages

import "fmt"

// Message keys
const (
	Welcome              = "welcome"
	MainMenu             = "main_menu"
	Help                 = "help"
	PremiumInfo          = "premium_info"
	AlreadyPremium       = "already_premium"
	SelectLanguage       = "select_language"
	SelectStyle          = "select_style"
	LanguageChanged      = "language_changed"
	StyleChanged         = "style_changed"
	SettingsMenu         = "settings_menu"
	AutoVoiceOn          = "auto_voice_on"
	AutoVoiceOff         = "auto_voice_off"
	VoiceSpeedSet        = "voice_speed_set"
	PremiumRequired      = "premium_required"
	VoicePremiumRequired = "voice_premium_required"
	NoHistory            = "no_history"
	HistoryHeader        = "history_header"
	DailyLimitReached    = "daily_limit_reached"
	ProcessingVoice      = "processing_voice"
	VoiceFailed          = "voice_processing_failed"
	TranslationFailed    = "translation_failed"
	SpeechFailed         = "speech_failed"
	SelectExportFormat   = "select_export_format"
	ExportEmpty          = "export_empty"
	ExportCaption        = "export_caption"
	NoRecentTranslation  = "no_recent_translation"
	NoAlternatives       = "no_alternatives"
	NoExplanation        = "no_explanation"
	NoGrammar            = "no_grammar"
	RateLimited          = "rate_limited"
	GenericError         = "generic_error"

	// Composer labels
	LabelRecognized    = "label_recognized"
	LabelExact         = "label_exact"
	LabelEnhanced      = "label_enhanced"
	LabelTranslation   = "label_translation"
	LabelTranslationTo = "label_translation_to"
	LabelAlternatives  = "label_alternatives"
	LabelExplanation   = "label_explanation"
	LabelGrammar       = "label_grammar"
	LabelRemaining     = "label_remaining"

	// Inline button captions
	ButtonAutoVoiceOn  = "button_auto_voice_on"
	ButtonAutoVoiceOff = "button_auto_voice_off"
	ButtonSpeak        = "button_speak"
	ButtonAlternatives = "button_alternatives"
	ButtonExplain      = "button_explain"
	ButtonGrammar      = "button_grammar"
	ButtonMainMenu     = "button_main_menu"
)

const defaultLanguage = "ru"

var texts = map[string]map[string]string{
	"ru": {
		Welcome: `👋 Привет! Я бот-переводчик.

Отправьте мне текст, и я переведу его на выбранный язык.
⭐ С премиумом: двухэтапный перевод, голосовые сообщения, озвучка, история и экспорт.`,
		MainMenu: "Выберите действие:",
		Help: `❓ *Помощь*

Просто отправьте текст, и я переведу его.

*Команды:*
/start - Главное меню
/language, /язык - Язык перевода
/style, /стиль - Стиль перевода
/settings, /настройки - Настройки
/history, /история - История переводов
/premium, /премиум - Премиум
/help, /помощь - Эта справка`,
		PremiumInfo: `⭐ *Премиум*

• Безлимитные переводы
• Двухэтапный перевод: точный и улучшенный
• Альтернативы, объяснения и грамматика
• Перевод голосовых сообщений
• Озвучка переводов
• История и экспорт

Для подключения напишите администратору.`,
		AlreadyPremium:       "⭐ У вас уже есть премиум. Спасибо!",
		SelectLanguage:       "🌍 Текущий язык перевода: *%s*\n\nВыберите язык:",
		SelectStyle:          "🎨 Текущий стиль: *%s*\n\nВыберите стиль перевода:",
		LanguageChanged:      "✅ Язык перевода: %s",
		StyleChanged:         "✅ Стиль перевода: %s",
		SettingsMenu:         "⚙️ *Настройки*\n\nЯзык: %s\nСтиль: %s\nАвтоозвучка: %s\nСкорость речи: %gx",
		AutoVoiceOn:          "🔊 Автоозвучка включена",
		AutoVoiceOff:         "🔇 Автоозвучка выключена",
		VoiceSpeedSet:        "✅ Скорость речи: %gx",
		PremiumRequired:      "⭐ Эта функция доступна только с премиумом.",
		VoicePremiumRequired: "🎤 Перевод голосовых сообщений доступен только с премиумом.",
		NoHistory:            "📚 История переводов пуста.",
		HistoryHeader:        "📚 *Последние переводы:*",
		DailyLimitReached:    "😔 Вы исчерпали лимит бесплатных переводов на сегодня.\n\n⭐ Оформите премиум для безлимитных переводов!",
		ProcessingVoice:      "🎤 Обрабатываю голосовое сообщение...",
		VoiceFailed:          "❌ Не удалось распознать голосовое сообщение. Попробуйте еще раз.",
		TranslationFailed:    "❌ Не удалось выполнить перевод. Попробуйте позже.",
		SpeechFailed:         "❌ Не удалось озвучить перевод.",
		SelectExportFormat:   "📄 Выберите формат экспорта:",
		ExportEmpty:          "📄 Нечего экспортировать: история пуста.",
		ExportCaption:        "📄 Ваша история переводов",
		NoRecentTranslation:  "ℹ️ Нет недавнего перевода. Отправьте текст для перевода.",
		NoAlternatives:       "ℹ️ Для этого перевода нет альтернатив.",
		NoExplanation:        "ℹ️ Для этого перевода нет объяснения.",
		NoGrammar:            "ℹ️ Для этого перевода нет грамматических заметок.",
		RateLimited:          "⏳ Слишком много запросов. Подождите минуту.",
		GenericError:         "❌ Что-то пошло не так. Попробуйте позже.",

		LabelRecognized:    "🎤 *Распознано:*",
		LabelExact:         "📝 *Точный перевод:*",
		LabelEnhanced:      "✨ *Улучшенный перевод:*",
		LabelTranslation:   "📝 *Перевод:*",
		LabelTranslationTo: "🌍 *Перевод (%s):*",
		LabelAlternatives:  "🔄 *Альтернативы:*",
		LabelExplanation:   "💡 *Объяснение:*",
		LabelGrammar:       "📖 *Грамматика:*",
		LabelRemaining:     "📊 Осталось переводов сегодня: %d",

		ButtonAutoVoiceOn:  "🔊 Автоозвучка: вкл",
		ButtonAutoVoiceOff: "🔇 Автоозвучка: выкл",
		ButtonSpeak:        "🔊 Озвучить",
		ButtonAlternatives: "🔄 Варианты",
		ButtonExplain:      "💡 Объяснение",
		ButtonGrammar:      "📖 Грамматика",
		ButtonMainMenu:     "◀️ Главное меню",
	},
	"en": {
		Welcome: `👋 Hi! I am a translator bot.

Send me any text and I will translate it into your chosen language.
⭐ With premium: two-stage translation, voice messages, speech, history and export.`,
		MainMenu: "Choose an action:",
		Help: `❓ *Help*

Just send text and I will translate it.

*Commands:*
/start - Main menu
/language - Target language
/style - Translation style
/settings - Settings
/history - Translation history
/premium - Premium
/help - This help`,
		PremiumInfo: `⭐ *Premium*

• Unlimited translations
• Two-stage translation: exact and enhanced
• Alternatives, explanations and grammar notes
• Voice message translation
• Spoken translations
• History and export

Contact the administrator to subscribe.`,
		AlreadyPremium:       "⭐ You already have premium. Thank you!",
		SelectLanguage:       "🌍 Current target language: *%s*\n\nChoose a language:",
		SelectStyle:          "🎨 Current style: *%s*\n\nChoose a translation style:",
		LanguageChanged:      "✅ Target language: %s",
		StyleChanged:         "✅ Translation style: %s",
		SettingsMenu:         "⚙️ *Settings*\n\nLanguage: %s\nStyle: %s\nAuto voice: %s\nSpeech speed: %gx",
		AutoVoiceOn:          "🔊 Auto voice enabled",
		AutoVoiceOff:         "🔇 Auto voice disabled",
		VoiceSpeedSet:        "✅ Speech speed: %gx",
		PremiumRequired:      "⭐ This feature requires premium.",
		VoicePremiumRequired: "🎤 Voice message translation requires premium.",
		NoHistory:            "📚 Your translation history is empty.",
		HistoryHeader:        "📚 *Recent translations:*",
		DailyLimitReached:    "😔 You have used all free translations for today.\n\n⭐ Get premium for unlimited translations!",
		ProcessingVoice:      "🎤 Processing voice message...",
		VoiceFailed:          "❌ Could not recognize the voice message. Please try again.",
		TranslationFailed:    "❌ Translation failed. Please try again later.",
		SpeechFailed:         "❌ Could not speak the translation.",
		SelectExportFormat:   "📄 Choose an export format:",
		ExportEmpty:          "📄 Nothing to export: your history is empty.",
		ExportCaption:        "📄 Your translation history",
		NoRecentTranslation:  "ℹ️ No recent translation. Send some text first.",
		NoAlternatives:       "ℹ️ No alternatives for this translation.",
		NoExplanation:        "ℹ️ No explanation for this translation.",
		NoGrammar:            "ℹ️ No grammar notes for this translation.",
		RateLimited:          "⏳ Too many requests. Please wait a minute.",
		GenericError:         "❌ Something went wrong. Please try again later.",

		LabelRecognized:    "🎤 *Recognized:*",
		LabelExact:         "📝 *Exact translation:*",
		LabelEnhanced:      "✨ *Enhanced translation:*",
		LabelTranslation:   "📝 *Translation:*",
		LabelTranslationTo: "🌍 *Translation (%s):*",
		LabelAlternatives:  "🔄 *Alternatives:*",
		LabelExplanation:   "💡 *Explanation:*",
		LabelGrammar:       "📖 *Grammar:*",
		LabelRemaining:     "📊 Translations left today: %d",

		ButtonAutoVoiceOn:  "🔊 Auto voice: on",
		ButtonAutoVoiceOff: "🔇 Auto voice: off",
		ButtonSpeak:        "🔊 Speak",
		ButtonAlternatives: "🔄 Alternatives",
		ButtonExplain:      "💡 Explain",
		ButtonGrammar:      "📖 Grammar",
		ButtonMainMenu:     "◀️ Main menu",
	},
}

// Get returns the text for key in lang, falling back to Russian and then to the key itself
func Get(key, lang string) string {
	if t, ok := texts[lang][key]; ok {
		return t
	}
	if t, ok := texts[defaultLanguage][key]; ok {
		return t
	}
	return key
}

// Format is Get followed by fmt.Sprintf
func Format(key, lang string, args ...interface{}) string {
	return fmt.Sprintf(Get(key, lang), args...)
}
