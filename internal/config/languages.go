package config

// AutoLanguage is the source language code meaning "whatever was detected"
const AutoLanguage = "auto"

// Option is a selectable code with its button label
type Option struct {
	Code  string
	Label string
	// Names holds the display name per interface language
	Names map[string]string
}

// SupportedLanguages is the target-language selection table, in keyboard order
var SupportedLanguages = []Option{
	{Code: "en", Label: "🇬🇧 English", Names: names("Английский", "English")},
	{Code: "ru", Label: "🇷🇺 Русский", Names: names("Русский", "Russian")},
	{Code: "de", Label: "🇩🇪 Deutsch", Names: names("Немецкий", "German")},
	{Code: "fr", Label: "🇫🇷 Français", Names: names("Французский", "French")},
	{Code: "es", Label: "🇪🇸 Español", Names: names("Испанский", "Spanish")},
	{Code: "it", Label: "🇮🇹 Italiano", Names: names("Итальянский", "Italian")},
	{Code: "pt", Label: "🇵🇹 Português", Names: names("Португальский", "Portuguese")},
	{Code: "zh", Label: "🇨🇳 中文", Names: names("Китайский", "Chinese")},
	{Code: "ja", Label: "🇯🇵 日本語", Names: names("Японский", "Japanese")},
	{Code: "ko", Label: "🇰🇷 한국어", Names: names("Корейский", "Korean")},
	{Code: "tr", Label: "🇹🇷 Türkçe", Names: names("Турецкий", "Turkish")},
	{Code: "uk", Label: "🇺🇦 Українська", Names: names("Украинский", "Ukrainian")},
}

var autoDetected = Option{Code: AutoLanguage, Names: names("Автоопределение", "Auto-detected")}

func names(ru, en string) map[string]string {
	return map[string]string{"ru": ru, "en": en}
}

// TranslationStyles is the style selection table, in keyboard order
var TranslationStyles = []Option{
	{Code: "informal", Label: "😊 Неформальный"},
	{Code: "formal", Label: "🎩 Формальный"},
	{Code: "business", Label: "💼 Деловой"},
	{Code: "literary", Label: "📖 Литературный"},
}

// InterfaceLanguages are the languages the bot itself speaks
var InterfaceLanguages = []string{"ru", "en"}

// LanguageLabel returns the display label for a target language code
func LanguageLabel(code string) string {
	return lookup(SupportedLanguages, code)
}

// LanguageName resolves a language code to its name in the interface language.
// Empty and "auto" codes mean the detected language; unknown codes are returned as is.
func LanguageName(code, interfaceLang string) string {
	if code == "" || code == AutoLanguage {
		return localized(autoDetected, interfaceLang)
	}
	for _, o := range SupportedLanguages {
		if o.Code == code {
			return localized(o, interfaceLang)
		}
	}
	return code
}

func localized(o Option, interfaceLang string) string {
	if name, ok := o.Names[interfaceLang]; ok {
		return name
	}
	return o.Names[InterfaceLanguages[0]]
}

// StyleLabel returns the display label for a style code
func StyleLabel(code string) string {
	return lookup(TranslationStyles, code)
}

// IsSupportedLanguage reports whether code is a selectable target language
func IsSupportedLanguage(code string) bool {
	return contains(SupportedLanguages, code)
}

// IsSupportedStyle reports whether code is a selectable style
func IsSupportedStyle(code string) bool {
	return contains(TranslationStyles, code)
}

// NormalizeInterfaceLanguage maps a Telegram language_code onto an interface language
func NormalizeInterfaceLanguage(code string) string {
	if len(code) >= 2 {
		code = code[:2]
	}
	for _, l := range InterfaceLanguages {
		if l == code {
			return l
		}
	}
	return InterfaceLanguages[0]
}

func lookup(options []Option, code string) string {
	for _, o := range options {
		if o.Code == code {
			return o.Label
		}
	}
	return code
}

func contains(options []Option, code string) bool {
	for _, o := range options {
		if o.Code == code {
			return true
		}
	}
	return false
}
