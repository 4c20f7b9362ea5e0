package keyboards

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/translator-bot/internal/bot/messages"
	"github.com/vladimiradmaev/translator-bot/internal/config"
	"github.com/vladimiradmaev/translator-bot/internal/domain"
)

// Reply keyboard labels; the router matches them literally
const (
	LabelLanguage = "🌍 Язык"
	LabelStyle    = "🎨 Стиль"
	LabelSettings = "⚙️ Настройки"
	LabelHelp     = "❓ Помощь"
	LabelHistory  = "📚 История"
	LabelExport   = "📄 Экспорт"
	LabelPremium  = "⭐ Премиум"
)

// Callback data
const (
	CallbackLanguagePrefix = "lang:"
	CallbackStylePrefix    = "style:"
	CallbackSpeedPrefix    = "speed:"
	CallbackExportPrefix   = "export:"

	CallbackLanguageMenu = "language"
	CallbackStyleMenu    = "style"
	CallbackSettings     = "settings"
	CallbackToggleVoice  = "toggle_voice"
	CallbackMoreAlts     = "more_alts"
	CallbackExplain      = "explain"
	CallbackGrammar      = "grammar"
	CallbackSpeak        = "speak"
	CallbackHistory      = "history"
	CallbackExport       = "export"
	CallbackMainMenu     = "main_menu"
	CallbackHelp         = "help"
	CallbackPremium      = "premium"
)

// Export formats offered by the export keyboard
var ExportFormats = []string{"txt", "csv", "json"}

// VoiceSpeeds offered in the settings keyboard
var VoiceSpeeds = []float64{0.75, 1.0, 1.25, 1.5}

// MainReply creates the persistent reply keyboard
func MainReply(isPremium bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(LabelLanguage),
			tgbotapi.NewKeyboardButton(LabelStyle),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(LabelSettings),
			tgbotapi.NewKeyboardButton(LabelHelp),
		),
	}
	if isPremium {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(LabelHistory),
			tgbotapi.NewKeyboardButton(LabelExport),
		))
	} else {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(LabelPremium),
		))
	}
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// MainMenu creates the main menu keyboard
func MainMenu(isPremium bool) tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(LabelLanguage, CallbackLanguageMenu),
			tgbotapi.NewInlineKeyboardButtonData(LabelStyle, CallbackStyleMenu),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(LabelSettings, CallbackSettings),
			tgbotapi.NewInlineKeyboardButtonData(LabelHelp, CallbackHelp),
		),
	)
	if isPremium {
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(LabelHistory, CallbackHistory),
				tgbotapi.NewInlineKeyboardButtonData(LabelExport, CallbackExport),
			),
		)
	} else {
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(LabelPremium, CallbackPremium),
			),
		)
	}
	return keyboard
}

// LanguageSelection lists target languages two per row, marking the current one
func LanguageSelection(current, lang string) tgbotapi.InlineKeyboardMarkup {
	return optionGrid(config.SupportedLanguages, current, CallbackLanguagePrefix, lang)
}

// StyleSelection lists translation styles, marking the current one
func StyleSelection(current, lang string) tgbotapi.InlineKeyboardMarkup {
	return optionGrid(config.TranslationStyles, current, CallbackStylePrefix, lang)
}

func optionGrid(options []config.Option, current, prefix, lang string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, o := range options {
		label := o.Label
		if o.Code == current {
			label = "✓ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, prefix+o.Code))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, backRow(lang))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Settings creates the settings keyboard for user, captioned in their interface language
func Settings(user *domain.UserProfile) tgbotapi.InlineKeyboardMarkup {
	lang := user.InterfaceLanguage
	voiceLabel := messages.Get(messages.ButtonAutoVoiceOff, lang)
	if user.AutoVoice {
		voiceLabel = messages.Get(messages.ButtonAutoVoiceOn, lang)
	}

	var speedRow []tgbotapi.InlineKeyboardButton
	for _, speed := range VoiceSpeeds {
		label := fmt.Sprintf("%gx", speed)
		if speed == user.VoiceSpeed {
			label = "✓ " + label
		}
		speedRow = append(speedRow, tgbotapi.NewInlineKeyboardButtonData(label,
			CallbackSpeedPrefix+strconv.FormatFloat(speed, 'f', -1, 64)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(voiceLabel, CallbackToggleVoice),
		),
		speedRow,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(LabelLanguage, CallbackLanguageMenu),
			tgbotapi.NewInlineKeyboardButtonData(LabelStyle, CallbackStyleMenu),
		),
		backRow(lang),
	)
}

// History creates the keyboard shown under the history list
func History(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(LabelExport, CallbackExport),
		),
		backRow(lang),
	)
}

// Export lists the export formats
func Export(lang string) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, format := range ExportFormats {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("📄 "+format, CallbackExportPrefix+format))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row, backRow(lang))
}

// TranslationActions picks the buttons shown under a translation
func TranslationActions(hasAlternatives, isPremium bool, lang string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if isPremium {
		first := tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(messages.Get(messages.ButtonSpeak, lang), CallbackSpeak),
		)
		if hasAlternatives {
			first = append(first, tgbotapi.NewInlineKeyboardButtonData(messages.Get(messages.ButtonAlternatives, lang), CallbackMoreAlts))
		}
		rows = append(rows, first,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(messages.Get(messages.ButtonExplain, lang), CallbackExplain),
				tgbotapi.NewInlineKeyboardButtonData(messages.Get(messages.ButtonGrammar, lang), CallbackGrammar),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(LabelHistory, CallbackHistory),
			),
		)
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(LabelPremium, CallbackPremium),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(LabelLanguage, CallbackLanguageMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// BackToMenu is a single "main menu" button
func BackToMenu(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(backRow(lang))
}

func backRow(lang string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(messages.Get(messages.ButtonMainMenu, lang), CallbackMainMenu),
	)
}
