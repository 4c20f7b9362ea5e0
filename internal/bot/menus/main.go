package menus

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/translator-bot/internal/bot/keyboards"
	"github.com/vladimiradmaev/translator-bot/internal/bot/messages"
	"github.com/vladimiradmaev/translator-bot/internal/config"
	"github.com/vladimiradmaev/translator-bot/internal/domain"
	"github.com/vladimiradmaev/translator-bot/internal/interfaces"
	"github.com/vladimiradmaev/translator-bot/internal/logger"
)

// SendMarkdown sends text with Markdown parsing and retries as plain text when Telegram
// rejects the markup
func SendMarkdown(api interfaces.Sender, chatID int64, text string, markup interface{}) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	sent, err := api.Send(msg)
	if err == nil {
		return sent, nil
	}

	logger.Warn("Markdown send failed, retrying as plain text", "chat_id", chatID, "error", err)
	msg.ParseMode = ""
	return api.Send(msg)
}

// SendText sends a plain message
func SendText(api interfaces.Sender, chatID int64, text string) error {
	_, err := api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// SendWelcome sends the greeting with the reply keyboard followed by the main menu
func SendWelcome(api interfaces.Sender, chatID int64, lang string, isPremium bool) error {
	if _, err := SendMarkdown(api, chatID, messages.Get(messages.Welcome, lang), keyboards.MainReply(isPremium)); err != nil {
		return err
	}
	return SendMainMenu(api, chatID, lang, isPremium)
}

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api interfaces.Sender, chatID int64, lang string, isPremium bool) error {
	_, err := SendMarkdown(api, chatID, messages.Get(messages.MainMenu, lang), keyboards.MainMenu(isPremium))
	return err
}

// SendLanguageMenu shows the current target language and the selection keyboard
func SendLanguageMenu(api interfaces.Sender, chatID int64, user *domain.UserProfile) error {
	text := messages.Format(messages.SelectLanguage, user.InterfaceLanguage, config.LanguageLabel(user.TargetLanguage))
	_, err := SendMarkdown(api, chatID, text, keyboards.LanguageSelection(user.TargetLanguage, user.InterfaceLanguage))
	return err
}

// SendStyleMenu shows the current style and the selection keyboard
func SendStyleMenu(api interfaces.Sender, chatID int64, user *domain.UserProfile) error {
	text := messages.Format(messages.SelectStyle, user.InterfaceLanguage, config.StyleLabel(user.TranslationStyle))
	_, err := SendMarkdown(api, chatID, text, keyboards.StyleSelection(user.TranslationStyle, user.InterfaceLanguage))
	return err
}

// SendSettingsMenu sends the settings summary and keyboard
func SendSettingsMenu(api interfaces.Sender, chatID int64, user *domain.UserProfile) error {
	autoVoice := "❌"
	if user.AutoVoice {
		autoVoice = "✅"
	}
	text := messages.Format(messages.SettingsMenu, user.InterfaceLanguage,
		config.LanguageLabel(user.TargetLanguage),
		config.StyleLabel(user.TranslationStyle),
		autoVoice,
		user.VoiceSpeed,
	)
	_, err := SendMarkdown(api, chatID, text, keyboards.Settings(user))
	return err
}
