package bot

import (
	"github.com/vladimiradmaev/translator-bot/internal/bot/handlers"
	"github.com/vladimiradmaev/translator-bot/internal/bot/keyboards"
)

// RegisterRoutes wires every handler into r
func RegisterRoutes(r *Router, deps handlers.Dependencies) {
	commands := handlers.NewCommandHandler(deps)
	translation := handlers.NewTranslationHandler(deps)
	voice := handlers.NewVoiceHandler(deps)
	callbacks := handlers.NewCallbackHandler(deps)
	export := handlers.NewExportHandler(deps)

	r.Command(commands.Start, "start")
	r.Command(commands.Help, "help", "помощь")
	r.Command(commands.Premium, "premium", "премиум")
	r.Command(commands.Language, "language", "язык")
	r.Command(commands.Style, "style", "стиль")
	r.Command(commands.Settings, "settings", "настройки")
	r.Command(commands.History, "history", "история")

	r.Voice(voice.Handle, VoicePolicy)

	r.Label(keyboards.LabelLanguage, commands.Language, TranslationPolicy)
	r.Label(keyboards.LabelStyle, commands.Style, TranslationPolicy)
	r.Label(keyboards.LabelSettings, commands.Settings, TranslationPolicy)
	r.Label(keyboards.LabelHelp, commands.Help, TranslationPolicy)
	r.Label(keyboards.LabelHistory, commands.History, TranslationPolicy)
	r.Label(keyboards.LabelExport, export.Prompt, TranslationPolicy)
	r.Label(keyboards.LabelPremium, commands.Premium, TranslationPolicy)

	r.Text(translation.Handle, TranslationPolicy)

	r.Callback(keyboards.CallbackMainMenu, commands.MainMenu)
	r.Callback(keyboards.CallbackLanguageMenu, commands.Language)
	r.Callback(keyboards.CallbackStyleMenu, commands.Style)
	r.Callback(keyboards.CallbackSettings, commands.Settings)
	r.Callback(keyboards.CallbackHelp, commands.Help)
	r.Callback(keyboards.CallbackPremium, commands.Premium)
	r.Callback(keyboards.CallbackHistory, commands.History)
	r.Callback(keyboards.CallbackExport, export.Prompt)
	r.Callback(keyboards.CallbackToggleVoice, callbacks.ToggleAutoVoice)
	r.Callback(keyboards.CallbackMoreAlts, callbacks.MoreAlternatives)
	r.Callback(keyboards.CallbackExplain, callbacks.Explain)
	r.Callback(keyboards.CallbackGrammar, callbacks.Grammar)
	r.Callback(keyboards.CallbackSpeak, callbacks.Speak)

	r.CallbackPrefix(keyboards.CallbackLanguagePrefix, callbacks.SelectLanguage)
	r.CallbackPrefix(keyboards.CallbackStylePrefix, callbacks.SelectStyle)
	r.CallbackPrefix(keyboards.CallbackSpeedPrefix, callbacks.SetVoiceSpeed)
	r.CallbackPrefix(keyboards.CallbackExportPrefix, export.Export)
}
