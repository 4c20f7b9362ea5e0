package main

import (
	"fmt"
	"os"

	"github.com/vladimiradmaev/translator-bot/internal/config"
)

func main() {
	fmt.Println("🔍 Проверка конфигурации...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Ошибка валидации конфигурации:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Конфигурация валидна!")
	fmt.Printf("📋 Детали конфигурации:\n")
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.TelegramToken))
	fmt.Printf("  - Provider: %s\n", cfg.TranslationProvider)
	fmt.Printf("  - OpenAI API Key: %s\n", maskToken(cfg.OpenAIAPIKey))
	fmt.Printf("  - Gemini API Key: %s\n", maskToken(cfg.GeminiAPIKey))
	fmt.Printf("  - Models: %s / %s\n", cfg.BasicModel, cfg.EnhanceModel)
	fmt.Printf("  - Free daily limit: %d\n", cfg.FreeDailyLimit)
	fmt.Printf("  - Admin ID: %d\n", cfg.AdminID)
	fmt.Printf("  - DB: %s@%s:%s/%s\n", cfg.DB.User, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
	if cfg.Redis.Enabled() {
		fmt.Printf("  - Redis: %s:%s (db %d)\n", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)
	} else {
		fmt.Printf("  - Redis: <не установлен>, сессии в памяти\n")
	}
	fmt.Printf("  - Log Level: %s\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskToken(token string) string {
	if token == "" {
		return "<не установлен>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
