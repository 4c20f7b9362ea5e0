package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/vladimiradmaev/translator-bot/internal/logger"
)

// Translation providers
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config is read from the environment. Nested structs use their field name as
// prefix, e.g. DB_HOST, REDIS_HOST, LOG_OUTPUT_PATH.
type Config struct {
	TelegramToken       string  `envconfig:"BOT_TOKEN"`
	OpenAIAPIKey        string  `envconfig:"OPENAI_API_KEY"`
	GeminiAPIKey        string  `envconfig:"GEMINI_API_KEY"`
	TranslationProvider string  `envconfig:"TRANSLATION_PROVIDER" default:"openai"`
	BasicModel          string  `envconfig:"BASIC_MODEL" default:"gpt-4o-mini"`
	EnhanceModel        string  `envconfig:"ENHANCE_MODEL" default:"gpt-4o"`
	GeminiModel         string  `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	AdminID             int64   `envconfig:"ADMIN_ID" default:"0"`
	FreeDailyLimit      int     `envconfig:"FREE_DAILY_LIMIT" default:"5"`
	MaxVoiceBytes       int64   `envconfig:"MAX_VOICE_BYTES" default:"20971520"`
	DefaultVoiceSpeed   float64 `envconfig:"DEFAULT_VOICE_SPEED" default:"1.0"`
	DB                  DBConfig
	Redis               RedisConfig
	Logger              LoggerConfig `envconfig:"LOG"`
}

type DBConfig struct {
	Host     string `default:"localhost"`
	Port     string `default:"5432"`
	User     string `default:"postgres"`
	Password string `default:"postgres"`
	Name     string `default:"translator_bot"`
}

// DSN returns the postgres connection string
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// RedisConfig is optional; an empty host keeps sessions in process memory
type RedisConfig struct {
	Host     string
	Port     string `default:"6379"`
	Password string
	DB       int `default:"0"`
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type LoggerConfig struct {
	Level      string `default:"info"`
	OutputPath string `split_words:"true" default:"logs/app.log"`
	Format     string `default:"json"`
}

// ToLogger converts to the logger package configuration
func (c LoggerConfig) ToLogger() logger.Config {
	return logger.Config{
		Level:      parseLogLevel(c.Level),
		OutputPath: c.OutputPath,
		Format:     c.Format,
	}
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

// Load reads an optional .env file and the process environment, then validates
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every missing or inconsistent setting at once
func (c *Config) Validate() error {
	var problems []string

	if c.TelegramToken == "" {
		problems = append(problems, "BOT_TOKEN is required")
	}
	switch c.TranslationProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			problems = append(problems, "OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			problems = append(problems, "GEMINI_API_KEY is required for the gemini provider")
		}
	default:
		problems = append(problems, fmt.Sprintf("unsupported TRANSLATION_PROVIDER %q", c.TranslationProvider))
	}
	if c.FreeDailyLimit <= 0 {
		problems = append(problems, "FREE_DAILY_LIMIT must be positive")
	}
	if c.DefaultVoiceSpeed <= 0 {
		problems = append(problems, "DEFAULT_VOICE_SPEED must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// IsAdmin reports whether telegramID is the configured administrator
func (c *Config) IsAdmin(telegramID int64) bool {
	return c.AdminID != 0 && c.AdminID == telegramID
}
