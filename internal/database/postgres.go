package database

import (
	"fmt"
	"time"

	"github.com/vladimiradmaev/translator-bot/internal/config"
	"github.com/vladimiradmaev/translator-bot/internal/database/migrations"
	"github.com/vladimiradmaev/translator-bot/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type User struct {
	gorm.Model
	TelegramID        int64 `gorm:"uniqueIndex"`
	Username          string
	FirstName         string
	LastName          string
	InterfaceLanguage string `gorm:"size:8"`
	TargetLanguage    string `gorm:"size:8"`
	TranslationStyle  string `gorm:"size:32"`
	IsPremium         bool
	DailyTranslations int
	DailyResetAt      time.Time
	AutoVoice         bool
	VoiceSpeed        float64
}

type TranslationHistory struct {
	gorm.Model
	TelegramID     int64 `gorm:"index"`
	SourceText     string
	SourceLanguage string `gorm:"size:16"`
	TranslatedText string
	TargetLanguage string `gorm:"size:8"`
	Style          string `gorm:"size:32"`
	IsVoice        bool
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("Database connection established and migrations completed", "host", cfg.Host, "db", cfg.Name)
	return db, nil
}

// Migrate creates the model tables, then applies the SQL migrations that depend on them
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &TranslationHistory{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	if err := migrations.LoadEmbedded(); err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := migrations.RunMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if len(applied) > 0 {
		logger.Info("Applied migrations", "ids", applied)
	}
	return nil
}
