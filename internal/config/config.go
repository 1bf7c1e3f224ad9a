package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config содержит всю конфигурацию приложения.
// Собирается один раз в main и передаётся явно — никаких os.Getenv в бизнес-логике.
type Config struct {
	TelegramToken   string
	AdminTelegramID int64
	DBDSN           string
	Port            string
	PublicURL       string // базовый URL бэкенда, используется для регистрации вебхука
	FrontendURL     string // URL web app для кнопки записи
	Environment     string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:         os.Getenv("DB_DSN"),
		Port:          os.Getenv("PORT"),
		PublicURL:     os.Getenv("PUBLIC_URL"),
		FrontendURL:   os.Getenv("FRONTEND_URL"),
		Environment:   os.Getenv("ENV"),
	}

	if v := os.Getenv("ADMIN_TELEGRAM_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_TELEGRAM_ID must be a number: %w", err)
		}
		cfg.AdminTelegramID = id
	}

	// Дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Port == "" {
		cfg.Port = "5000"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is required but not set")
	}
	if c.AdminTelegramID == 0 {
		return fmt.Errorf("ADMIN_TELEGRAM_ID is required but not set")
	}
	return nil
}

// IsAdmin проверяет, является ли telegram ID администратором.
// Единственная проверка доступа в приложении — простое сравнение с настроенным ID.
func (c *Config) IsAdmin(telegramID int64) bool {
	return telegramID == c.AdminTelegramID
}
