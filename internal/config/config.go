package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	ServiceName string
	HealthPort  int
	Telegram    TelegramConfig
	Database    DatabaseConfig
	RabbitMQ    RabbitMQConfig
	Readings    ReadingsConfig
	Reminder    ReminderConfig
}

// TelegramConfig holds bot credentials and the admin shared secret
type TelegramConfig struct {
	BotToken             string
	AdminBotToken        string
	AdminPassword        string
	AdminSessionTTLHours int
	PollTimeoutSeconds   int
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// RabbitMQConfig holds the optional reading-event publisher settings.
// Publishing is disabled when URL is empty.
type RabbitMQConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

// ReadingsConfig holds reading-submission settings
type ReadingsConfig struct {
	MaxMetersPerUser int
	SpikeThreshold   int64
}

// ReminderConfig holds the month-end reminder settings
type ReminderConfig struct {
	DaysBeforeMonthEnd int
	CheckIntervalHours int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "water-meter-bot"),
		HealthPort:  getEnvAsInt("HEALTH_PORT", 8080),
		Telegram: TelegramConfig{
			BotToken:             getEnv("BOT_TOKEN", ""),
			AdminBotToken:        getEnv("ADMIN_BOT_TOKEN", ""),
			AdminPassword:        getEnv("ADMIN_PASSWORD", ""),
			AdminSessionTTLHours: getEnvAsInt("ADMIN_SESSION_TTL_HOURS", 24),
			PollTimeoutSeconds:   getEnvAsInt("TELEGRAM_POLL_TIMEOUT_SECONDS", 60),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		RabbitMQ: RabbitMQConfig{
			URL:        getEnv("RABBITMQ_URL", ""),
			Exchange:   getEnv("RABBITMQ_EXCHANGE", "water-meter.events.exchange"),
			RoutingKey: getEnv("RABBITMQ_ROUTING_KEY", "meter.reading.accepted"),
		},
		Readings: ReadingsConfig{
			MaxMetersPerUser: getEnvAsInt("MAX_METERS_PER_USER", 3),
			SpikeThreshold:   int64(getEnvAsInt("READING_SPIKE_THRESHOLD", 100)),
		},
		Reminder: ReminderConfig{
			DaysBeforeMonthEnd: getEnvAsInt("REMINDER_DAYS_BEFORE_MONTH_END", 5),
			CheckIntervalHours: getEnvAsInt("REMINDER_CHECK_INTERVAL_HOURS", 24),
		},
	}

	// Validate required fields
	if cfg.Telegram.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required but not set in environment variables")
	}
	if cfg.Telegram.AdminBotToken == "" {
		return nil, fmt.Errorf("ADMIN_BOT_TOKEN is required but not set in environment variables")
	}
	if cfg.Telegram.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD is required but not set in environment variables")
	}
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set in environment variables")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
