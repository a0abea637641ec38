package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okarpenko/water-meter-bot/internal/bot"
	"github.com/okarpenko/water-meter-bot/internal/config"
	"github.com/okarpenko/water-meter-bot/internal/consumption"
	"github.com/okarpenko/water-meter-bot/internal/db"
	"github.com/okarpenko/water-meter-bot/internal/health"
	"github.com/okarpenko/water-meter-bot/internal/mq"
	"github.com/okarpenko/water-meter-bot/internal/repository"
	"github.com/okarpenko/water-meter-bot/internal/scheduler"
	"github.com/okarpenko/water-meter-bot/internal/service"
	"github.com/okarpenko/water-meter-bot/internal/validator"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ProvideDBPool creates a new database pool instance
func ProvideDBPool(lc fx.Lifecycle, logger *zap.Logger, cfg *config.Config) (*pgxpool.Pool, error) {
	return db.NewPool(lc, logger, cfg.Database.URL)
}

// ProvideRepository creates a new repository instance
func ProvideRepository(pool *pgxpool.Pool) *repository.Repository {
	return repository.NewRepository(pool)
}

// ProvideValidator creates a new validator instance
func ProvideValidator(cfg *config.Config) *validator.Validator {
	return validator.NewValidator(cfg.Readings.MaxMetersPerUser)
}

// ProvideConsumptionChecker creates a new consumption spike checker instance
func ProvideConsumptionChecker(cfg *config.Config) *consumption.Checker {
	return consumption.NewChecker(cfg.Readings.SpikeThreshold)
}

// ProvideMQConnection creates a new RabbitMQ connection instance. Event
// publishing is optional: when RABBITMQ_URL is not set the bot runs
// without a broker.
func ProvideMQConnection(lc fx.Lifecycle, logger *zap.Logger, cfg *config.Config) (*mq.Connection, error) {
	if cfg.RabbitMQ.URL == "" {
		logger.Info("RABBITMQ_URL not set, event publishing disabled")
		return nil, nil
	}
	return mq.NewConnection(lc, logger, cfg.RabbitMQ.URL)
}

// ProvidePublisher creates a new publisher instance
func ProvidePublisher(conn *mq.Connection, cfg *config.Config, logger *zap.Logger) (*mq.Publisher, error) {
	if conn == nil {
		return nil, nil
	}
	return mq.NewPublisher(conn, cfg.RabbitMQ.Exchange, logger)
}

// ProvideUserService creates a new user service instance
func ProvideUserService(repo *repository.Repository, logger *zap.Logger) *service.Users {
	return service.NewUsers(repo, logger)
}

// ProvideReadingService creates a new reading service instance
func ProvideReadingService(
	repo *repository.Repository,
	publisher *mq.Publisher,
	checker *consumption.Checker,
	cfg *config.Config,
	logger *zap.Logger,
) *service.Readings {
	return service.NewReadings(repo, publisher, checker, cfg.RabbitMQ.RoutingKey, logger)
}

// ProvideReportService creates a new report service instance
func ProvideReportService(repo *repository.Repository, logger *zap.Logger) *service.Reports {
	return service.NewReports(repo, os.TempDir(), logger)
}

// ProvideResidentBot creates the resident-facing bot instance
func ProvideResidentBot(
	cfg *config.Config,
	repo *repository.Repository,
	users *service.Users,
	readings *service.Readings,
	v *validator.Validator,
	logger *zap.Logger,
) (*bot.ResidentBot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect resident bot: %w", err)
	}
	logger.Info("resident bot authorized", zap.String("username", api.Self.UserName))
	return bot.NewResidentBot(api, repo, users, readings, v, logger, cfg.Telegram.PollTimeoutSeconds), nil
}

// ProvideAdminBot creates the admin-facing bot instance
func ProvideAdminBot(
	cfg *config.Config,
	repo *repository.Repository,
	reports *service.Reports,
	logger *zap.Logger,
) (*bot.AdminBot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.AdminBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect admin bot: %w", err)
	}
	logger.Info("admin bot authorized", zap.String("username", api.Self.UserName))
	sessionTTL := time.Duration(cfg.Telegram.AdminSessionTTLHours) * time.Hour
	return bot.NewAdminBot(api, repo, reports, cfg.Telegram.AdminPassword, sessionTTL, logger, cfg.Telegram.PollTimeoutSeconds), nil
}

// ProvideReminder creates the monthly reminder scheduler instance
func ProvideReminder(
	repo *repository.Repository,
	resident *bot.ResidentBot,
	cfg *config.Config,
	logger *zap.Logger,
) *scheduler.Reminder {
	interval := time.Duration(cfg.Reminder.CheckIntervalHours) * time.Hour
	return scheduler.NewReminder(repo, resident, bot.ReminderMessage, cfg.Reminder.DaysBeforeMonthEnd, interval, logger)
}

func startHealthServer(lc fx.Lifecycle, logger *zap.Logger, cfg *config.Config) {
	health.NewServer(lc, logger, cfg.HealthPort)
}

func startBots(
	lc fx.Lifecycle,
	resident *bot.ResidentBot,
	admin *bot.AdminBot,
	reminder *scheduler.Reminder,
	logger *zap.Logger,
) {
	// Context for long-polling loops, cancelled on shutdown
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			logger.Info("starting bot update loops")
			go resident.Run(ctx)
			go admin.Run(ctx)
			go reminder.Run(ctx)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			logger.Info("bot stopped gracefully")
			return nil
		},
	})
}
