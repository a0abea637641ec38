package main

import (
	"github.com/okarpenko/water-meter-bot/internal/config"
	"github.com/okarpenko/water-meter-bot/internal/logging"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.NewLogger(cfg.ServiceName)
}
