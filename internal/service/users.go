package service

import (
	"context"
	"fmt"

	"github.com/okarpenko/water-meter-bot/internal/db"
	"go.uber.org/zap"
)

// DefaultCounterAlias names the i-th counter created for a user
func DefaultCounterAlias(i int) string {
	return fmt.Sprintf("Лічильник-%d", i)
}

// UserStore is the repository behavior the user service needs
type UserStore interface {
	CreateUser(ctx context.Context, user *db.User) error
	GetUser(ctx context.Context, chatID int64) (*db.User, error)
	UpdateMetersCount(ctx context.Context, chatID int64, count int) error
	CreateCounter(ctx context.Context, chatID int64, alias string) (*db.Counter, error)
	ListCounters(ctx context.Context, chatID int64) ([]db.Counter, error)
	DeleteCounter(ctx context.Context, counterID int64) error
	AppendAudit(ctx context.Context, chatID int64, action string) error
}

// Users handles registration and profile maintenance
type Users struct {
	store  UserStore
	logger *zap.Logger
}

// NewUsers creates a new user service
func NewUsers(store UserStore, logger *zap.Logger) *Users {
	return &Users{store: store, logger: logger}
}

// Register persists a consented registration together with the declared
// number of default-named counters
func (s *Users) Register(ctx context.Context, user *db.User) error {
	if err := s.store.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	for i := 1; i <= user.MetersCount; i++ {
		if _, err := s.store.CreateCounter(ctx, user.ChatID, DefaultCounterAlias(i)); err != nil {
			return fmt.Errorf("failed to create counter %d: %w", i, err)
		}
	}

	s.audit(ctx, user.ChatID, fmt.Sprintf("registration completed, %d counters", user.MetersCount))

	s.logger.Info("user registered",
		zap.Int64("chat_id", user.ChatID),
		zap.Int("meters_count", user.MetersCount),
	)

	return nil
}

// ChangeMetersCount updates the declared counter count and reconciles
// the counter list: new default-named counters are appended, surplus
// counters are removed from the end of the list
func (s *Users) ChangeMetersCount(ctx context.Context, chatID int64, newCount int) error {
	counters, err := s.store.ListCounters(ctx, chatID)
	if err != nil {
		return fmt.Errorf("failed to list counters: %w", err)
	}

	if err := s.store.UpdateMetersCount(ctx, chatID, newCount); err != nil {
		return fmt.Errorf("failed to update meters count: %w", err)
	}

	for i := len(counters) + 1; i <= newCount; i++ {
		if _, err := s.store.CreateCounter(ctx, chatID, DefaultCounterAlias(i)); err != nil {
			return fmt.Errorf("failed to create counter %d: %w", i, err)
		}
	}

	for i := len(counters) - 1; i >= newCount; i-- {
		if err := s.store.DeleteCounter(ctx, counters[i].ID); err != nil {
			return fmt.Errorf("failed to delete counter %d: %w", counters[i].ID, err)
		}
	}

	s.audit(ctx, chatID, fmt.Sprintf("meters count changed to %d", newCount))

	return nil
}

func (s *Users) audit(ctx context.Context, chatID int64, action string) {
	if err := s.store.AppendAudit(ctx, chatID, action); err != nil {
		s.logger.Warn("failed to append audit entry", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}
