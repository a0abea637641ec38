package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okarpenko/water-meter-bot/internal/consumption"
	"github.com/okarpenko/water-meter-bot/internal/db"
	"github.com/okarpenko/water-meter-bot/internal/mq"
	"go.uber.org/zap"
)

// ErrNegativeReading rejects a reading below zero before it reaches storage
var ErrNegativeReading = errors.New("reading must be a non-negative integer")

// ReadingStore is the repository behavior the reading service needs
type ReadingStore interface {
	GetCounter(ctx context.Context, counterID int64) (*db.Counter, error)
	InsertReading(ctx context.Context, counterID int64, value int64) (*db.Reading, *int64, error)
	AppendAudit(ctx context.Context, chatID int64, action string) error
}

// ReadingResult describes an accepted submission
type ReadingResult struct {
	Counter    *db.Counter
	Value      int64
	Previous   *int64
	RecordedAt time.Time
	Flagged    bool
	FlagReason string
}

// Readings handles reading submission: validation, the transactional
// insert-and-cache-shift, the consumption check and event publishing
type Readings struct {
	store      ReadingStore
	publisher  *mq.Publisher // nil when event publishing is disabled
	checker    *consumption.Checker
	routingKey string
	logger     *zap.Logger
}

// NewReadings creates a new reading service
func NewReadings(store ReadingStore, publisher *mq.Publisher, checker *consumption.Checker, routingKey string, logger *zap.Logger) *Readings {
	return &Readings{
		store:      store,
		publisher:  publisher,
		checker:    checker,
		routingKey: routingKey,
		logger:     logger,
	}
}

// Submit validates and persists one reading. On any error the store is
// left untouched: a MonotonicityError or ErrCounterNotFound means the
// submission was rejected, anything else is a storage failure.
func (s *Readings) Submit(ctx context.Context, counterID int64, value int64) (*ReadingResult, error) {
	if value < 0 {
		return nil, ErrNegativeReading
	}

	counter, err := s.store.GetCounter(ctx, counterID)
	if err != nil {
		return nil, err
	}

	reading, previous, err := s.store.InsertReading(ctx, counterID, value)
	if err != nil {
		return nil, err
	}

	flagged, reason := s.checker.Check(value, previous)
	if flagged {
		s.logger.Warn("consumption spike flagged",
			zap.Int64("chat_id", counter.ChatID),
			zap.Int64("counter_id", counterID),
			zap.Int64("value", value),
			zap.String("reason", reason),
		)
	}

	s.audit(ctx, counter.ChatID, fmt.Sprintf("reading accepted: counter=%d value=%d", counterID, value))

	result := &ReadingResult{
		Counter:    counter,
		Value:      value,
		Previous:   previous,
		RecordedAt: reading.CreatedAt,
		Flagged:    flagged,
		FlagReason: reason,
	}

	s.publish(ctx, result)

	s.logger.Info("reading accepted",
		zap.Int64("chat_id", counter.ChatID),
		zap.Int64("counter_id", counterID),
		zap.Int64("value", value),
	)

	return result, nil
}

// publish emits the reading-accepted event after a successful commit.
// Publish failures are logged and never fail the submission.
func (s *Readings) publish(ctx context.Context, result *ReadingResult) {
	if s.publisher == nil {
		return
	}

	event := mq.ReadingAcceptedEvent{
		ChatID:        result.Counter.ChatID,
		CounterID:     result.Counter.ID,
		CounterAlias:  result.Counter.Alias,
		Value:         result.Value,
		PreviousValue: result.Previous,
		RecordedAt:    result.RecordedAt.Format(time.RFC3339),
		SpikeFlagged:  result.Flagged,
	}

	if err := s.publisher.PublishReadingAccepted(ctx, event, s.routingKey); err != nil {
		s.logger.Error("failed to publish reading-accepted event",
			zap.Error(err),
			zap.Int64("counter_id", result.Counter.ID),
		)
	}
}

func (s *Readings) audit(ctx context.Context, chatID int64, action string) {
	if err := s.store.AppendAudit(ctx, chatID, action); err != nil {
		s.logger.Warn("failed to append audit entry", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}
