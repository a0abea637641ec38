package scheduler

import (
	"context"
	"time"

	"github.com/okarpenko/water-meter-bot/internal/db"
	"go.uber.org/zap"
)

// UserLister provides the broadcast audience
type UserLister interface {
	ListUsers(ctx context.Context) ([]db.User, error)
}

// Sender delivers one reminder message
type Sender interface {
	SendText(chatID int64, text string) error
}

// Reminder broadcasts a submit-your-readings message once a day when
// exactly the configured number of days remains before month end
type Reminder struct {
	users      UserLister
	sender     Sender
	message    string
	daysBefore int
	interval   time.Duration
	logger     *zap.Logger
}

// NewReminder creates the reminder scheduler
func NewReminder(users UserLister, sender Sender, message string, daysBefore int, interval time.Duration, logger *zap.Logger) *Reminder {
	return &Reminder{
		users:      users,
		sender:     sender,
		message:    message,
		daysBefore: daysBefore,
		interval:   interval,
		logger:     logger,
	}
}

// Run ticks until the context is cancelled. The first check happens
// shortly after startup so a restart on the reminder day still sends.
func (r *Reminder) Run(ctx context.Context) {
	timer := time.NewTimer(10 * time.Second)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reminder scheduler stopped")
			return
		case <-timer.C:
			r.check(ctx, time.Now())
			timer.Reset(r.interval)
		}
	}
}

// check broadcasts when the day matches; per-recipient failures are
// logged and do not stop the loop
func (r *Reminder) check(ctx context.Context, now time.Time) {
	days := DaysUntilMonthEnd(now)
	if days != r.daysBefore {
		return
	}

	users, err := r.users.ListUsers(ctx)
	if err != nil {
		r.logger.Error("failed to list reminder recipients", zap.Error(err))
		return
	}

	sent := 0
	for _, user := range users {
		if err := r.sender.SendText(user.ChatID, r.message); err != nil {
			r.logger.Warn("failed to send reminder",
				zap.Error(err),
				zap.Int64("chat_id", user.ChatID),
			)
			continue
		}
		sent++
	}

	r.logger.Info("reminders sent",
		zap.Int("recipients", len(users)),
		zap.Int("delivered", sent),
	)
}

// DaysUntilMonthEnd returns how many whole days remain until the last
// day of t's month
func DaysUntilMonthEnd(t time.Time) int {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	lastDay := firstOfNext.AddDate(0, 0, -1)
	return lastDay.Day() - t.Day()
}
