package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okarpenko/water-meter-bot/internal/consumption"
	"github.com/okarpenko/water-meter-bot/internal/db"
	"github.com/okarpenko/water-meter-bot/internal/repository"
	"github.com/okarpenko/water-meter-bot/internal/service"
	"go.uber.org/zap"
)

// fakeStore mimics the repository's reading semantics in memory:
// counters keyed by id, the monotonic check and the two-reading cache
// shift on insert.
type fakeStore struct {
	users     map[int64]*db.User
	counters  map[int64]*db.Counter
	nextID    int64
	readings  []db.Reading
	auditLog  []string
	listOrder []int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[int64]*db.User),
		counters: make(map[int64]*db.Counter),
		nextID:   1,
	}
}

func (f *fakeStore) CreateUser(ctx context.Context, user *db.User) error {
	f.users[user.ChatID] = user
	return nil
}

func (f *fakeStore) GetUser(ctx context.Context, chatID int64) (*db.User, error) {
	user, ok := f.users[chatID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStore) UpdateMetersCount(ctx context.Context, chatID int64, count int) error {
	user, ok := f.users[chatID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.MetersCount = count
	return nil
}

func (f *fakeStore) CreateCounter(ctx context.Context, chatID int64, alias string) (*db.Counter, error) {
	counter := &db.Counter{ID: f.nextID, ChatID: chatID, Alias: alias}
	f.counters[counter.ID] = counter
	f.listOrder = append(f.listOrder, counter.ID)
	f.nextID++
	return counter, nil
}

func (f *fakeStore) GetCounter(ctx context.Context, counterID int64) (*db.Counter, error) {
	counter, ok := f.counters[counterID]
	if !ok {
		return nil, repository.ErrCounterNotFound
	}
	return counter, nil
}

func (f *fakeStore) ListCounters(ctx context.Context, chatID int64) ([]db.Counter, error) {
	var out []db.Counter
	for _, id := range f.listOrder {
		if counter, ok := f.counters[id]; ok && counter.ChatID == chatID {
			out = append(out, *counter)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteCounter(ctx context.Context, counterID int64) error {
	if _, ok := f.counters[counterID]; !ok {
		return repository.ErrCounterNotFound
	}
	delete(f.counters, counterID)
	return nil
}

func (f *fakeStore) InsertReading(ctx context.Context, counterID int64, value int64) (*db.Reading, *int64, error) {
	counter, ok := f.counters[counterID]
	if !ok {
		return nil, nil, repository.ErrCounterNotFound
	}

	if counter.LastReading != nil && value <= *counter.LastReading {
		return nil, nil, &repository.MonotonicityError{LastReading: *counter.LastReading, Value: value}
	}

	reading := db.Reading{ID: int64(len(f.readings) + 1), CounterID: counterID, Value: value, CreatedAt: time.Now()}
	f.readings = append(f.readings, reading)

	previous := counter.LastReading
	counter.PreviousReading = counter.LastReading
	counter.LastReading = &value

	return &reading, previous, nil
}

func (f *fakeStore) AppendAudit(ctx context.Context, chatID int64, action string) error {
	f.auditLog = append(f.auditLog, action)
	return nil
}

func newReadings(store *fakeStore, threshold int64) *service.Readings {
	return service.NewReadings(store, nil, consumption.NewChecker(threshold), "", zap.NewNop())
}

func TestRegister_CreatesDefaultCounters(t *testing.T) {
	store := newFakeStore()
	users := service.NewUsers(store, zap.NewNop())

	err := users.Register(context.Background(), &db.User{
		ChatID:        100,
		FullName:      "Іваненко Іван",
		AccountNumber: "111",
		MetersCount:   3,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	counters, _ := store.ListCounters(context.Background(), 100)
	if len(counters) != 3 {
		t.Fatalf("Expected 3 default counters, got %d", len(counters))
	}
	if counters[0].Alias != "Лічильник-1" || counters[2].Alias != "Лічильник-3" {
		t.Errorf("Expected sequential default aliases, got '%s' and '%s'", counters[0].Alias, counters[2].Alias)
	}
}

func TestChangeMetersCount_AppendsNewCounters(t *testing.T) {
	store := newFakeStore()
	users := service.NewUsers(store, zap.NewNop())
	ctx := context.Background()

	if err := users.Register(ctx, &db.User{ChatID: 100, MetersCount: 1}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := users.ChangeMetersCount(ctx, 100, 3); err != nil {
		t.Fatalf("ChangeMetersCount failed: %v", err)
	}

	counters, _ := store.ListCounters(ctx, 100)
	if len(counters) != 3 {
		t.Fatalf("Expected 3 counters after increase, got %d", len(counters))
	}
	if store.users[100].MetersCount != 3 {
		t.Errorf("Expected declared count 3, got %d", store.users[100].MetersCount)
	}
}

func TestChangeMetersCount_RemovesSurplusFromEnd(t *testing.T) {
	store := newFakeStore()
	users := service.NewUsers(store, zap.NewNop())
	ctx := context.Background()

	if err := users.Register(ctx, &db.User{ChatID: 100, MetersCount: 3}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := users.ChangeMetersCount(ctx, 100, 1); err != nil {
		t.Fatalf("ChangeMetersCount failed: %v", err)
	}

	counters, _ := store.ListCounters(ctx, 100)
	if len(counters) != 1 {
		t.Fatalf("Expected 1 counter after decrease, got %d", len(counters))
	}
	if counters[0].Alias != "Лічильник-1" {
		t.Errorf("Expected the first counter to survive, got '%s'", counters[0].Alias)
	}
}

func TestSubmit_FirstReading(t *testing.T) {
	store := newFakeStore()
	counter, _ := store.CreateCounter(context.Background(), 100, "Лічильник-1")
	readings := newReadings(store, 100)

	result, err := readings.Submit(context.Background(), counter.ID, 1250)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if result.Previous != nil {
		t.Errorf("Expected no previous value for a first reading, got %d", *result.Previous)
	}
	if result.Flagged {
		t.Error("Expected first reading to never be flagged")
	}
	if store.counters[counter.ID].LastReading == nil || *store.counters[counter.ID].LastReading != 1250 {
		t.Error("Expected last reading cache to hold the new value")
	}
}

func TestSubmit_ShiftsReadingCache(t *testing.T) {
	store := newFakeStore()
	counter, _ := store.CreateCounter(context.Background(), 100, "Лічильник-1")
	readings := newReadings(store, 100)
	ctx := context.Background()

	values := []int64{100, 150, 210}
	for _, v := range values {
		if _, err := readings.Submit(ctx, counter.ID, v); err != nil {
			t.Fatalf("Submit(%d) failed: %v", v, err)
		}
	}

	c := store.counters[counter.ID]
	if c.LastReading == nil || *c.LastReading != 210 {
		t.Error("Expected last reading 210 after three submissions")
	}
	if c.PreviousReading == nil || *c.PreviousReading != 150 {
		t.Error("Expected previous reading 150 after three submissions")
	}
	if len(store.readings) != 3 {
		t.Errorf("Expected 3 readings in the log, got %d", len(store.readings))
	}
}

func TestSubmit_RejectsNonIncreasingValue(t *testing.T) {
	store := newFakeStore()
	counter, _ := store.CreateCounter(context.Background(), 100, "Лічильник-1")
	readings := newReadings(store, 100)
	ctx := context.Background()

	if _, err := readings.Submit(ctx, counter.ID, 1250); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	_, err := readings.Submit(ctx, counter.ID, 1250)

	var monoErr *repository.MonotonicityError
	if !errors.As(err, &monoErr) {
		t.Fatalf("Expected MonotonicityError, got %v", err)
	}
	if monoErr.LastReading != 1250 {
		t.Errorf("Expected last reading 1250 in the error, got %d", monoErr.LastReading)
	}

	// Rejection leaves the counter and the log untouched.
	if len(store.readings) != 1 {
		t.Errorf("Expected the log unchanged after rejection, got %d readings", len(store.readings))
	}
	if *store.counters[counter.ID].LastReading != 1250 {
		t.Error("Expected last reading cache unchanged after rejection")
	}
}

func TestSubmit_RejectsNegativeValue(t *testing.T) {
	store := newFakeStore()
	counter, _ := store.CreateCounter(context.Background(), 100, "Лічильник-1")
	readings := newReadings(store, 100)

	_, err := readings.Submit(context.Background(), counter.ID, -5)

	if !errors.Is(err, service.ErrNegativeReading) {
		t.Fatalf("Expected ErrNegativeReading, got %v", err)
	}
	if len(store.readings) != 0 {
		t.Error("Expected no reading stored for negative input")
	}
}

func TestSubmit_UnknownCounter(t *testing.T) {
	store := newFakeStore()
	readings := newReadings(store, 100)

	_, err := readings.Submit(context.Background(), 999, 10)

	if !errors.Is(err, repository.ErrCounterNotFound) {
		t.Fatalf("Expected ErrCounterNotFound, got %v", err)
	}
}

func TestSubmit_FlagsConsumptionSpike(t *testing.T) {
	store := newFakeStore()
	counter, _ := store.CreateCounter(context.Background(), 100, "Лічильник-1")
	readings := newReadings(store, 100)
	ctx := context.Background()

	if _, err := readings.Submit(ctx, counter.ID, 1000); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	result, err := readings.Submit(ctx, counter.ID, 1500)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if !result.Flagged {
		t.Error("Expected a spike flag for a jump above the threshold")
	}
	if result.FlagReason == "" {
		t.Error("Expected a reason on the flagged result")
	}

	// Flagged readings are still accepted.
	if *store.counters[counter.ID].LastReading != 1500 {
		t.Error("Expected flagged reading to be stored")
	}
}
