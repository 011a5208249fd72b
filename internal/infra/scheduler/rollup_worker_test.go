package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/application/usecase/analytics"
	"github.com/finlit-cms/backend/internal/domain/entity"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
)

type stubUserRepository struct {
	users []*entity.User
	err   error
}

func (s *stubUserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users, nil
}

func (s *stubUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, errors.New("not implemented")
}

type stubTransactionRepository struct {
	transactions []*entity.Transaction
}

func (s *stubTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return errors.New("not implemented")
}

func (s *stubTransactionRepository) FindByUserAndRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Transaction, error) {
	var result []*entity.Transaction
	for _, tx := range s.transactions {
		if tx.UserID == userID && !tx.OccurredAt.Before(from) && tx.OccurredAt.Before(to) {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (s *stubTransactionRepository) FindAllInRange(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	return s.transactions, nil
}

func (s *stubTransactionRepository) List(ctx context.Context, userID uuid.UUID, filter adapter.TransactionFilter) (*entity.TransactionListResult, error) {
	return nil, errors.New("not implemented")
}

// recordingRollupStore keeps upserted summaries and can fail for one user.
type recordingRollupStore struct {
	mu        sync.Mutex
	summaries map[uuid.UUID]*entity.PeriodSummary
	failFor   uuid.UUID
}

func newRecordingRollupStore() *recordingRollupStore {
	return &recordingRollupStore{summaries: make(map[uuid.UUID]*entity.PeriodSummary)}
}

func (s *recordingRollupStore) Upsert(ctx context.Context, summary *entity.PeriodSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if summary.UserID == s.failFor {
		return errors.New("write failed")
	}
	s.summaries[summary.UserID] = summary
	return nil
}

func (s *recordingRollupStore) Get(ctx context.Context, userID uuid.UUID, year, month int) (*entity.PeriodSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary, ok := s.summaries[userID]
	if !ok {
		return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeRollupNotFound, "rollup not found", domainerror.ErrRollupNotFound)
	}
	return summary, nil
}

func newTestWorker(userRepo *stubUserRepository, txRepo *stubTransactionRepository, store *recordingRollupStore) *RollupWorker {
	recompute := analytics.NewRecomputeRollupUseCase(txRepo, store, 5)
	worker := NewRollupWorker(userRepo, recompute, WorkerConfig{PollInterval: time.Hour, Workers: 2})
	// Sweeps run as if started in April 2025, targeting March.
	worker.now = func() time.Time { return time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC) }
	return worker
}

func sweepUser(email string) *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Email:        email,
		Role:         entity.RoleUser,
		RegisteredAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRollupWorker_RunOnce(t *testing.T) {
	first := sweepUser("first@example.com")
	second := sweepUser("second@example.com")

	userRepo := &stubUserRepository{users: []*entity.User{first, second}}
	txRepo := &stubTransactionRepository{transactions: []*entity.Transaction{
		entity.NewIncome(first.ID, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(1000), "", entity.OriginManual),
		// Outside March, must not influence the sweep.
		entity.NewIncome(first.ID, time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(9000), "", entity.OriginManual),
	}}
	store := newRecordingRollupStore()

	worker := newTestWorker(userRepo, txRepo, store)
	worker.RunOnce(context.Background())

	if len(store.summaries) != 2 {
		t.Fatalf("stored %d rollups, want 2", len(store.summaries))
	}
	got := store.summaries[first.ID]
	if got.Year != 2025 || got.Month != 3 {
		t.Errorf("rollup key = (%d, %d), want (2025, 3)", got.Year, got.Month)
	}
	if !got.Resume.IncomeTotal.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("IncomeTotal = %s, want 1000", got.Resume.IncomeTotal)
	}
	if !store.summaries[second.ID].Resume.IncomeTotal.IsZero() {
		t.Error("user without activity should get an all-zero rollup")
	}
}

func TestRollupWorker_PerUserFailureDoesNotAbortSweep(t *testing.T) {
	failing := sweepUser("failing@example.com")
	healthy := sweepUser("healthy@example.com")

	userRepo := &stubUserRepository{users: []*entity.User{failing, healthy}}
	store := newRecordingRollupStore()
	store.failFor = failing.ID

	worker := newTestWorker(userRepo, &stubTransactionRepository{}, store)
	worker.RunOnce(context.Background())

	if _, ok := store.summaries[healthy.ID]; !ok {
		t.Error("healthy user's rollup missing after another user failed")
	}
	if _, ok := store.summaries[failing.ID]; ok {
		t.Error("failing user's rollup should not be stored")
	}
}

func TestRollupWorker_CancelledContextStopsSweep(t *testing.T) {
	var users []*entity.User
	for i := 0; i < 50; i++ {
		users = append(users, sweepUser(uuid.NewString()+"@example.com"))
	}
	store := newRecordingRollupStore()

	worker := newTestWorker(&stubUserRepository{users: users}, &stubTransactionRepository{}, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	worker.RunOnce(ctx)

	if len(store.summaries) == len(users) {
		t.Error("cancelled sweep should not process every user")
	}
}

func TestRollupWorker_EmptyDirectory(t *testing.T) {
	store := newRecordingRollupStore()
	worker := newTestWorker(&stubUserRepository{}, &stubTransactionRepository{}, store)

	worker.RunOnce(context.Background())

	if len(store.summaries) != 0 {
		t.Errorf("stored %d rollups, want 0", len(store.summaries))
	}
}
