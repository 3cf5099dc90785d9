package accept_request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	requestRepo "github.com/m04kA/PBR-SchedulingService/internal/infra/storage/request"
	"github.com/m04kA/PBR-SchedulingService/internal/integrations/notifyservice"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// inlineTxManager выполняет функцию без реальной транзакции
type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRequestRepo struct {
	request        *domain.BookingRequest
	acceptErr      error
	acceptedCount  int
	competitors    []*domain.BookingRequest
	acceptedCalled bool
	rejectedSlot   *domain.SlotKey
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (*domain.BookingRequest, error) {
	if f.request == nil || f.request.ID != id {
		return nil, requestRepo.ErrRequestNotFound
	}
	cp := *f.request
	return &cp, nil
}

func (f *fakeRequestRepo) AcceptIfFree(_ context.Context, _ int64, _ domain.SlotKey) error {
	f.acceptedCalled = true
	return f.acceptErr
}

func (f *fakeRequestRepo) CountAcceptedAtSlot(_ context.Context, _ domain.SlotKey, _ int64) (int, error) {
	return f.acceptedCount, nil
}

func (f *fakeRequestRepo) RejectCompetitors(_ context.Context, slot domain.SlotKey, _ int64, _ string) ([]*domain.BookingRequest, error) {
	f.rejectedSlot = &slot
	return f.competitors, nil
}

type fakeConfirmedRepo struct {
	created *domain.ConfirmedBooking
}

func (f *fakeConfirmedRepo) Create(_ context.Context, b *domain.ConfirmedBooking) (*domain.ConfirmedBooking, error) {
	cp := *b
	cp.ID = 55
	f.created = &cp
	return &cp, nil
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) Invalidate(_ context.Context, date string) error {
	f.invalidated = append(f.invalidated, date)
	return nil
}

type fakeNotifier struct {
	sent []notifyservice.Notification
}

func (f *fakeNotifier) SendBestEffort(_ context.Context, n notifyservice.Notification) {
	f.sent = append(f.sent, n)
}

func pendingRequest(t *testing.T, id int64) *domain.BookingRequest {
	t.Helper()
	return &domain.BookingRequest{
		ID:         id,
		PackageID:  1,
		CustomerID: 100,
		EventDate:  time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		Status:     domain.RequestPending,
	}
}

func TestExecute_AcceptsAndRejectsCompetitors(t *testing.T) {
	competitor := pendingRequest(t, 8)
	competitor.CustomerID = 200

	repo := &fakeRequestRepo{
		request:     pendingRequest(t, 7),
		competitors: []*domain.BookingRequest{competitor},
	}
	confirmed := &fakeConfirmedRepo{}
	cache := &fakeCache{}
	notifier := &fakeNotifier{}

	uc := NewUseCase(repo, confirmed, inlineTxManager{}, cache, notifier, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{RequestID: 7})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.RequestID)
	assert.Equal(t, int64(55), resp.ConfirmedBookingID)
	assert.Equal(t, "2025-10-15", resp.EventDate)
	assert.Equal(t, "10:00", resp.StartTime)

	// Подтверждение унаследовало параметры заявки
	require.NotNil(t, confirmed.created)
	assert.Equal(t, int64(7), confirmed.created.RequestID)
	assert.Equal(t, domain.BookingScheduled, confirmed.created.Status)

	// Конкурент отклонён каскадом и попал в ответ
	require.Len(t, resp.RejectedCompetitors, 1)
	assert.Equal(t, int64(8), resp.RejectedCompetitors[0].RequestID)

	// Кеш дня сброшен, уведомления ушли обоим клиентам
	assert.Equal(t, []string{"2025-10-15"}, cache.invalidated)
	require.Len(t, notifier.sent, 2)
	assert.Equal(t, notifyservice.EventRequestAccepted, notifier.sent[0].Event)
	assert.Equal(t, notifyservice.EventRequestRejected, notifier.sent[1].Event)
	assert.Equal(t, int64(200), notifier.sent[1].CustomerID)
}

func TestExecute_RequestNotFound(t *testing.T) {
	uc := NewUseCase(&fakeRequestRepo{}, &fakeConfirmedRepo{}, inlineTxManager{}, nil, nil, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{RequestID: 7})
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestExecute_RequestAlreadyResolved(t *testing.T) {
	req := pendingRequest(t, 7)
	req.Status = domain.RequestRejected

	repo := &fakeRequestRepo{request: req}
	uc := NewUseCase(repo, &fakeConfirmedRepo{}, inlineTxManager{}, nil, nil, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{RequestID: 7})
	assert.ErrorIs(t, err, ErrRequestNotPending)
	assert.False(t, repo.acceptedCalled)
}

func TestExecute_ZeroRowsDiagnosis(t *testing.T) {
	t.Run("competitor took the slot", func(t *testing.T) {
		repo := &fakeRequestRepo{
			request:       pendingRequest(t, 7),
			acceptErr:     requestRepo.ErrNoRowsUpdated,
			acceptedCount: 1,
		}
		uc := NewUseCase(repo, &fakeConfirmedRepo{}, inlineTxManager{}, nil, nil, noopLogger{})

		_, err := uc.Execute(context.Background(), &Request{RequestID: 7})
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("status changed concurrently", func(t *testing.T) {
		repo := &fakeRequestRepo{
			request:   pendingRequest(t, 7),
			acceptErr: requestRepo.ErrNoRowsUpdated,
		}
		uc := NewUseCase(repo, &fakeConfirmedRepo{}, inlineTxManager{}, nil, nil, noopLogger{})

		_, err := uc.Execute(context.Background(), &Request{RequestID: 7})
		assert.ErrorIs(t, err, ErrRequestNotPending)
	})
}

func TestExecute_InvalidID(t *testing.T) {
	uc := NewUseCase(&fakeRequestRepo{}, &fakeConfirmedRepo{}, inlineTxManager{}, nil, nil, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{RequestID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
