package reject_request

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	requestRepo "github.com/m04kA/PBR-SchedulingService/internal/infra/storage/request"
	"github.com/m04kA/PBR-SchedulingService/internal/integrations/notifyservice"
	"github.com/m04kA/PBR-SchedulingService/pkg/ptr"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRequestRepo struct {
	request   *domain.BookingRequest
	rejectErr error
	rejected  bool
	note      string
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (*domain.BookingRequest, error) {
	if f.request == nil || f.request.ID != id {
		return nil, requestRepo.ErrRequestNotFound
	}
	cp := *f.request
	return &cp, nil
}

func (f *fakeRequestRepo) RejectIfPending(_ context.Context, _ int64, note string) error {
	if f.rejectErr != nil {
		return f.rejectErr
	}
	f.rejected = true
	f.note = note
	return nil
}

type fakeConfirmedRepo struct {
	exists bool
}

func (f *fakeConfirmedRepo) ExistsByRequestID(_ context.Context, _ int64) (bool, error) {
	return f.exists, nil
}

type fakeNotifier struct {
	sent []notifyservice.Notification
}

func (f *fakeNotifier) SendBestEffort(_ context.Context, n notifyservice.Notification) {
	f.sent = append(f.sent, n)
}

func pendingRequest(id int64) *domain.BookingRequest {
	return &domain.BookingRequest{
		ID:         id,
		PackageID:  1,
		CustomerID: 100,
		EventDate:  time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		Status:     domain.RequestPending,
	}
}

func TestExecute_RejectsPendingRequest(t *testing.T) {
	repo := &fakeRequestRepo{request: pendingRequest(7)}
	notifier := &fakeNotifier{}

	uc := NewUseCase(repo, &fakeConfirmedRepo{}, inlineTxManager{}, notifier, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		RequestID: 7,
		Reason:    ptr.Ptr("дата занята выездным мероприятием"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.RequestID)
	assert.Equal(t, "rejected", resp.Status)
	assert.True(t, repo.rejected)
	assert.Equal(t, "дата занята выездным мероприятием", repo.note)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, notifyservice.EventRequestRejected, notifier.sent[0].Event)
	require.NotNil(t, notifier.sent[0].Reason)
}

func TestExecute_RepeatedRejectionFails(t *testing.T) {
	req := pendingRequest(7)
	req.Status = domain.RequestRejected

	repo := &fakeRequestRepo{request: req, rejectErr: requestRepo.ErrNoRowsUpdated}
	uc := NewUseCase(repo, &fakeConfirmedRepo{}, inlineTxManager{}, nil, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{RequestID: 7})
	assert.ErrorIs(t, err, ErrRequestNotPending)
}

func TestExecute_AcceptedRequestCannotBeRejected(t *testing.T) {
	req := pendingRequest(7)
	req.Status = domain.RequestAccepted

	repo := &fakeRequestRepo{request: req}
	uc := NewUseCase(repo, &fakeConfirmedRepo{exists: true}, inlineTxManager{}, nil, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{RequestID: 7})
	assert.ErrorIs(t, err, ErrAlreadyAccepted)
	assert.False(t, repo.rejected)
}

func TestExecute_PendingWithConfirmedBookingNotRejected(t *testing.T) {
	// Подтверждение у pending заявки означает рассинхронизацию хранилища,
	// такая заявка не должна молча переводиться в rejected
	repo := &fakeRequestRepo{request: pendingRequest(7)}

	uc := NewUseCase(repo, &fakeConfirmedRepo{exists: true}, inlineTxManager{}, nil, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{RequestID: 7})
	assert.ErrorIs(t, err, ErrAlreadyAccepted)
	assert.False(t, repo.rejected)
}

func TestExecute_NotFound(t *testing.T) {
	uc := NewUseCase(&fakeRequestRepo{}, &fakeConfirmedRepo{}, inlineTxManager{}, nil, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{RequestID: 7})
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestExecute_ReasonTooLong(t *testing.T) {
	uc := NewUseCase(&fakeRequestRepo{}, &fakeConfirmedRepo{}, inlineTxManager{}, nil, noopLogger{})

	long := strings.Repeat("причина ", 100)
	_, err := uc.Execute(context.Background(), &Request{RequestID: 7, Reason: &long})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
