package set_extension

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	requestRepo "github.com/m04kA/PBR-SchedulingService/internal/infra/storage/request"
	"github.com/m04kA/PBR-SchedulingService/internal/integrations/notifyservice"
	"github.com/m04kA/PBR-SchedulingService/internal/integrations/paymentservice"
	"github.com/m04kA/PBR-SchedulingService/pkg/ptr"
	"github.com/m04kA/PBR-SchedulingService/pkg/types"
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
	request  *domain.BookingRequest
	getErr   error
	day      []*domain.DayBooking
	updated  bool
	newEnd   types.TimeString
	newHours int
}

func (f *fakeRequestRepo) GetByID(_ context.Context, _ int64) (*domain.BookingRequest, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.request
	return &cp, nil
}

func (f *fakeRequestRepo) ListAcceptedByDate(_ context.Context, _ time.Time, _ *int64) ([]*domain.DayBooking, error) {
	return f.day, nil
}

func (f *fakeRequestRepo) UpdateExtension(_ context.Context, _ int64, endTime types.TimeString, hours int) error {
	f.updated = true
	f.newEnd = endTime
	f.newHours = hours
	return nil
}

type fakeConfirmedRepo struct {
	booking *domain.ConfirmedBooking
	updated bool
	newEnd  types.TimeString
}

func (f *fakeConfirmedRepo) GetByID(_ context.Context, _ int64) (*domain.ConfirmedBooking, error) {
	cp := *f.booking
	return &cp, nil
}

func (f *fakeConfirmedRepo) UpdateExtension(_ context.Context, _ int64, endTime types.TimeString, hours int) error {
	f.updated = true
	f.newEnd = endTime
	return nil
}

type fakePackageRepo struct{}

func (fakePackageRepo) GetByID(_ context.Context, id int64) (*domain.Package, error) {
	return &domain.Package{ID: id, Name: "Standard", BaseDurationHours: 2, Active: true}, nil
}

type fakePayments struct {
	rate *paymentservice.ExtensionRate
	err  error
}

func (f *fakePayments) GetExtensionRateWithGracefulDegradation(_ context.Context, _ int64) (*paymentservice.ExtensionRate, error) {
	return f.rate, f.err
}

type fakeNotifier struct {
	sent []notifyservice.Notification
}

func (f *fakeNotifier) SendBestEffort(_ context.Context, n notifyservice.Notification) {
	f.sent = append(f.sent, n)
}

// Бронирование 10:00 с базой 2 часа; сосед в 15:00 занимает блок [13:00, 21:00)
func fixtures() (*fakeRequestRepo, *fakeConfirmedRepo) {
	requests := &fakeRequestRepo{
		request: &domain.BookingRequest{
			ID:         7,
			PackageID:  1,
			CustomerID: 100,
			EventDate:  time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
			StartTime:  "10:00",
			Status:     domain.RequestAccepted,
		},
		day: []*domain.DayBooking{
			{
				RequestID: 9,
				PackageID: 1,
				EventDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
				StartTime: "15:00",
			},
		},
	}
	confirmed := &fakeConfirmedRepo{
		booking: &domain.ConfirmedBooking{
			ID:        55,
			RequestID: 7,
			Status:    domain.BookingScheduled,
		},
	}
	return requests, confirmed
}

func newUseCase(requests *fakeRequestRepo, confirmed *fakeConfirmedRepo, payments PaymentProvider, notifier Notifier) *UseCase {
	return NewUseCase(
		requests, confirmed, fakePackageRepo{}, inlineTxManager{},
		nil, payments, notifier, domain.DefaultScheduleRules(), noopLogger{},
	)
}

func TestExecute_ExtensionTouchingNeighbourCommits(t *testing.T) {
	requests, confirmed := fixtures()
	notifier := &fakeNotifier{}
	payments := &fakePayments{rate: &paymentservice.ExtensionRate{PackageID: 1, HourlyRate: 5000, Currency: "RUB"}}

	uc := newUseCase(requests, confirmed, payments, notifier)

	// Продление до 13:00 касается чужого блока и проходит
	resp, err := uc.Execute(context.Background(), &Request{BookingID: 55, ExtensionHours: 1})
	require.NoError(t, err)

	assert.True(t, resp.Committed)
	assert.Equal(t, "13:00", resp.NewEndTime)
	assert.Equal(t, 1, resp.ExtensionHours)
	assert.Nil(t, resp.Conflict)

	// Заявка и подтверждение обновлены синхронно
	assert.True(t, requests.updated)
	assert.True(t, confirmed.updated)
	assert.Equal(t, types.TimeString("13:00"), requests.newEnd)
	assert.Equal(t, types.TimeString("13:00"), confirmed.newEnd)

	// Стоимость посчитана из ставки платёжного сервиса
	require.NotNil(t, resp.AmountDue)
	assert.Equal(t, 5000.0, *resp.HourlyRate)
	assert.Equal(t, 5000.0, *resp.AmountDue)
	assert.Equal(t, "RUB", *resp.Currency)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, notifyservice.EventBookingExtended, notifier.sent[0].Event)
}

func TestExecute_ConflictWithoutForceRollsBack(t *testing.T) {
	requests, confirmed := fixtures()
	uc := newUseCase(requests, confirmed, nil, nil)

	// Продление до 14:00 залезает в блок соседа
	resp, err := uc.Execute(context.Background(), &Request{BookingID: 55, ExtensionHours: 2})
	require.NoError(t, err)

	assert.False(t, resp.Committed)
	require.NotNil(t, resp.Conflict)
	assert.Equal(t, int64(9), resp.Conflict.RequestID)
	assert.Equal(t, "15:00", resp.Conflict.StartTime)

	// Ничего не записано
	assert.False(t, requests.updated)
	assert.False(t, confirmed.updated)
}

func TestExecute_ConflictWithForceCommits(t *testing.T) {
	requests, confirmed := fixtures()
	uc := newUseCase(requests, confirmed, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 55, ExtensionHours: 2, Force: true})
	require.NoError(t, err)

	assert.True(t, resp.Committed)
	assert.Equal(t, "14:00", resp.NewEndTime)
	// Конфликт зафиксирован в ответе даже при force
	require.NotNil(t, resp.Conflict)
	assert.True(t, requests.updated)
	assert.True(t, confirmed.updated)
}

func TestExecute_BaseDurationDoesNotDrift(t *testing.T) {
	requests, confirmed := fixtures()
	confirmed.booking.EventEndTime = ptr.Ptr(types.TimeString("13:00"))
	confirmed.booking.ExtensionHours = 1

	uc := newUseCase(requests, confirmed, nil, nil)

	// База восстанавливается как 13:00 - 10:00 - 1ч = 2 часа,
	// поэтому повторное продление считается от исходного конца
	resp, err := uc.Execute(context.Background(), &Request{BookingID: 55, ExtensionHours: 1})
	require.NoError(t, err)
	require.True(t, resp.Committed)
	assert.Equal(t, "13:00", resp.NewEndTime)

	// Сокращение продления до нуля возвращает исходный конец
	resp, err = uc.Execute(context.Background(), &Request{BookingID: 55, ExtensionHours: 0})
	require.NoError(t, err)
	require.True(t, resp.Committed)
	assert.Equal(t, "12:00", resp.NewEndTime)
}

func TestExecute_CeilingExceeded(t *testing.T) {
	requests, confirmed := fixtures()
	uc := newUseCase(requests, confirmed, nil, nil)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 55, ExtensionHours: 3})
	assert.ErrorIs(t, err, ErrCeilingExceeded)
}

func TestExecute_CompletedBookingNotExtendable(t *testing.T) {
	requests, confirmed := fixtures()
	confirmed.booking.Status = domain.BookingCompleted

	uc := newUseCase(requests, confirmed, nil, nil)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 55, ExtensionHours: 1})
	assert.ErrorIs(t, err, ErrBookingNotActive)
}

func TestExecute_OrphanedBookingWithoutRequest(t *testing.T) {
	requests, confirmed := fixtures()
	requests.getErr = requestRepo.ErrRequestNotFound

	uc := newUseCase(requests, confirmed, nil, nil)

	// Подтверждение без исходной заявки: рассинхронизация хранилища
	_, err := uc.Execute(context.Background(), &Request{BookingID: 55, ExtensionHours: 1})
	assert.ErrorIs(t, err, ErrInternal)
	assert.False(t, requests.updated)
	assert.False(t, confirmed.updated)
}

func TestExecute_DegradedPaymentServiceLeavesPricingEmpty(t *testing.T) {
	requests, confirmed := fixtures()
	payments := &fakePayments{err: paymentservice.ErrServiceDegraded}

	uc := newUseCase(requests, confirmed, payments, nil)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 55, ExtensionHours: 1})
	require.NoError(t, err)
	require.True(t, resp.Committed)

	assert.Nil(t, resp.HourlyRate)
	assert.Nil(t, resp.AmountDue)
	assert.Nil(t, resp.Currency)
}
