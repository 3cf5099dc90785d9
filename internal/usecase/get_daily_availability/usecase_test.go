package get_daily_availability

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	"github.com/m04kA/PBR-SchedulingService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeRequestRepo struct {
	bookings []*domain.DayBooking
	called   bool
}

func (f *fakeRequestRepo) ListAcceptedByDate(_ context.Context, _ time.Time, _ *int64) ([]*domain.DayBooking, error) {
	f.called = true
	return f.bookings, nil
}

type fakePackageRepo struct {
	packages []*domain.Package
}

func (f *fakePackageRepo) ListActive(_ context.Context) ([]*domain.Package, error) {
	return f.packages, nil
}

type fakeCache struct {
	entries map[string][]byte
	getErr  error
	setErr  error
	setKeys []string
}

func (f *fakeCache) Get(_ context.Context, date string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	payload, ok := f.entries[date]
	return payload, ok, nil
}

func (f *fakeCache) Set(_ context.Context, date string, payload []byte) error {
	f.setKeys = append(f.setKeys, date)
	if f.setErr != nil {
		return f.setErr
	}
	if f.entries == nil {
		f.entries = map[string][]byte{}
	}
	f.entries[date] = payload
	return nil
}

func standardPackage() *domain.Package {
	return &domain.Package{ID: 1, Name: "Standard", BaseDurationHours: 2, Active: true}
}

func booking(id int64, start types.TimeString) *domain.DayBooking {
	return &domain.DayBooking{
		RequestID: id,
		PackageID: 1,
		EventDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime: start,
	}
}

func newUseCase(requests *fakeRequestRepo, packages []*domain.Package, cache AvailabilityCache) *UseCase {
	return NewUseCase(requests, &fakePackageRepo{packages: packages}, cache, domain.DefaultScheduleRules(), noopLogger{})
}

func TestExecute_EmptyDayFullyAvailable(t *testing.T) {
	uc := newUseCase(&fakeRequestRepo{}, []*domain.Package{standardPackage()}, nil)

	resp, err := uc.Execute(context.Background(), Request{Date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-15", resp.Date)
	require.Len(t, resp.Packages, 1)

	pkg := resp.Packages[0]
	assert.Equal(t, domain.AvailabilityAvailable, pkg.Status)
	assert.Empty(t, pkg.Bookings)
	assert.Empty(t, pkg.BlockedWindows)
	// Пустой день ограничен только рабочими часами
	require.Len(t, pkg.StartWindows, 1)
	assert.Equal(t, Window{Start: "08:00", End: "21:59"}, pkg.StartWindows[0])
}

func TestExecute_SingleBookingLimitsDay(t *testing.T) {
	requests := &fakeRequestRepo{bookings: []*domain.DayBooking{booking(7, "10:00")}}
	uc := newUseCase(requests, []*domain.Package{standardPackage()}, nil)

	resp, err := uc.Execute(context.Background(), Request{Date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.Len(t, resp.Packages, 1)

	pkg := resp.Packages[0]
	assert.Equal(t, domain.AvailabilityLimited, pkg.Status)

	require.Len(t, pkg.Bookings, 1)
	assert.Equal(t, BookingInfo{StartTime: "10:00", EndTime: "12:00"}, pkg.Bookings[0])

	// Буфер до, основной интервал, запас на продление и буфер после
	require.Len(t, pkg.BlockedWindows, 1)
	assert.Equal(t, Window{Start: "08:00", End: "16:00"}, pkg.BlockedWindows[0])

	// Утренний промежуток слишком мал для нового мероприятия, остаётся вечер
	require.Len(t, pkg.StartWindows, 1)
	assert.Equal(t, Window{Start: "18:00", End: "21:59"}, pkg.StartWindows[0])
}

func TestExecute_PackedDayUnavailable(t *testing.T) {
	requests := &fakeRequestRepo{bookings: []*domain.DayBooking{
		booking(7, "10:00"),
		booking(8, "17:00"),
	}}
	uc := newUseCase(requests, []*domain.Package{standardPackage()}, nil)

	resp, err := uc.Execute(context.Background(), Request{Date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.Len(t, resp.Packages, 1)

	pkg := resp.Packages[0]
	assert.Equal(t, domain.AvailabilityUnavailable, pkg.Status)

	// Пересекающиеся блоки слиты в один
	require.Len(t, pkg.BlockedWindows, 1)
	assert.Equal(t, Window{Start: "08:00", End: "23:00"}, pkg.BlockedWindows[0])
	assert.Empty(t, pkg.StartWindows)
}

func TestExecute_BookingsGroupedByPackage(t *testing.T) {
	second := &domain.Package{ID: 2, Name: "Premium", BaseDurationHours: 2, Active: true}
	requests := &fakeRequestRepo{bookings: []*domain.DayBooking{booking(7, "10:00")}}
	uc := newUseCase(requests, []*domain.Package{standardPackage(), second}, nil)

	resp, err := uc.Execute(context.Background(), Request{Date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.Len(t, resp.Packages, 2)

	// Бронирование первого пакета не трогает доступность второго
	assert.Equal(t, domain.AvailabilityLimited, resp.Packages[0].Status)
	assert.Equal(t, domain.AvailabilityAvailable, resp.Packages[1].Status)
}

func TestExecute_CacheHitSkipsComputation(t *testing.T) {
	cached := &Response{Date: "2025-10-15", Packages: []PackageAvailability{}}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	requests := &fakeRequestRepo{bookings: []*domain.DayBooking{booking(7, "10:00")}}
	cache := &fakeCache{entries: map[string][]byte{"2025-10-15": payload}}
	uc := newUseCase(requests, []*domain.Package{standardPackage()}, cache)

	resp, err := uc.Execute(context.Background(), Request{Date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	assert.Equal(t, cached, resp)
	assert.False(t, requests.called)
}

func TestExecute_CorruptedCacheEntryRecomputed(t *testing.T) {
	requests := &fakeRequestRepo{}
	cache := &fakeCache{entries: map[string][]byte{"2025-10-15": []byte("{broken")}}
	uc := newUseCase(requests, []*domain.Package{standardPackage()}, cache)

	resp, err := uc.Execute(context.Background(), Request{Date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	assert.True(t, requests.called)
	require.Len(t, resp.Packages, 1)

	// Свежий отчёт перезаписывает испорченную запись
	require.Len(t, cache.setKeys, 1)
	var stored Response
	require.NoError(t, json.Unmarshal(cache.entries["2025-10-15"], &stored))
	assert.Equal(t, resp, &stored)
}

func TestExecute_CacheErrorsAreNotFatal(t *testing.T) {
	requests := &fakeRequestRepo{}
	cache := &fakeCache{getErr: errors.New("redis: connection refused"), setErr: errors.New("redis: connection refused")}
	uc := newUseCase(requests, []*domain.Package{standardPackage()}, cache)

	resp, err := uc.Execute(context.Background(), Request{Date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.Len(t, resp.Packages, 1)
	assert.True(t, requests.called)
}

func TestExecute_ZeroDateRejected(t *testing.T) {
	uc := newUseCase(&fakeRequestRepo{}, nil, nil)

	_, err := uc.Execute(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
