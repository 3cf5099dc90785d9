package check_conflict

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	packagesRepo "github.com/m04kA/PBR-SchedulingService/internal/infra/storage/packages"
	"github.com/m04kA/PBR-SchedulingService/pkg/ptr"
	"github.com/m04kA/PBR-SchedulingService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeRequestRepo struct {
	bookings []*domain.DayBooking
}

func (f *fakeRequestRepo) ListAcceptedByDate(_ context.Context, _ time.Time, _ *int64) ([]*domain.DayBooking, error) {
	return f.bookings, nil
}

type fakePackageRepo struct {
	pkg *domain.Package
}

func (f *fakePackageRepo) GetByID(_ context.Context, _ int64) (*domain.Package, error) {
	if f.pkg == nil {
		return nil, packagesRepo.ErrPackageNotFound
	}
	return f.pkg, nil
}

var eventDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func newUseCase(bookings []*domain.DayBooking) *UseCase {
	return NewUseCase(
		&fakeRequestRepo{bookings: bookings},
		&fakePackageRepo{pkg: &domain.Package{ID: 1, Name: "Standard", BaseDurationHours: 2, Active: true}},
		domain.DefaultScheduleRules(),
		noopLogger{},
	)
}

// Занятый блок бронирования 10:00 с базой 2 часа тянется до 16:00:
// буфер до, основной интервал, запас на продление до потолка и буфер после
func existingBooking() []*domain.DayBooking {
	return []*domain.DayBooking{{
		RequestID: 7,
		PackageID: 1,
		EventDate: eventDate,
		StartTime: "10:00",
	}}
}

func TestExecute_StartRightAtBlockEndPasses(t *testing.T) {
	uc := newUseCase(existingBooking())

	resp, err := uc.Execute(context.Background(), &Request{
		PackageID: 1,
		Date:      eventDate,
		StartTime: "16:00",
	})
	require.NoError(t, err)

	assert.False(t, resp.Conflicts)
	assert.Nil(t, resp.ConflictingWith)
}

func TestExecute_StartOneMinuteEarlierConflicts(t *testing.T) {
	uc := newUseCase(existingBooking())

	resp, err := uc.Execute(context.Background(), &Request{
		PackageID: 1,
		Date:      eventDate,
		StartTime: "15:59",
	})
	require.NoError(t, err)

	assert.True(t, resp.Conflicts)
	require.NotNil(t, resp.ConflictingWith)
	assert.Equal(t, "2025-10-15", resp.ConflictingWith.EventDate)
	assert.Equal(t, "10:00", resp.ConflictingWith.StartTime)
	assert.Equal(t, "12:00", resp.ConflictingWith.EndTime)
}

func TestExecute_ExplicitEndTimeExtendsCandidate(t *testing.T) {
	uc := newUseCase(existingBooking())

	// Кандидат на 02:00 с концом 04:00 дотягивается хвостом
	// (потолок продления и буфер) ровно до начала чужого блока
	resp, err := uc.Execute(context.Background(), &Request{
		PackageID: 1,
		Date:      eventDate,
		StartTime: "02:00",
		EndTime:   ptr.Ptr(types.TimeString("04:00")),
	})
	require.NoError(t, err)
	assert.False(t, resp.Conflicts)

	// Конец на минуту позже уже задевает блок
	resp, err = uc.Execute(context.Background(), &Request{
		PackageID: 1,
		Date:      eventDate,
		StartTime: "02:00",
		EndTime:   ptr.Ptr(types.TimeString("04:01")),
	})
	require.NoError(t, err)
	assert.True(t, resp.Conflicts)
}

func TestExecute_EmptyDayNeverConflicts(t *testing.T) {
	uc := newUseCase(nil)

	resp, err := uc.Execute(context.Background(), &Request{
		PackageID: 1,
		Date:      eventDate,
		StartTime: "10:00",
	})
	require.NoError(t, err)
	assert.False(t, resp.Conflicts)
}

func TestExecute_PackageNotFound(t *testing.T) {
	uc := NewUseCase(&fakeRequestRepo{}, &fakePackageRepo{}, domain.DefaultScheduleRules(), noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		PackageID: 99,
		Date:      eventDate,
		StartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(nil)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero package id", &Request{Date: eventDate, StartTime: "10:00"}},
		{"zero date", &Request{PackageID: 1, StartTime: "10:00"}},
		{"malformed start time", &Request{PackageID: 1, Date: eventDate, StartTime: "25:99"}},
		{"end before start", &Request{PackageID: 1, Date: eventDate, StartTime: "10:00", EndTime: ptr.Ptr(types.TimeString("09:00"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
