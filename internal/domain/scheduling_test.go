package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PBR-SchedulingService/pkg/ptr"
	"github.com/m04kA/PBR-SchedulingService/pkg/types"
)

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func dayBooking(t *testing.T, requestID int64, start string, ext int) *DayBooking {
	t.Helper()
	return &DayBooking{
		RequestID:      requestID,
		PackageID:      1,
		CustomerID:     100,
		EventDate:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:      ts(t, start),
		ExtensionHours: ext,
	}
}

func TestReservedBlock(t *testing.T) {
	rules := DefaultScheduleRules()

	// Бронирование 10:00-12:00 без продления: буфер до, основной интервал,
	// полный запас на продление, буфер после
	assert.Equal(t, Interval{Start: 480, End: 960}, rules.ReservedBlock(600, 720, 0))

	// Продление одобрено до потолка: запас не резервируется
	assert.Equal(t, Interval{Start: 480, End: 960}, rules.ReservedBlock(600, 840, 2))

	// Частичное продление: остаток до потолка один час
	assert.Equal(t, Interval{Start: 480, End: 900}, rules.ReservedBlock(600, 780, 1))

	// Продление сверх потолка не даёт отрицательного запаса
	assert.Equal(t, Interval{Start: 480, End: 1080}, rules.ReservedBlock(600, 960, 3))
}

func TestCandidateSpan_BoundaryAgainstReservedBlock(t *testing.T) {
	rules := DefaultScheduleRules()

	// Принятое бронирование 10:00 с базой 2 часа занимает [08:00, 16:00)
	block := rules.ReservedBlock(600, 720, 0)
	require.Equal(t, Interval{Start: 480, End: 960}, block)

	// Кандидат ровно в 16:00 садится на границу блока и проходит
	at1600 := rules.CandidateSpan(960, 1080)
	assert.False(t, at1600.Overlaps(block))

	// Кандидат в 15:59 пересекает блок
	at1559 := rules.CandidateSpan(959, 1079)
	assert.True(t, at1559.Overlaps(block))

	// Симметрия: кандидат ДО бронирования должен закончить монтаж и потолок
	// продления до начала чужого блока
	before := rules.CandidateSpan(120, 240) // 02:00-04:00
	assert.False(t, before.Overlaps(block)) // 240+120+120 = 480, касание
	tooLate := rules.CandidateSpan(121, 241)
	assert.True(t, tooLate.Overlaps(block))
}

func TestExtensionSpan_TouchingNeighbourPasses(t *testing.T) {
	rules := DefaultScheduleRules()

	// Сосед в 15:00 занимает [13:00, 21:00)
	neighbour := rules.ReservedBlock(900, 1020, 0)
	require.Equal(t, Interval{Start: 780, End: 1260}, neighbour)

	// Продление 10:00-12:00 до 13:00: конец касается чужого блока, проходит
	to1300 := rules.ExtensionSpan(600, 780)
	assert.False(t, to1300.Overlaps(neighbour))

	// Продление до 14:00 пересекает
	to1400 := rules.ExtensionSpan(600, 840)
	assert.True(t, to1400.Overlaps(neighbour))
}

func TestCoreEnd_Preference(t *testing.T) {
	rules := DefaultScheduleRules()

	t.Run("override from confirmed booking wins", func(t *testing.T) {
		b := dayBooking(t, 1, "10:00", 0)
		b.EndTime = ptr.Ptr(ts(t, "12:00"))
		b.EndOverride = ptr.Ptr(ts(t, "13:00"))

		end, err := rules.CoreEnd(b, 120)
		require.NoError(t, err)
		assert.Equal(t, 780, end)
	})

	t.Run("requested end time is used without override", func(t *testing.T) {
		b := dayBooking(t, 1, "10:00", 0)
		b.EndTime = ptr.Ptr(ts(t, "12:30"))

		end, err := rules.CoreEnd(b, 120)
		require.NoError(t, err)
		assert.Equal(t, 750, end)
	})

	t.Run("falls back to base duration plus extension", func(t *testing.T) {
		b := dayBooking(t, 1, "10:00", 1)

		end, err := rules.CoreEnd(b, 120)
		require.NoError(t, err)
		assert.Equal(t, 780, end)
	})

	t.Run("extension override replaces request extension", func(t *testing.T) {
		b := dayBooking(t, 1, "10:00", 0)
		b.ExtOverride = ptr.Ptr(2)

		end, err := rules.CoreEnd(b, 120)
		require.NoError(t, err)
		assert.Equal(t, 840, end)
	})

	t.Run("zero base duration falls back to default", func(t *testing.T) {
		b := dayBooking(t, 1, "10:00", 0)

		end, err := rules.CoreEnd(b, 0)
		require.NoError(t, err)
		assert.Equal(t, 720, end)
	})
}

func TestStartWindows(t *testing.T) {
	rules := DefaultScheduleRules()

	t.Run("empty day", func(t *testing.T) {
		windows := rules.StartWindows([]Interval{{Start: 0, End: 1440}}, 120)
		// Ранний край ограничен рабочими часами, поздний упирается в конец
		// суток и ограничен последним допустимым стартом 21:59
		assert.Equal(t, []StartWindow{{EarliestStart: 480, LatestStart: 1319}}, windows)
	})

	t.Run("gap reaching end of day allows late starts", func(t *testing.T) {
		windows := rules.StartWindows([]Interval{{Start: 960, End: 1440}}, 120)
		assert.Equal(t, []StartWindow{{EarliestStart: 1080, LatestStart: 1319}}, windows)
	})

	t.Run("interior gap must fit event with ceiling and buffer", func(t *testing.T) {
		// Промежуток [08:00, 20:00): последний старт 20:00 - (2ч + 2ч + 2ч) = 14:00
		windows := rules.StartWindows([]Interval{{Start: 480, End: 1200}}, 120)
		assert.Equal(t, []StartWindow{{EarliestStart: 600, LatestStart: 840}}, windows)
	})

	t.Run("too small interior gap is dropped", func(t *testing.T) {
		windows := rules.StartWindows([]Interval{{Start: 600, End: 1000}}, 120)
		assert.Empty(t, windows)
	})

	t.Run("gap before business hours is dropped", func(t *testing.T) {
		windows := rules.StartWindows([]Interval{{Start: 0, End: 480}}, 120)
		assert.Empty(t, windows)
	})
}

func TestFindConflict(t *testing.T) {
	rules := DefaultScheduleRules()

	booked := dayBooking(t, 7, "10:00", 0)
	bookings := []*DayBooking{booked}

	t.Run("overlapping span finds the booking", func(t *testing.T) {
		found, err := rules.FindConflict(rules.CandidateSpan(959, 1079), bookings, 120, 0)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, int64(7), found.RequestID)
	})

	t.Run("touching span passes", func(t *testing.T) {
		found, err := rules.FindConflict(rules.CandidateSpan(960, 1080), bookings, 120, 0)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("booking does not conflict with itself", func(t *testing.T) {
		found, err := rules.FindConflict(rules.ExtensionSpan(600, 840), bookings, 120, 7)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("first overlapping booking is reported", func(t *testing.T) {
		second := dayBooking(t, 8, "18:00", 0)
		found, err := rules.FindConflict(Interval{Start: 0, End: 1440}, []*DayBooking{booked, second}, 120, 0)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, int64(7), found.RequestID)
	})
}
