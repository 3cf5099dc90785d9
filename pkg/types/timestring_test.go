package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("valid HH:MM", func(t *testing.T) {
		ts, err := NewTimeStringFromString("10:30")
		require.NoError(t, err)
		assert.Equal(t, "10:30", ts.String())
	})

	t.Run("HH:MM:SS is accepted, seconds dropped", func(t *testing.T) {
		ts, err := NewTimeStringFromString("10:30:45")
		require.NoError(t, err)
		assert.Equal(t, "10:30", ts.String())
	})

	t.Run("malformed input is rejected", func(t *testing.T) {
		for _, raw := range []string{"", "10", "1030", "24:00", "10:60", "ab:cd", "10-30", "10:30:61"} {
			_, err := NewTimeStringFromString(raw)
			assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", raw)
		}
	})
}

func TestFromMinutes(t *testing.T) {
	assert.Equal(t, TimeString("10:00"), FromMinutes(600))
	assert.Equal(t, TimeString("00:00"), FromMinutes(0))
	assert.Equal(t, TimeString("23:59"), FromMinutes(1439))

	// Нормализация по суткам, в обе стороны
	assert.Equal(t, TimeString("00:30"), FromMinutes(1470))
	assert.Equal(t, TimeString("23:00"), FromMinutes(-60))
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, m)

	_, err = TimeString("garbage").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("10:00").AddMinutes(150)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:30"), ts)

	ts, err = TimeString("23:30").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:30"), ts)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("11:00").IsAfter("10:00"))

	// Некорректный формат сравнивается как false, не паникует
	assert.False(t, TimeString("bad").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("bad"))
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("from postgres TIME string", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("10:30:00"))
		assert.Equal(t, TimeString("10:30"), ts)
	})

	t.Run("from bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("08:15:30")))
		assert.Equal(t, TimeString("08:15"), ts)
	})

	t.Run("from time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2025, 10, 15, 14, 45, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("14:45"), ts)
	})

	t.Run("nil resets the value", func(t *testing.T) {
		ts := TimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.Equal(t, TimeString(""), ts)
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts TimeString
		assert.ErrorIs(t, ts.Scan(42), ErrInvalidTimeString)
	})
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:30", v)

	_, err = TimeString("bad").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
