package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterval_Overlaps(t *testing.T) {
	a := Interval{Start: 480, End: 960}

	// Реальное пересечение
	assert.True(t, a.Overlaps(Interval{Start: 900, End: 1000}))
	assert.True(t, a.Overlaps(Interval{Start: 0, End: 481}))
	assert.True(t, a.Overlaps(a))

	// Касание границ пересечением не считается
	assert.False(t, a.Overlaps(Interval{Start: 960, End: 1320}))
	assert.False(t, a.Overlaps(Interval{Start: 0, End: 480}))

	// Полностью в стороне
	assert.False(t, a.Overlaps(Interval{Start: 1000, End: 1100}))
}

func TestInterval_ClampTo(t *testing.T) {
	assert.Equal(t, Interval{Start: 0, End: 960}, Interval{Start: -120, End: 960}.ClampTo(0, 1440))
	assert.Equal(t, Interval{Start: 1200, End: 1440}, Interval{Start: 1200, End: 1560}.ClampTo(0, 1440))
	assert.Equal(t, Interval{Start: 480, End: 960}, Interval{Start: 480, End: 960}.ClampTo(0, 1440))

	// Интервал целиком вне диапазона становится пустым
	assert.True(t, Interval{Start: 1500, End: 1600}.ClampTo(0, 1440).IsEmpty())
}

func TestMergeIntervals(t *testing.T) {
	t.Run("overlapping intervals are merged", func(t *testing.T) {
		merged := MergeIntervals([]Interval{
			{Start: 480, End: 600},
			{Start: 590, End: 700},
			{Start: 900, End: 950},
		})
		assert.Equal(t, []Interval{{Start: 480, End: 700}, {Start: 900, End: 950}}, merged)
	})

	t.Run("adjacent intervals are merged", func(t *testing.T) {
		merged := MergeIntervals([]Interval{
			{Start: 480, End: 600},
			{Start: 600, End: 700},
		})
		assert.Equal(t, []Interval{{Start: 480, End: 700}}, merged)
	})

	t.Run("unsorted input is sorted", func(t *testing.T) {
		merged := MergeIntervals([]Interval{
			{Start: 900, End: 950},
			{Start: 480, End: 600},
		})
		assert.Equal(t, []Interval{{Start: 480, End: 600}, {Start: 900, End: 950}}, merged)
	})

	t.Run("contained interval does not extend the result", func(t *testing.T) {
		merged := MergeIntervals([]Interval{
			{Start: 480, End: 960},
			{Start: 500, End: 700},
		})
		assert.Equal(t, []Interval{{Start: 480, End: 960}}, merged)
	})

	t.Run("empty intervals are dropped", func(t *testing.T) {
		merged := MergeIntervals([]Interval{
			{Start: 600, End: 600},
			{Start: 700, End: 650},
		})
		assert.Empty(t, merged)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, MergeIntervals(nil))
	})
}

func TestComplementWithin(t *testing.T) {
	t.Run("single block splits the day", func(t *testing.T) {
		free := ComplementWithin([]Interval{{Start: 480, End: 960}}, 0, 1440)
		assert.Equal(t, []Interval{{Start: 0, End: 480}, {Start: 960, End: 1440}}, free)
	})

	t.Run("no blocks gives the whole range", func(t *testing.T) {
		free := ComplementWithin(nil, 0, 1440)
		assert.Equal(t, []Interval{{Start: 0, End: 1440}}, free)
	})

	t.Run("block covering the whole range leaves nothing", func(t *testing.T) {
		free := ComplementWithin([]Interval{{Start: -120, End: 1500}}, 0, 1440)
		assert.Empty(t, free)
	})

	t.Run("blocks touching range bounds", func(t *testing.T) {
		free := ComplementWithin([]Interval{{Start: 0, End: 480}, {Start: 1320, End: 1440}}, 0, 1440)
		assert.Equal(t, []Interval{{Start: 480, End: 1320}}, free)
	})
}
