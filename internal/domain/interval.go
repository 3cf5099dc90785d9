package domain

import "sort"

// Interval полуоткрытый интервал [Start, End) в минутах от начала суток
type Interval struct {
	Start int
	End   int
}

// IsEmpty returns true if the interval contains no minutes
func (i Interval) IsEmpty() bool {
	return i.End <= i.Start
}

// Overlaps проверяет реальное пересечение двух полуоткрытых интервалов
// Граничное касание (A.End == B.Start) пересечением НЕ считается
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// ClampTo обрезает интервал до границ [lo, hi)
func (i Interval) ClampTo(lo, hi int) Interval {
	out := i
	if out.Start < lo {
		out.Start = lo
	}
	if out.End > hi {
		out.End = hi
	}
	return out
}

// MergeIntervals сливает пересекающиеся и смежные интервалы в минимальный
// отсортированный список. Вход не модифицируется
// Смежные блоки (next.Start == last.End) тоже сливаются: между ними нет свободного зазора
func MergeIntervals(intervals []Interval) []Interval {
	in := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.IsEmpty() {
			in = append(in, iv)
		}
	}
	if len(in) == 0 {
		return []Interval{}
	}

	sort.Slice(in, func(a, b int) bool {
		if in[a].Start != in[b].Start {
			return in[a].Start < in[b].Start
		}
		return in[a].End < in[b].End
	})

	merged := []Interval{in[0]}
	for _, next := range in[1:] {
		last := &merged[len(merged)-1]
		if next.Start <= last.End {
			if next.End > last.End {
				last.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}

	return merged
}

// ComplementWithin возвращает свободные промежутки диапазона [lo, hi),
// не покрытые блоками. blocks должен быть результатом MergeIntervals
func ComplementWithin(blocks []Interval, lo, hi int) []Interval {
	free := make([]Interval, 0, len(blocks)+1)
	cursor := lo

	for _, b := range blocks {
		clamped := b.ClampTo(lo, hi)
		if clamped.IsEmpty() {
			continue
		}
		if clamped.Start > cursor {
			free = append(free, Interval{Start: cursor, End: clamped.Start})
		}
		if clamped.End > cursor {
			cursor = clamped.End
		}
	}

	if cursor < hi {
		free = append(free, Interval{Start: cursor, End: hi})
	}

	return free
}
