package domain

import (
	"time"

	"github.com/m04kA/PBR-SchedulingService/pkg/types"
)

// ScheduleRules правила планирования движка
// Передаются в usecases явно (из конфигурации), а не берутся из глобальных констант
type ScheduleRules struct {
	BufferMinutes            int // монтаж/демонтаж до и после мероприятия
	ExtensionCeilingHours    int // плановый потолок будущего продления
	DefaultBaseDurationHours int // базовая длительность, если не задана у пакета
	EarliestStartMinutes     int // нижняя граница рабочих часов для старта
	LatestStartMinutes       int // верхняя граница рабочих часов для старта
}

// DefaultScheduleRules возвращает правила планирования по умолчанию
func DefaultScheduleRules() ScheduleRules {
	return ScheduleRules{
		BufferMinutes:            DefaultBufferMinutes,
		ExtensionCeilingHours:    DefaultExtensionCeilingHours,
		DefaultBaseDurationHours: DefaultBaseDurationHours,
		EarliestStartMinutes:     DefaultEarliestStartMinutes,
		LatestStartMinutes:       DefaultLatestStartMinutes,
	}
}

// DayBooking принятое бронирование, спроецированное на минутную ось одного дня
// Собирается из заявки и (если есть) подтверждённого бронирования:
// поля-переопределения подтверждённого бронирования имеют приоритет
type DayBooking struct {
	RequestID      int64
	PackageID      int64
	CustomerID     int64
	EventDate      time.Time
	StartTime      types.TimeString
	EndTime        *types.TimeString // запрошенное время окончания
	ExtensionHours int               // одобренное продление заявки

	ConfirmedID *int64
	EndOverride *types.TimeString // переопределение окончания из подтверждённого бронирования
	ExtOverride *int              // переопределение продления из подтверждённого бронирования
}

// EffectiveEndTime возвращает явное время окончания с учётом приоритета переопределения
func (b *DayBooking) EffectiveEndTime() *types.TimeString {
	if b.EndOverride != nil {
		return b.EndOverride
	}
	return b.EndTime
}

// EffectiveExtensionHours возвращает одобренное продление с учётом переопределения
func (b *DayBooking) EffectiveExtensionHours() int {
	if b.ExtOverride != nil {
		return *b.ExtOverride
	}
	return b.ExtensionHours
}

// CoreEnd вычисляет окончание основного интервала бронирования в минутах
// Приоритет: переопределение подтверждённого бронирования → запрошенное окончание →
// start + базовая длительность пакета + одобренное продление
func (r ScheduleRules) CoreEnd(b *DayBooking, baseDurationMinutes int) (int, error) {
	start, err := b.StartTime.Minutes()
	if err != nil {
		return 0, err
	}

	if end := b.EffectiveEndTime(); end != nil {
		m, err := end.Minutes()
		if err != nil {
			return 0, err
		}
		return m, nil
	}

	if baseDurationMinutes <= 0 {
		baseDurationMinutes = r.DefaultBaseDurationHours * 60
	}

	return start + baseDurationMinutes + b.EffectiveExtensionHours()*60, nil
}

// RemainingExtensionMinutes возвращает запас продления до потолка для бронирования
// с уже одобренными approvedHours часами
func (r ScheduleRules) RemainingExtensionMinutes(approvedHours int) int {
	remaining := r.ExtensionCeilingHours - approvedHours
	if remaining < 0 {
		remaining = 0
	}
	return remaining * 60
}

// ReservedBlock строит занятый блок принятого бронирования:
// [start-buffer, coreEnd+остаток продления+buffer)
// Запас резервируется под ОСТАВШЕЕСЯ возможное продление, чтобы последующая
// заявка на продление не была заблокирована соседом, севшим вплотную
func (r ScheduleRules) ReservedBlock(startMinutes, coreEndMinutes, approvedExtensionHours int) Interval {
	return Interval{
		Start: startMinutes - r.BufferMinutes,
		End:   coreEndMinutes + r.RemainingExtensionMinutes(approvedExtensionHours) + r.BufferMinutes,
	}
}

// CandidateSpan строит интервал кандидата на новое бронирование:
// [start, coreEnd+полный потолок продления+buffer)
// Потолок закладывается пессимистично: слот не должен выглядеть свободным только
// потому, что будущее продление не учли. Монтаж кандидата умещается внутри
// занятого блока соседа, поэтому буфер в начало кандидата не добавляется:
// старт ровно на границе чужого блока допустим (полуоткрытая семантика)
func (r ScheduleRules) CandidateSpan(startMinutes, coreEndMinutes int) Interval {
	return Interval{
		Start: startMinutes,
		End:   coreEndMinutes + r.ExtensionCeilingHours*60 + r.BufferMinutes,
	}
}

// ExtensionSpan строит интервал проверяемого продления: основной интервал
// [start, newCoreEnd) с КОНКРЕТНЫМ запрошенным продлением, без пессимизма
// Сравнивается с занятыми блоками соседей; касание границы чужого блока проходит
func (r ScheduleRules) ExtensionSpan(startMinutes, newCoreEndMinutes int) Interval {
	return Interval{
		Start: startMinutes,
		End:   newCoreEndMinutes,
	}
}

// StartWindow диапазон допустимых времён начала нового бронирования
type StartWindow struct {
	EarliestStart int
	LatestStart   int
}

// StartWindows выводит из свободных промежутков дня окна допустимых стартов
// нового бронирования длительностью eventDurationMinutes:
//   - самый ранний старт: gap.Start + buffer (монтаж внутри промежутка)
//   - самый поздний старт: gap.End - buffer, если промежуток упирается в конец суток,
//     иначе gap.End - (длительность + потолок продления + buffer)
//
// Оба конца обрезаются по границам рабочих часов; пустые окна отбрасываются
func (r ScheduleRules) StartWindows(freeGaps []Interval, eventDurationMinutes int) []StartWindow {
	windows := make([]StartWindow, 0, len(freeGaps))

	for _, gap := range freeGaps {
		earliest := gap.Start + r.BufferMinutes

		var latest int
		if gap.End >= types.MinutesPerDay {
			latest = gap.End - r.BufferMinutes
		} else {
			latest = gap.End - (eventDurationMinutes + r.ExtensionCeilingHours*60 + r.BufferMinutes)
		}

		if earliest < r.EarliestStartMinutes {
			earliest = r.EarliestStartMinutes
		}
		if latest > r.LatestStartMinutes {
			latest = r.LatestStartMinutes
		}

		if earliest > latest {
			continue
		}

		windows = append(windows, StartWindow{EarliestStart: earliest, LatestStart: latest})
	}

	return windows
}

// AvailabilityStatus статус доступности пакета на день
type AvailabilityStatus string

const (
	// AvailabilityAvailable в этот день у пакета нет ни одного бронирования
	AvailabilityAvailable AvailabilityStatus = "available"
	// AvailabilityLimited бронирования есть, но остались допустимые окна старта
	AvailabilityLimited AvailabilityStatus = "limited"
	// AvailabilityUnavailable бронирования есть и ни одного окна старта не осталось
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
)
