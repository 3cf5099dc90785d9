package domain

// ReservedBlockFor строит занятый блок одного принятого бронирования
// baseDurationMinutes задаёт базовую длительность пакета этого бронирования
func (r ScheduleRules) ReservedBlockFor(b *DayBooking, baseDurationMinutes int) (Interval, error) {
	start, err := b.StartTime.Minutes()
	if err != nil {
		return Interval{}, err
	}

	coreEnd, err := r.CoreEnd(b, baseDurationMinutes)
	if err != nil {
		return Interval{}, err
	}

	return r.ReservedBlock(start, coreEnd, b.EffectiveExtensionHours()), nil
}

// FindConflict возвращает первое бронирование, чей занятый блок пересекается
// со span. Бронирование с RequestID == excludeRequestID пропускается
// (используется при проверке продления, чтобы бронирование не конфликтовало само с собой)
// Все bookings должны принадлежать одному пакету: разные пакеты не конфликтуют никогда
func (r ScheduleRules) FindConflict(
	span Interval,
	bookings []*DayBooking,
	baseDurationMinutes int,
	excludeRequestID int64,
) (*DayBooking, error) {
	for _, b := range bookings {
		if excludeRequestID != 0 && b.RequestID == excludeRequestID {
			continue
		}

		block, err := r.ReservedBlockFor(b, baseDurationMinutes)
		if err != nil {
			return nil, err
		}

		if span.Overlaps(block) {
			return b, nil
		}
	}

	return nil, nil
}
