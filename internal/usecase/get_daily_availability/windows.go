package get_daily_availability

import (
	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	"github.com/m04kA/PBR-SchedulingService/pkg/types"
)

// computePackageAvailability строит отчёт доступности одного пакета на день:
//  1. каждый принятый слот превращается в занятый блок с буферами и запасом
//     на оставшееся возможное продление (та же пессимистика, что и в проверке конфликта)
//  2. блоки сливаются в минимальный отсортированный список
//  3. дополнение до полных суток [0, 1440) даёт свободные промежутки
//  4. из промежутков выводятся окна допустимых стартов с обрезкой по рабочим часам
//
// Дни считаются независимо: блок, выходящий за полночь, обрезается границами своих суток
func computePackageAvailability(
	rules domain.ScheduleRules,
	pkg *domain.Package,
	bookings []*domain.DayBooking,
) (*PackageAvailability, error) {
	baseMinutes := pkg.EffectiveBaseDurationMinutes(rules.DefaultBaseDurationHours)

	result := &PackageAvailability{
		PackageID:      pkg.ID,
		Name:           pkg.Name,
		Bookings:       make([]BookingInfo, 0, len(bookings)),
		BlockedWindows: make([]Window, 0),
		StartWindows:   make([]Window, 0),
	}

	// День без бронирований полностью доступен: это не ошибка, а готовый ответ
	if len(bookings) == 0 {
		result.Status = domain.AvailabilityAvailable
		fullDay := []domain.Interval{{Start: 0, End: types.MinutesPerDay}}
		for _, w := range rules.StartWindows(fullDay, baseMinutes) {
			result.StartWindows = append(result.StartWindows, Window{
				Start: formatMinute(w.EarliestStart),
				End:   formatMinute(w.LatestStart),
			})
		}
		return result, nil
	}

	blocks := make([]domain.Interval, 0, len(bookings))
	for _, b := range bookings {
		block, err := rules.ReservedBlockFor(b, baseMinutes)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block.ClampTo(0, types.MinutesPerDay))

		coreEnd, err := rules.CoreEnd(b, baseMinutes)
		if err != nil {
			return nil, err
		}

		result.Bookings = append(result.Bookings, BookingInfo{
			StartTime: b.StartTime.String(),
			EndTime:   formatMinute(coreEnd),
		})
	}

	merged := domain.MergeIntervals(blocks)
	for _, b := range merged {
		result.BlockedWindows = append(result.BlockedWindows, Window{
			Start: formatMinute(b.Start),
			End:   formatMinute(b.End),
		})
	}

	free := domain.ComplementWithin(merged, 0, types.MinutesPerDay)
	windows := rules.StartWindows(free, baseMinutes)
	for _, w := range windows {
		result.StartWindows = append(result.StartWindows, Window{
			Start: formatMinute(w.EarliestStart),
			End:   formatMinute(w.LatestStart),
		})
	}

	if len(windows) > 0 {
		result.Status = domain.AvailabilityLimited
	} else {
		result.Status = domain.AvailabilityUnavailable
	}

	return result, nil
}

// formatMinute форматирует минуты от начала суток в "HH:MM"
// Конец суток отображается как "24:00", а не "00:00" следующего дня
func formatMinute(m int) string {
	if m >= types.MinutesPerDay {
		return "24:00"
	}
	if m < 0 {
		m = 0
	}
	return types.FromMinutes(m).String()
}
