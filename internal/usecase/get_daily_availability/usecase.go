package get_daily_availability

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
)

// UseCase use case для построения дневного отчёта доступности
type UseCase struct {
	requestRepo RequestRepository
	packageRepo PackageRepository
	cache       AvailabilityCache
	rules       domain.ScheduleRules
	logger      Logger
}

// NewUseCase создает новый use case отчёта доступности
// cache может быть nil, тогда отчёт всегда считается заново
func NewUseCase(
	requestRepo RequestRepository,
	packageRepo PackageRepository,
	cache AvailabilityCache,
	rules domain.ScheduleRules,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo: requestRepo,
		packageRepo: packageRepo,
		cache:       cache,
		rules:       rules,
		logger:      logger,
	}
}

// Execute возвращает доступность всех активных пакетов на дату
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	dateKey := req.Date.Format(domain.DateFormat)

	// 2. Попытка отдать из кеша
	if uc.cache != nil {
		payload, hit, err := uc.cache.Get(ctx, dateKey)
		if err != nil {
			uc.logger.Warn("UseCase.GetDailyAvailability: cache read failed for %s: %v", dateKey, err)
		} else if hit {
			var cached Response
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
			uc.logger.Warn("UseCase.GetDailyAvailability: corrupted cache entry for %s, recomputing", dateKey)
		}
	}

	// 3. Активные пакеты
	packages, err := uc.packageRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("UseCase.GetDailyAvailability: failed to list packages: %v", err)
		return nil, fmt.Errorf("%w: failed to list packages: %v", ErrInternal, err)
	}

	// 4. Все принятые бронирования дня одним запросом, группировка по пакетам
	bookings, err := uc.requestRepo.ListAcceptedByDate(ctx, req.Date, nil)
	if err != nil {
		uc.logger.Error("UseCase.GetDailyAvailability: failed to list bookings for %s: %v", dateKey, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}
	byPackage := make(map[int64][]*domain.DayBooking, len(packages))
	for _, b := range bookings {
		byPackage[b.PackageID] = append(byPackage[b.PackageID], b)
	}

	// 5. Расчёт свободных окон по каждому пакету
	resp := &Response{
		Date:     dateKey,
		Packages: make([]PackageAvailability, 0, len(packages)),
	}
	for _, pkg := range packages {
		availability, err := computePackageAvailability(uc.rules, pkg, byPackage[pkg.ID])
		if err != nil {
			uc.logger.Error("UseCase.GetDailyAvailability: failed to compute package %d: %v", pkg.ID, err)
			return nil, fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
		}
		resp.Packages = append(resp.Packages, *availability)
	}

	// 6. Сохранение в кеш, ошибки не блокируют ответ
	if uc.cache != nil {
		payload, err := json.Marshal(resp)
		if err == nil {
			if err := uc.cache.Set(ctx, dateKey, payload); err != nil {
				uc.logger.Warn("UseCase.GetDailyAvailability: cache write failed for %s: %v", dateKey, err)
			}
		}
	}

	return resp, nil
}
