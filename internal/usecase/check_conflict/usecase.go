package check_conflict

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	packagesRepo "github.com/m04kA/PBR-SchedulingService/internal/infra/storage/packages"
	"github.com/m04kA/PBR-SchedulingService/pkg/types"
)

// UseCase use case проверки конфликта новой заявки с принятыми бронированиями
//
// Кандидат проверяется пессимистично: к его основному интервалу прибавляется
// полный потолок возможного будущего продления, чтобы слот не выглядел
// свободным только потому, что продление не учли. Каждое существующее
// бронирование занимает блок со своим одобренным продлением и запасом до потолка
type UseCase struct {
	requestRepo RequestRepository
	packageRepo PackageRepository
	rules       domain.ScheduleRules
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	packageRepo PackageRepository,
	rules domain.ScheduleRules,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo: requestRepo,
		packageRepo: packageRepo,
		rules:       rules,
		logger:      logger,
	}
}

// Execute выполняет проверку конфликта
// Проверка read-only и консультативная: успешный результат может устареть
// из-за параллельного принятия, финальную защиту даёт атомарный accept
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckConflict: package=%d, date=%s, start=%s",
		req.PackageID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckConflict: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем пакет (заодно проверяя его существование)
	pkg, err := uc.packageRepo.GetByID(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, packagesRepo.ErrPackageNotFound) {
			uc.logger.Warn("CheckConflict: package id=%d not found", req.PackageID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("CheckConflict: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}

	// 3. Получаем все принятые бронирования пакета на эту дату
	bookings, err := uc.requestRepo.ListAcceptedByDate(ctx, req.Date, &req.PackageID)
	if err != nil {
		uc.logger.Error("CheckConflict: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// 4. Строим пессимистичный интервал кандидата
	baseMinutes := pkg.EffectiveBaseDurationMinutes(uc.rules.DefaultBaseDurationHours)

	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	coreEnd := startMinutes + baseMinutes
	if req.EndTime != nil {
		coreEnd, err = req.EndTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	span := uc.rules.CandidateSpan(startMinutes, coreEnd)

	// 5. Ищем пересечение с занятыми блоками того же пакета
	conflicting, err := uc.rules.FindConflict(span, bookings, baseMinutes, 0)
	if err != nil {
		uc.logger.Error("CheckConflict: failed to evaluate conflicts: %v", err)
		return nil, fmt.Errorf("%w: failed to evaluate conflicts: %v", ErrInternal, err)
	}

	if conflicting == nil {
		uc.logger.Info("CheckConflict: no conflict for package=%d, date=%s, start=%s",
			req.PackageID, req.Date.Format(domain.DateFormat), req.StartTime)
		return &Response{Conflicts: false}, nil
	}

	info, err := describeBooking(uc.rules, conflicting, baseMinutes)
	if err != nil {
		uc.logger.Error("CheckConflict: failed to describe conflicting booking: %v", err)
		return nil, fmt.Errorf("%w: failed to describe conflicting booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CheckConflict: conflict found for package=%d, date=%s, start=%s with booking at %s",
		req.PackageID, req.Date.Format(domain.DateFormat), req.StartTime, info.StartTime)

	return &Response{Conflicts: true, ConflictingWith: info}, nil
}

// describeBooking формирует человекочитаемое описание мешающего бронирования
func describeBooking(rules domain.ScheduleRules, b *domain.DayBooking, baseMinutes int) (*ConflictingBooking, error) {
	coreEnd, err := rules.CoreEnd(b, baseMinutes)
	if err != nil {
		return nil, err
	}

	return &ConflictingBooking{
		EventDate: b.EventDate.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		EndTime:   types.FromMinutes(coreEnd).String(),
	}, nil
}
