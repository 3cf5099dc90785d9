package set_extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	confirmedRepo "github.com/m04kA/PBR-SchedulingService/internal/infra/storage/confirmed"
	requestRepo "github.com/m04kA/PBR-SchedulingService/internal/infra/storage/request"
	"github.com/m04kA/PBR-SchedulingService/internal/integrations/notifyservice"
	"github.com/m04kA/PBR-SchedulingService/pkg/types"
)

// UseCase use case для изменения продления подтверждённого бронирования
//
// Продление хранится как абсолютное число часов, а не приращение, поэтому
// повторный вызов с теми же часами идемпотентен. Базовая длительность
// восстанавливается из прежнего конца за вычетом прежнего продления: так
// последовательные изменения не накапливают дрейф
type UseCase struct {
	requestRepo   RequestRepository
	confirmedRepo ConfirmedRepository
	packageRepo   PackageRepository
	txManager     TxManager
	cache         AvailabilityCache
	payments      PaymentProvider
	notifier      Notifier
	rules         domain.ScheduleRules
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	confirmedRepo ConfirmedRepository,
	packageRepo PackageRepository,
	txManager TxManager,
	cache AvailabilityCache,
	payments PaymentProvider,
	notifier Notifier,
	rules domain.ScheduleRules,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:   requestRepo,
		confirmedRepo: confirmedRepo,
		packageRepo:   packageRepo,
		txManager:     txManager,
		cache:         cache,
		payments:      payments,
		notifier:      notifier,
		rules:         rules,
		logger:        logger,
	}
}

// Execute устанавливает продление бронирования с проверкой конфликтов
// Конфликт без force откатывает транзакцию и возвращает Committed=false
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("SetExtension: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("SetExtension: booking id=%d, hours=%d, force=%v",
		req.BookingID, req.ExtensionHours, req.Force)

	var (
		booking    *domain.ConfirmedBooking
		bookingReq *domain.BookingRequest
		newEnd     types.TimeString
		conflict   *ConflictingBooking
	)

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 2. Читаем бронирование с блокировкой строки
		var err error
		booking, err = uc.confirmedRepo.GetByID(ctx, req.BookingID)
		if err != nil {
			if errors.Is(err, confirmedRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeExtended() {
			return ErrBookingNotActive
		}

		bookingReq, err = uc.requestRepo.GetByID(ctx, booking.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return fmt.Errorf("%w: originating request id=%d not found for booking id=%d",
					ErrInternal, booking.RequestID, booking.ID)
			}
			return fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
		}

		pkg, err := uc.packageRepo.GetByID(ctx, bookingReq.PackageID)
		if err != nil {
			return fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
		}
		pkgBaseMinutes := pkg.EffectiveBaseDurationMinutes(uc.rules.DefaultBaseDurationHours)

		// 3. Восстанавливаем базовую длительность и считаем новый конец
		startMinutes, err := bookingReq.StartTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: corrupted start time: %v", ErrInternal, err)
		}

		baseMinutes, err := uc.deriveBaseMinutes(booking, bookingReq, startMinutes, pkgBaseMinutes)
		if err != nil {
			return err
		}

		newCoreEnd := startMinutes + baseMinutes + req.ExtensionHours*60
		newEnd = types.FromMinutes(newCoreEnd)

		// 4. Проверяем конфликт нового основного интервала с соседями
		bookings, err := uc.requestRepo.ListAcceptedByDate(ctx, bookingReq.EventDate, &bookingReq.PackageID)
		if err != nil {
			return fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
		}

		span := uc.rules.ExtensionSpan(startMinutes, newCoreEnd)
		conflicting, err := uc.rules.FindConflict(span, bookings, pkgBaseMinutes, bookingReq.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to evaluate conflicts: %v", ErrInternal, err)
		}

		if conflicting != nil {
			coreEnd, err := uc.rules.CoreEnd(conflicting, pkgBaseMinutes)
			if err != nil {
				return fmt.Errorf("%w: failed to describe conflict: %v", ErrInternal, err)
			}
			conflict = &ConflictingBooking{
				RequestID: conflicting.RequestID,
				StartTime: conflicting.StartTime.String(),
				EndTime:   types.FromMinutes(coreEnd).String(),
			}
			if !req.Force {
				return errConflictRollback
			}
			uc.logger.Warn("SetExtension: booking id=%d extended over conflict with request id=%d (force)",
				req.BookingID, conflicting.RequestID)
		}

		// 5. Дублирующиеся поля заявки и бронирования меняются в одной транзакции
		if err := uc.confirmedRepo.UpdateExtension(ctx, booking.ID, newEnd, req.ExtensionHours); err != nil {
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}
		if err := uc.requestRepo.UpdateExtension(ctx, bookingReq.ID, newEnd, req.ExtensionHours); err != nil {
			return fmt.Errorf("%w: failed to update request: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, errConflictRollback) {
			uc.logger.Info("SetExtension: booking id=%d not extended, conflict with request id=%d",
				req.BookingID, conflict.RequestID)
			return &Response{
				Committed:      false,
				BookingID:      req.BookingID,
				ExtensionHours: req.ExtensionHours,
				Conflict:       conflict,
			}, nil
		}
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrBookingNotActive):
			uc.logger.Warn("SetExtension: booking id=%d not extended: %v", req.BookingID, err)
		default:
			uc.logger.Error("SetExtension: transaction failed for booking id=%d: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.logger.Info("SetExtension: booking id=%d extended to %s (%d hours)",
		booking.ID, newEnd, req.ExtensionHours)

	// 6. Пост-обработка вне транзакции: кеш, уведомление, стоимость
	eventDate := bookingReq.EventDate.Format(domain.DateFormat)
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, eventDate); err != nil {
			uc.logger.Warn("SetExtension: failed to invalidate availability cache for %s: %v", eventDate, err)
		}
	}

	if uc.notifier != nil {
		uc.notifier.SendBestEffort(ctx, notifyservice.Notification{
			CustomerID: bookingReq.CustomerID,
			RequestID:  bookingReq.ID,
			Event:      notifyservice.EventBookingExtended,
			EventDate:  eventDate,
			StartTime:  bookingReq.StartTime.String(),
		})
	}

	resp := &Response{
		Committed:      true,
		BookingID:      booking.ID,
		RequestID:      bookingReq.ID,
		NewEndTime:     newEnd.String(),
		ExtensionHours: req.ExtensionHours,
		Conflict:       conflict,
	}
	uc.attachPricing(ctx, bookingReq.PackageID, req.ExtensionHours, resp)

	return resp, nil
}

// deriveBaseMinutes восстанавливает базовую длительность бронирования
// Прежний конец минус прежнее продление даёт базу без дрейфа при повторных
// изменениях. Если конец нигде не переопределён, берётся база пакета
func (uc *UseCase) deriveBaseMinutes(
	booking *domain.ConfirmedBooking,
	req *domain.BookingRequest,
	startMinutes, pkgBaseMinutes int,
) (int, error) {
	prevEnd := booking.EventEndTime
	if prevEnd == nil {
		prevEnd = req.EndTime
	}
	if prevEnd == nil {
		return pkgBaseMinutes, nil
	}

	prevEndMinutes, err := prevEnd.Minutes()
	if err != nil {
		return 0, fmt.Errorf("%w: corrupted end time: %v", ErrInternal, err)
	}

	base := prevEndMinutes - startMinutes - booking.ExtensionHours*60
	if base <= 0 {
		return 0, fmt.Errorf("%w: derived base duration is not positive (end=%d, start=%d, ext=%d)",
			ErrInternal, prevEndMinutes, startMinutes, booking.ExtensionHours)
	}

	return base, nil
}

// attachPricing добавляет стоимость продления из платёжного сервиса
// При недоступности сервиса поля остаются nil, сценарий не прерывается
func (uc *UseCase) attachPricing(ctx context.Context, packageID int64, hours int, resp *Response) {
	if uc.payments == nil {
		return
	}

	rate, err := uc.payments.GetExtensionRateWithGracefulDegradation(ctx, packageID)
	if err != nil {
		uc.logger.Warn("SetExtension: extension rate unavailable for package id=%d: %v", packageID, err)
		return
	}

	amount := rate.HourlyRate * float64(hours)
	resp.HourlyRate = &rate.HourlyRate
	resp.AmountDue = &amount
	resp.Currency = &rate.Currency
}
