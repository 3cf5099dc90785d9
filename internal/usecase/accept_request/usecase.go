package accept_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	requestRepo "github.com/m04kA/PBR-SchedulingService/internal/infra/storage/request"
	"github.com/m04kA/PBR-SchedulingService/internal/integrations/notifyservice"
)

// autoRejectNote причина, записываемая конкурентам при каскадном отклонении
const autoRejectNote = "another request was accepted for this slot"

// UseCase use case для принятия заявки менеджером
//
// Принятие атомарно: условный UPDATE срабатывает только если заявка всё ещё
// pending и на слоте нет другой принятой заявки. Создание подтверждённого
// бронирования и каскадное отклонение конкурентов выполняются в той же
// serializable транзакции, поэтому наблюдать «принята, но не подтверждена»
// или «принята, а конкуренты ещё pending» извне невозможно
type UseCase struct {
	requestRepo   RequestRepository
	confirmedRepo ConfirmedRepository
	txManager     TxManager
	cache         AvailabilityCache
	notifier      Notifier
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	confirmedRepo ConfirmedRepository,
	txManager TxManager,
	cache AvailabilityCache,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:   requestRepo,
		confirmedRepo: confirmedRepo,
		txManager:     txManager,
		cache:         cache,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute принимает заявку: ровно одна заявка на слот может быть принята
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.RequestID <= 0 {
		return nil, fmt.Errorf("%w: request id must be positive", ErrInvalidInput)
	}

	uc.logger.Info("AcceptRequest: accepting request id=%d", req.RequestID)

	var (
		accepted *domain.BookingRequest
		booking  *domain.ConfirmedBooking
		rejected []*domain.BookingRequest
	)

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 1. Читаем заявку с блокировкой строки
		var err error
		accepted, err = uc.requestRepo.GetByID(ctx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
		}

		if !accepted.IsPending() {
			return ErrRequestNotPending
		}

		slot := accepted.SlotKey()

		// 2. Условное принятие: pending и слот свободен, иначе ноль строк
		if err := uc.requestRepo.AcceptIfFree(ctx, req.RequestID, slot); err != nil {
			if errors.Is(err, requestRepo.ErrNoRowsUpdated) {
				return uc.diagnoseRejection(ctx, req.RequestID, slot)
			}
			return fmt.Errorf("%w: failed to accept request: %v", ErrInternal, err)
		}

		// 3. Подтверждённое бронирование наследует параметры заявки
		booking, err = uc.confirmedRepo.Create(ctx, &domain.ConfirmedBooking{
			RequestID:      accepted.ID,
			Status:         domain.BookingScheduled,
			EventEndTime:   accepted.EndTime,
			ExtensionHours: accepted.ExtensionHours,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create confirmed booking: %v", ErrInternal, err)
		}

		// 4. Каскадное отклонение всех pending заявок на тот же слот
		rejected, err = uc.requestRepo.RejectCompetitors(ctx, slot, accepted.ID, autoRejectNote)
		if err != nil {
			return fmt.Errorf("%w: failed to reject competitors: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound), errors.Is(err, ErrRequestNotPending), errors.Is(err, ErrSlotTaken):
			uc.logger.Warn("AcceptRequest: request id=%d not accepted: %v", req.RequestID, err)
		default:
			uc.logger.Error("AcceptRequest: transaction failed for request id=%d: %v", req.RequestID, err)
		}
		return nil, err
	}

	uc.logger.Info("AcceptRequest: request id=%d accepted, booking id=%d, rejected %d competitors",
		accepted.ID, booking.ID, len(rejected))

	// 5. Пост-обработка вне транзакции: кеш и уведомления
	eventDate := accepted.EventDate.Format(domain.DateFormat)
	uc.invalidateCache(ctx, eventDate)
	uc.notifyParticipants(ctx, accepted, rejected)

	resp := &Response{
		RequestID:           accepted.ID,
		ConfirmedBookingID:  booking.ID,
		EventDate:           eventDate,
		StartTime:           accepted.StartTime.String(),
		RejectedCompetitors: make([]RejectedCompetitor, 0, len(rejected)),
	}
	for _, r := range rejected {
		resp.RejectedCompetitors = append(resp.RejectedCompetitors, RejectedCompetitor{
			RequestID:  r.ID,
			CustomerID: r.CustomerID,
		})
	}

	return resp, nil
}

// diagnoseRejection выясняет, почему условный UPDATE не затронул строк:
// либо слот успел занять конкурент, либо статус заявки уже изменился
func (uc *UseCase) diagnoseRejection(ctx context.Context, id int64, slot domain.SlotKey) error {
	count, err := uc.requestRepo.CountAcceptedAtSlot(ctx, slot, id)
	if err != nil {
		return fmt.Errorf("%w: failed to diagnose rejected accept: %v", ErrInternal, err)
	}
	if count > 0 {
		return ErrSlotTaken
	}
	return ErrRequestNotPending
}

func (uc *UseCase) invalidateCache(ctx context.Context, date string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, date); err != nil {
		uc.logger.Warn("AcceptRequest: failed to invalidate availability cache for %s: %v", date, err)
	}
}

func (uc *UseCase) notifyParticipants(ctx context.Context, accepted *domain.BookingRequest, rejected []*domain.BookingRequest) {
	if uc.notifier == nil {
		return
	}

	eventDate := accepted.EventDate.Format(domain.DateFormat)

	uc.notifier.SendBestEffort(ctx, notifyservice.Notification{
		CustomerID: accepted.CustomerID,
		RequestID:  accepted.ID,
		Event:      notifyservice.EventRequestAccepted,
		EventDate:  eventDate,
		StartTime:  accepted.StartTime.String(),
	})

	reason := autoRejectNote
	for _, r := range rejected {
		uc.notifier.SendBestEffort(ctx, notifyservice.Notification{
			CustomerID: r.CustomerID,
			RequestID:  r.ID,
			Event:      notifyservice.EventRequestRejected,
			EventDate:  eventDate,
			StartTime:  r.StartTime.String(),
			Reason:     &reason,
		})
	}
}
