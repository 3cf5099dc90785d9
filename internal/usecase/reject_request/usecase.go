package reject_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	requestRepo "github.com/m04kA/PBR-SchedulingService/internal/infra/storage/request"
	"github.com/m04kA/PBR-SchedulingService/internal/integrations/notifyservice"
)

// UseCase use case для отклонения заявки менеджером
type UseCase struct {
	requestRepo   RequestRepository
	confirmedRepo ConfirmedRepository
	txManager     TxManager
	notifier      Notifier
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	confirmedRepo ConfirmedRepository,
	txManager TxManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:   requestRepo,
		confirmedRepo: confirmedRepo,
		txManager:     txManager,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute отклоняет pending заявку. Повторное отклонение не проходит:
// заявка уже не pending, и клиент получил бы второе уведомление
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RejectRequest: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("RejectRequest: rejecting request id=%d", req.RequestID)

	var rejected *domain.BookingRequest

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		var err error
		rejected, err = uc.requestRepo.GetByID(ctx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
		}

		// Заявка с подтверждённым бронированием отклоняется только через отмену
		// бронирования. Проверка не зависит от статуса заявки: подтверждение
		// при любом другом статусе означает рассинхронизацию хранилища
		confirmed, err := uc.confirmedRepo.ExistsByRequestID(ctx, req.RequestID)
		if err != nil {
			return fmt.Errorf("%w: failed to check confirmed booking: %v", ErrInternal, err)
		}
		if confirmed {
			return ErrAlreadyAccepted
		}

		note := ""
		if req.Reason != nil {
			note = *req.Reason
		}

		if err := uc.requestRepo.RejectIfPending(ctx, req.RequestID, note); err != nil {
			if errors.Is(err, requestRepo.ErrNoRowsUpdated) {
				return ErrRequestNotPending
			}
			return fmt.Errorf("%w: failed to reject request: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound), errors.Is(err, ErrRequestNotPending), errors.Is(err, ErrAlreadyAccepted):
			uc.logger.Warn("RejectRequest: request id=%d not rejected: %v", req.RequestID, err)
		default:
			uc.logger.Error("RejectRequest: transaction failed for request id=%d: %v", req.RequestID, err)
		}
		return nil, err
	}

	uc.logger.Info("RejectRequest: request id=%d rejected", req.RequestID)

	if uc.notifier != nil {
		uc.notifier.SendBestEffort(ctx, notifyservice.Notification{
			CustomerID: rejected.CustomerID,
			RequestID:  rejected.ID,
			Event:      notifyservice.EventRequestRejected,
			EventDate:  rejected.EventDate.Format(domain.DateFormat),
			StartTime:  rejected.StartTime.String(),
			Reason:     req.Reason,
		})
	}

	return &Response{
		RequestID: req.RequestID,
		Status:    string(domain.RequestRejected),
	}, nil
}
