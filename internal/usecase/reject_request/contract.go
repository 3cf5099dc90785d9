package reject_request

import (
	"context"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	"github.com/m04kA/PBR-SchedulingService/internal/integrations/notifyservice"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	RejectIfPending(ctx context.Context, id int64, note string) error
}

// ConfirmedRepository интерфейс репозитория подтверждённых бронирований
type ConfirmedRepository interface {
	ExistsByRequestID(ctx context.Context, requestID int64) (bool, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправка уведомлений клиентам, ошибки не прерывают сценарий
type Notifier interface {
	SendBestEffort(ctx context.Context, n notifyservice.Notification)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
