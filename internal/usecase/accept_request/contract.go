package accept_request

import (
	"context"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	"github.com/m04kA/PBR-SchedulingService/internal/integrations/notifyservice"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	AcceptIfFree(ctx context.Context, id int64, slot domain.SlotKey) error
	CountAcceptedAtSlot(ctx context.Context, slot domain.SlotKey, excludeID int64) (int, error)
	RejectCompetitors(ctx context.Context, slot domain.SlotKey, excludeID int64, note string) ([]*domain.BookingRequest, error)
}

// ConfirmedRepository интерфейс репозитория подтверждённых бронирований
type ConfirmedRepository interface {
	Create(ctx context.Context, booking *domain.ConfirmedBooking) (*domain.ConfirmedBooking, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache кеш дневных отчётов доступности (допускается nil)
type AvailabilityCache interface {
	Invalidate(ctx context.Context, date string) error
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
