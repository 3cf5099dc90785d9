package set_extension

import (
	"context"
	"time"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	"github.com/m04kA/PBR-SchedulingService/internal/integrations/notifyservice"
	"github.com/m04kA/PBR-SchedulingService/internal/integrations/paymentservice"
	"github.com/m04kA/PBR-SchedulingService/pkg/types"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	ListAcceptedByDate(ctx context.Context, date time.Time, packageID *int64) ([]*domain.DayBooking, error)
	UpdateExtension(ctx context.Context, id int64, endTime types.TimeString, hours int) error
}

// ConfirmedRepository интерфейс репозитория подтверждённых бронирований
type ConfirmedRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ConfirmedBooking, error)
	UpdateExtension(ctx context.Context, id int64, endTime types.TimeString, hours int) error
}

// PackageRepository интерфейс репозитория пакетов
type PackageRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Package, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache кеш дневных отчётов доступности (допускается nil)
type AvailabilityCache interface {
	Invalidate(ctx context.Context, date string) error
}

// PaymentProvider получение почасовой ставки продления (допускается nil)
type PaymentProvider interface {
	GetExtensionRateWithGracefulDegradation(ctx context.Context, packageID int64) (*paymentservice.ExtensionRate, error)
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
