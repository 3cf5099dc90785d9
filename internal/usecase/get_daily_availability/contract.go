package get_daily_availability

import (
	"context"
	"time"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	ListAcceptedByDate(ctx context.Context, date time.Time, packageID *int64) ([]*domain.DayBooking, error)
}

// PackageRepository интерфейс репозитория пакетов
type PackageRepository interface {
	ListActive(ctx context.Context) ([]*domain.Package, error)
}

// AvailabilityCache кеш готового дневного отчёта (опционален, допускается nil)
type AvailabilityCache interface {
	Get(ctx context.Context, date string) ([]byte, bool, error)
	Set(ctx context.Context, date string, payload []byte) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
