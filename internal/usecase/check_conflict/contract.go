package check_conflict

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
	GetByID(ctx context.Context, id int64) (*domain.Package, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
