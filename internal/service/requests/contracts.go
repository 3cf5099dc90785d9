package requests

import (
	"context"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	ListByPackage(ctx context.Context, filter domain.RequestFilter) ([]*domain.BookingRequest, error)
	CancelIfPending(ctx context.Context, id int64) error
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
