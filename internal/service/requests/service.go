package requests

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	packagesRepo "github.com/m04kA/PBR-SchedulingService/internal/infra/storage/packages"
	requestRepo "github.com/m04kA/PBR-SchedulingService/internal/infra/storage/request"
	"github.com/m04kA/PBR-SchedulingService/internal/service/requests/models"
)

// Service сервис для работы с заявками на бронирование
// Решения о принятии и отклонении живут в usecase-слое, здесь CRUD и доступ
type Service struct {
	requestRepo RequestRepository
	packageRepo PackageRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	requestRepo RequestRepository,
	packageRepo PackageRepository,
	logger Logger,
) *Service {
	return &Service{
		requestRepo: requestRepo,
		packageRepo: packageRepo,
		logger:      logger,
	}
}

// Create создает новую pending заявку клиента
// Конфликты здесь не проверяются: заявки на занятый слот разрешены,
// конкуренцию разрешает менеджер при принятии
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.RequestResponse, error) {
	s.logger.Info("Create: new request for package=%d by customer=%d, date=%s, start=%s",
		req.PackageID, req.CustomerID, req.EventDate, req.StartTime)

	if req.PackageID <= 0 || req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: package id and customer id must be positive", ErrInvalidInput)
	}

	booking, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("Create: malformed request payload: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Пакет должен существовать и быть активным
	pkg, err := s.packageRepo.GetByID(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, packagesRepo.ErrPackageNotFound) {
			s.logger.Warn("Create: package id=%d not found", req.PackageID)
			return nil, ErrPackageNotFound
		}
		s.logger.Error("Create: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}
	if !pkg.Active {
		s.logger.Warn("Create: package id=%d is not active", req.PackageID)
		return nil, ErrPackageNotFound
	}

	created, err := s.requestRepo.Create(ctx, booking)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created request id=%d", created.ID)
	return models.FromDomainRequest(created), nil
}

// GetByID получает заявку по ID
// Клиент видит только свою заявку, менеджер видит любую
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isManager bool) (*models.RequestResponse, error) {
	s.logger.Info("GetByID: fetching request id=%d for user=%d", id, userID)

	req, err := s.getRequest(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !isManager && req.CustomerID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to request id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched request id=%d", id)
	return models.FromDomainRequest(req), nil
}

// ListByPackage получает заявки пакета с фильтрацией по периоду и статусу
// Доступно только менеджерам
func (s *Service) ListByPackage(ctx context.Context, req *models.ListPackageRequestsRequest) (*models.RequestListResponse, error) {
	s.logger.Info("ListByPackage: fetching requests for package=%d", req.PackageID)

	if req.PackageID <= 0 {
		return nil, fmt.Errorf("%w: package id must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByPackage: invalid filter for package=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	requests, err := s.requestRepo.ListByPackage(ctx, filter)
	if err != nil {
		s.logger.Error("ListByPackage: repository error for package=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: ListByPackage - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByPackage: successfully fetched %d requests for package=%d", len(requests), req.PackageID)
	return models.FromDomainRequestList(requests), nil
}

// Cancel отменяет pending заявку её автором
// Принятую, отклонённую или уже отменённую заявку отменить нельзя
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelRequest) error {
	s.logger.Info("Cancel: cancelling request id=%d by customer=%d", id, req.CustomerID)

	booking, err := s.getRequest(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	if booking.CustomerID != req.CustomerID {
		s.logger.Warn("Cancel: access denied for customer=%d to request id=%d", req.CustomerID, id)
		return ErrAccessDenied
	}

	if err := s.requestRepo.CancelIfPending(ctx, id); err != nil {
		if errors.Is(err, requestRepo.ErrNoRowsUpdated) {
			s.logger.Warn("Cancel: request id=%d is not pending, status=%s", id, booking.Status)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for request id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled request id=%d", id)
	return nil
}

// getRequest достаёт заявку с маппингом ошибки "не найдена"
func (s *Service) getRequest(ctx context.Context, op string, id int64) (*domain.BookingRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("%s: request id=%d not found", op, id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("%s: repository error for request id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return req, nil
}
