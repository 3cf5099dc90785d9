package models

import (
	"errors"
	"time"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	"github.com/m04kA/PBR-SchedulingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid request status")
)

// Request модели

// CreateRequest запрос клиента на бронирование пакета
type CreateRequest struct {
	CustomerID     int64   `json:"customerId"`
	PackageID      int64   `json:"packageId"`
	EventDate      string  `json:"eventDate"` // "2025-10-15"
	StartTime      string  `json:"startTime"` // "10:00"
	EndTime        *string `json:"endTime,omitempty"`
	ExtensionHours int     `json:"extensionHours,omitempty"`
}

// ToDomain конвертирует запрос в domain модель новой pending заявки
func (r *CreateRequest) ToDomain() (*domain.BookingRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.EventDate)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	var end *types.TimeString
	if r.EndTime != nil {
		e, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		end = &e
	}

	return &domain.BookingRequest{
		PackageID:      r.PackageID,
		CustomerID:     r.CustomerID,
		EventDate:      date,
		StartTime:      start,
		EndTime:        end,
		ExtensionHours: r.ExtensionHours,
		Status:         domain.RequestPending,
	}, nil
}

// CancelRequest запрос на отмену заявки её автором
type CancelRequest struct {
	CustomerID int64 `json:"customerId"`
}

// ListPackageRequestsRequest запрос заявок пакета с фильтрацией
type ListPackageRequestsRequest struct {
	PackageID int64      `json:"packageId"`
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListPackageRequestsRequest) ToDomainFilter() (domain.RequestFilter, error) {
	filter := domain.RequestFilter{
		PackageID: r.PackageID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainRequestStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// RequestResponse ответ с данными заявки
type RequestResponse struct {
	ID             int64   `json:"id"`
	PackageID      int64   `json:"packageId"`
	CustomerID     int64   `json:"customerId"`
	EventDate      string  `json:"eventDate"` // "2025-10-15"
	StartTime      string  `json:"startTime"` // "10:00"
	EndTime        *string `json:"endTime,omitempty"`
	ExtensionHours int     `json:"extensionHours"`
	Status         string  `json:"status"`
	RejectionNote  *string `json:"rejectionNote,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RequestListResponse ответ со списком заявок
type RequestListResponse struct {
	Requests []RequestResponse `json:"requests"`
}

// Методы конвертации

// FromDomainRequest конвертирует domain модель в DTO
func FromDomainRequest(r *domain.BookingRequest) *RequestResponse {
	if r == nil {
		return nil
	}

	resp := &RequestResponse{
		ID:             r.ID,
		PackageID:      r.PackageID,
		CustomerID:     r.CustomerID,
		EventDate:      r.EventDate.Format(domain.DateFormat),
		StartTime:      r.StartTime.String(),
		ExtensionHours: r.ExtensionHours,
		Status:         string(r.Status),
		RejectionNote:  r.RejectionNote,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}

	if r.EndTime != nil {
		end := r.EndTime.String()
		resp.EndTime = &end
	}

	return resp
}

// FromDomainRequestList конвертирует список domain моделей в DTO
func FromDomainRequestList(requests []*domain.BookingRequest) *RequestListResponse {
	resp := &RequestListResponse{
		Requests: make([]RequestResponse, 0, len(requests)),
	}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, *FromDomainRequest(r))
	}
	return resp
}

// ToDomainRequestStatus валидирует и конвертирует строковый статус
func ToDomainRequestStatus(status string) (domain.RequestStatus, error) {
	switch domain.RequestStatus(status) {
	case domain.RequestPending, domain.RequestAccepted, domain.RequestRejected, domain.RequestCancelled:
		return domain.RequestStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
