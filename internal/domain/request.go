package domain

import (
	"time"

	"github.com/m04kA/PBR-SchedulingService/pkg/types"
)

// RequestStatus статус заявки на бронирование
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
)

// BookingRequest заявка клиента на аренду пакета фотобудки
// Создаётся клиентским приложением; статус меняется только координатором принятия
type BookingRequest struct {
	ID             int64
	PackageID      int64
	CustomerID     int64
	EventDate      time.Time
	StartTime      types.TimeString
	EndTime        *types.TimeString // nil = конец выводится из базовой длительности пакета
	ExtensionHours int               // одобренные часы продления (по умолчанию 0)
	Status         RequestStatus
	RejectionNote  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the request is still awaiting a decision
func (r *BookingRequest) IsPending() bool {
	return r.Status == RequestPending
}

// IsAccepted returns true if the request has been accepted
func (r *BookingRequest) IsAccepted() bool {
	return r.Status == RequestAccepted
}

// IsResolved returns true if the request has reached a terminal status
func (r *BookingRequest) IsResolved() bool {
	return r.Status != RequestPending
}

// SlotKey возвращает тройку (пакет, дата, время начала), идентифицирующую слот
// Для одного слота может быть принята не более одной заявки
func (r *BookingRequest) SlotKey() SlotKey {
	return SlotKey{
		PackageID: r.PackageID,
		EventDate: r.EventDate,
		StartTime: r.StartTime,
	}
}

// SlotKey идентичность временного слота: за неё конкурируют pending-заявки
type SlotKey struct {
	PackageID int64
	EventDate time.Time
	StartTime types.TimeString
}

// RequestFilter фильтр для выборки заявок пакета
type RequestFilter struct {
	PackageID int64          // Обязательный параметр
	StartDate *time.Time     // Начало периода (опционально)
	EndDate   *time.Time     // Конец периода (опционально)
	Status    *RequestStatus // Фильтр по статусу (опционально)
}
