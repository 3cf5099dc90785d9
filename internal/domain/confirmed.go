package domain

import (
	"time"

	"github.com/m04kA/PBR-SchedulingService/pkg/types"
)

// BookingStatus статус подтверждённого бронирования
type BookingStatus string

const (
	BookingScheduled  BookingStatus = "scheduled"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// ConfirmedBooking подтверждённое бронирование
// Создаётся ровно один раз при принятии заявки (request_id уникален)
// Поля продления дублируют заявку и обновляются с ней в одной транзакции
type ConfirmedBooking struct {
	ID             int64
	RequestID      int64
	Status         BookingStatus
	EventEndTime   *types.TimeString // переопределение времени окончания мероприятия
	ExtensionHours int               // переопределение одобренных часов продления

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *ConfirmedBooking) IsActive() bool {
	return b.Status != BookingCancelled
}

// CanBeExtended returns true if the booking's end time may still be changed
func (b *ConfirmedBooking) CanBeExtended() bool {
	return b.Status == BookingScheduled || b.Status == BookingInProgress
}
