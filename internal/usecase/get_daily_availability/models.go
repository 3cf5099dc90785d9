package get_daily_availability

import (
	"time"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
)

// Request модель запроса дневного отчёта доступности
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response модель ответа: доступность всех активных пакетов на дату
type Response struct {
	Date     string                `json:"date"` // "2025-10-15"
	Packages []PackageAvailability `json:"packages"`
}

// PackageAvailability доступность одного пакета на дату
type PackageAvailability struct {
	PackageID      int64                     `json:"packageId"`
	Name           string                    `json:"name"`
	Status         domain.AvailabilityStatus `json:"status"`
	Bookings       []BookingInfo             `json:"bookings"`       // существующие бронирования дня
	BlockedWindows []Window                  `json:"blockedWindows"` // слитые занятые блоки
	StartWindows   []Window                  `json:"startWindows"`   // допустимые окна старта нового бронирования
}

// BookingInfo существующее бронирование в человекочитаемом виде
type BookingInfo struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:00" (основной интервал, без буферов)
}

// Window диапазон времени в человекочитаемом виде
type Window struct {
	Start string `json:"start"` // "08:00"
	End   string `json:"end"`   // "21:59"
}
