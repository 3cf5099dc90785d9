package check_conflict

import (
	"time"

	"github.com/m04kA/PBR-SchedulingService/pkg/types"
)

// Request модель запроса на проверку конфликта новой заявки
type Request struct {
	PackageID int64             // ID пакета
	Date      time.Time         // Дата мероприятия (без времени)
	StartTime types.TimeString  // Время начала мероприятия
	EndTime   *types.TimeString // Время окончания (опционально, nil = базовая длительность пакета)
}

// Response модель ответа проверки конфликта
type Response struct {
	Conflicts       bool                // Есть ли конфликт с принятым бронированием
	ConflictingWith *ConflictingBooking // Данные мешающего бронирования (только при конфликте)
}

// ConflictingBooking мешающее бронирование в человекочитаемом виде
// Наружу отдаются дата и время, а не внутренние ID, чтобы клиенту
// можно было объяснить, ПОЧЕМУ слот занят
type ConflictingBooking struct {
	EventDate string // "2025-10-15"
	StartTime string // "10:00"
	EndTime   string // "12:00"
}
