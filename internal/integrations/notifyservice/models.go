package notifyservice

// Event тип события уведомления клиента
type Event string

const (
	EventRequestAccepted Event = "request_accepted"
	EventRequestRejected Event = "request_rejected"
	EventBookingExtended Event = "booking_extended"
)

// Notification уведомление клиента об изменении статуса его заявки/бронирования
type Notification struct {
	CustomerID int64   `json:"customerId"`
	RequestID  int64   `json:"requestId"`
	Event      Event   `json:"event"`
	EventDate  string  `json:"eventDate"` // "2025-10-15"
	StartTime  string  `json:"startTime"` // "10:00"
	Reason     *string `json:"reason,omitempty"`
}
