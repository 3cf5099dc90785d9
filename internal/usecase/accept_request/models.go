package accept_request

// Request модель запроса на принятие заявки менеджером
type Request struct {
	RequestID int64
}

// Response модель ответа: принятая заявка и автоматически отклонённые конкуренты
type Response struct {
	RequestID           int64
	ConfirmedBookingID  int64
	EventDate           string // "2025-10-15"
	StartTime           string // "10:00"
	RejectedCompetitors []RejectedCompetitor
}

// RejectedCompetitor конкурирующая заявка, отклонённая каскадом
type RejectedCompetitor struct {
	RequestID  int64
	CustomerID int64
}
