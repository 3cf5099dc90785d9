package reject_request

// Request модель запроса на отклонение заявки менеджером
type Request struct {
	RequestID int64
	Reason    *string // необязательная причина для клиента
}

// Response модель ответа на отклонение заявки
type Response struct {
	RequestID int64
	Status    string
}
