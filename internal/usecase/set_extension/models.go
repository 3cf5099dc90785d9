package set_extension

// Request модель запроса на изменение продления подтверждённого бронирования
type Request struct {
	BookingID      int64
	ExtensionHours int  // новое абсолютное значение, не приращение
	Force          bool // применить несмотря на конфликт с соседним бронированием
}

// Response модель ответа на изменение продления
//
// При конфликте без force транзакция откатывается, Committed=false и заполнен
// Conflict. Это не ошибка, а штатный исход для менеджера
type Response struct {
	Committed      bool
	BookingID      int64
	RequestID      int64
	NewEndTime     string // "14:00", заполнено при Committed=true
	ExtensionHours int
	Conflict       *ConflictingBooking

	// Производная стоимость продления, nil при недоступности платёжного сервиса
	HourlyRate *float64
	AmountDue  *float64
	Currency   *string
}

// ConflictingBooking бронирование, мешающее продлению
type ConflictingBooking struct {
	RequestID int64
	StartTime string // "16:00"
	EndTime   string // "18:00" (основной интервал, без буферов)
}
