package set_extension

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("set_extension: invalid input data")

	// ErrBookingNotFound возвращается, когда подтверждённое бронирование не найдено
	ErrBookingNotFound = errors.New("set_extension: confirmed booking not found")

	// ErrBookingNotActive возвращается, когда бронирование завершено или отменено
	// и менять его продление уже нельзя
	ErrBookingNotActive = errors.New("set_extension: booking is not active")

	// ErrCeilingExceeded возвращается, когда запрошенные часы превышают потолок продления
	ErrCeilingExceeded = errors.New("set_extension: extension hours exceed ceiling")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("set_extension: internal error")

	// errConflictRollback внутренний маркер отката транзакции при обнаруженном
	// конфликте без force. Наружу не выходит, наружу идёт Response с Committed=false
	errConflictRollback = errors.New("set_extension: rolled back on conflict")
)
