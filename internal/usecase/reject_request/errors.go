package reject_request

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reject_request: invalid input data")

	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("reject_request: booking request not found")

	// ErrRequestNotPending возвращается при повторном отклонении или попытке
	// отклонить уже отменённую заявку
	ErrRequestNotPending = errors.New("reject_request: request is not pending")

	// ErrAlreadyAccepted возвращается при попытке отклонить принятую заявку,
	// у которой уже есть подтверждённое бронирование
	ErrAlreadyAccepted = errors.New("reject_request: request already accepted")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reject_request: internal error")
)
