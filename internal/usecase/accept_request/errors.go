package accept_request

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("accept_request: invalid input data")

	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("accept_request: booking request not found")

	// ErrRequestNotPending возвращается, когда заявка уже разрешена
	// (принята, отклонена или отменена) и принять её повторно нельзя
	ErrRequestNotPending = errors.New("accept_request: request is not pending")

	// ErrSlotTaken возвращается, когда на этом слоте уже есть принятая заявка
	ErrSlotTaken = errors.New("accept_request: slot already has an accepted request")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("accept_request: internal error")
)
