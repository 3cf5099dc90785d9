package confirmed

import "errors"

var (
	// ErrBookingNotFound возвращается, когда подтверждённое бронирование не найдено
	ErrBookingNotFound = errors.New("confirmed.repository: confirmed booking not found")

	// ErrAlreadyConfirmed возвращается при попытке создать второе подтверждение
	// для одной заявки, нарушая инвариант "ровно одно подтверждение на заявку"
	ErrAlreadyConfirmed = errors.New("confirmed.repository: request already has a confirmed booking")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("confirmed.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("confirmed.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("confirmed.repository: failed to scan row")
)
