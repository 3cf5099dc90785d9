package request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("request.repository: booking request not found")

	// ErrNoRowsUpdated возвращается, когда условное обновление не затронуло ни одной строки
	// Причину (слот занят или статус уже изменился) диагностирует вызывающий
	ErrNoRowsUpdated = errors.New("request.repository: conditional update affected no rows")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("request.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("request.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("request.repository: failed to scan row")
)
