package paymentservice

import "errors"

var (
	// ErrRateNotFound возвращается, когда ставка для пакета не настроена
	ErrRateNotFound = errors.New("payment service has no rate for package")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("paymentservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что платёжный сервис недоступен и производную сумму показать нельзя
	ErrServiceDegraded = errors.New("paymentservice unavailable: graceful degradation applied")
)
