package set_extension

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PBR-SchedulingService/internal/api/handlers"
	setExtensionUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/set_extension"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgNotActive          = "бронирование завершено или отменено"
	msgCeilingExceeded    = "запрошенное продление превышает допустимый потолок"
)

type Handler struct {
	useCase SetExtensionUseCase
	logger  Logger
}

func NewHandler(useCase SetExtensionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/extension
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/extension - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Декодируем body
	var body SetExtensionBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/extension - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &setExtensionUC.Request{
		BookingID:      bookingID,
		ExtensionHours: body.ExtensionHours,
		Force:          body.Force,
	})
	if err != nil {
		switch {
		case errors.Is(err, setExtensionUC.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/extension - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, setExtensionUC.ErrBookingNotActive):
			h.logger.Warn("PATCH /bookings/{id}/extension - Booking not active: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotActive)

		case errors.Is(err, setExtensionUC.ErrCeilingExceeded):
			h.logger.Warn("PATCH /bookings/{id}/extension - Ceiling exceeded: booking_id=%d, hours=%d",
				bookingID, body.ExtensionHours)
			handlers.RespondBadRequest(w, msgCeilingExceeded)

		case errors.Is(err, setExtensionUC.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/extension - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /bookings/{id}/extension - Failed to set extension: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Конфликт без force не ошибка: транзакция откачена, клиенту отдаётся 409 с деталями
	if !resp.Committed {
		h.logger.Info("PATCH /bookings/{id}/extension - Extension not committed due to conflict: booking_id=%d",
			bookingID)
		handlers.RespondJSON(w, http.StatusConflict, fromUseCaseResponse(resp))
		return
	}

	h.logger.Info("PATCH /bookings/{id}/extension - Extension set: booking_id=%d, hours=%d, new_end=%s",
		resp.BookingID, resp.ExtensionHours, resp.NewEndTime)
	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(resp))
}
