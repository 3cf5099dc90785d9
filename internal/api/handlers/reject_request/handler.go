package reject_request

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PBR-SchedulingService/internal/api/handlers"
	rejectRequestUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/reject_request"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "заявка не найдена"
	msgNotPending         = "заявка уже разрешена"
	msgAlreadyAccepted    = "заявка уже принята, отклоните через отмену бронирования"
)

type Handler struct {
	useCase RejectRequestUseCase
	logger  Logger
}

func NewHandler(useCase RejectRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/requests/{requestId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем requestId из URL
	vars := mux.Vars(r)
	requestIDStr := vars["requestId"]

	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /requests/{id}/reject - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	// Тело опционально: отклонение без причины допустимо
	var body RejectRequestBody
	if err := handlers.DecodeJSON(r, &body); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /requests/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &rejectRequestUC.Request{
		RequestID: requestID,
		Reason:    body.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, rejectRequestUC.ErrRequestNotFound):
			h.logger.Warn("POST /requests/{id}/reject - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rejectRequestUC.ErrRequestNotPending):
			h.logger.Warn("POST /requests/{id}/reject - Request not pending: request_id=%d", requestID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, rejectRequestUC.ErrAlreadyAccepted):
			h.logger.Warn("POST /requests/{id}/reject - Request already accepted: request_id=%d", requestID)
			handlers.RespondConflict(w, msgAlreadyAccepted)

		case errors.Is(err, rejectRequestUC.ErrInvalidInput):
			h.logger.Warn("POST /requests/{id}/reject - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /requests/{id}/reject - Failed to reject request: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests/{id}/reject - Request rejected: request_id=%d", resp.RequestID)
	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(resp))
}
