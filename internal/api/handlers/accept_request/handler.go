package accept_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PBR-SchedulingService/internal/api/handlers"
	acceptRequestUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/accept_request"
)

const (
	msgInvalidRequestID = "некорректный ID заявки"
	msgNotFound         = "заявка не найдена"
	msgNotPending       = "заявка уже разрешена"
	msgSlotTaken        = "на этот слот уже принята другая заявка"
)

type Handler struct {
	useCase AcceptRequestUseCase
	logger  Logger
}

func NewHandler(useCase AcceptRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/requests/{requestId}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем requestId из URL
	vars := mux.Vars(r)
	requestIDStr := vars["requestId"]

	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /requests/{id}/accept - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &acceptRequestUC.Request{RequestID: requestID})
	if err != nil {
		switch {
		case errors.Is(err, acceptRequestUC.ErrRequestNotFound):
			h.logger.Warn("POST /requests/{id}/accept - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, acceptRequestUC.ErrRequestNotPending):
			h.logger.Warn("POST /requests/{id}/accept - Request not pending: request_id=%d", requestID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, acceptRequestUC.ErrSlotTaken):
			h.logger.Warn("POST /requests/{id}/accept - Slot taken: request_id=%d", requestID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, acceptRequestUC.ErrInvalidInput):
			h.logger.Warn("POST /requests/{id}/accept - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestID)

		default:
			h.logger.Error("POST /requests/{id}/accept - Failed to accept request: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests/{id}/accept - Request accepted: request_id=%d, booking_id=%d, rejected=%d",
		resp.RequestID, resp.ConfirmedBookingID, len(resp.RejectedCompetitors))
	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(resp))
}
