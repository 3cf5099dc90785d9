package cancel_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PBR-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PBR-SchedulingService/internal/api/middleware"
	"github.com/m04kA/PBR-SchedulingService/internal/service/requests"
	"github.com/m04kA/PBR-SchedulingService/internal/service/requests/models"
)

const (
	msgInvalidRequestID = "некорректный ID заявки"
	msgNotFound         = "заявка не найдена"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgCannotCancel     = "заявка не может быть отменена"
)

type Handler struct {
	service RequestService
	logger  Logger
}

func NewHandler(service RequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/requests/{requestId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем requestId из URL
	vars := mux.Vars(r)
	requestIDStr := vars["requestId"]

	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /requests/{id}/cancel - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	// Получаем customerID из контекста (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /requests/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Cancel(r.Context(), requestID, &models.CancelRequest{CustomerID: customerID})
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrRequestNotFound):
			h.logger.Warn("POST /requests/{id}/cancel - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, requests.ErrAccessDenied):
			h.logger.Warn("POST /requests/{id}/cancel - Access denied: request_id=%d, customer_id=%d",
				requestID, customerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, requests.ErrCannotCancel):
			h.logger.Warn("POST /requests/{id}/cancel - Cannot cancel: request_id=%d", requestID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("POST /requests/{id}/cancel - Failed to cancel request: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests/{id}/cancel - Request cancelled successfully: request_id=%d, customer_id=%d",
		requestID, customerID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
