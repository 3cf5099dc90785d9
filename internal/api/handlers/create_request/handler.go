package create_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/PBR-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PBR-SchedulingService/internal/api/middleware"
	"github.com/m04kA/PBR-SchedulingService/internal/service/requests"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPackageNotFound    = "пакет не найден"
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

// Handle POST /api/v1/requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем customerID из контекста (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var body CreateRequestBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.Create(r.Context(), body.ToServiceRequest(customerID))
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrPackageNotFound):
			h.logger.Warn("POST /requests - Package not found: package_id=%d", body.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("POST /requests - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /requests - Failed to create request: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests - Request created successfully: request_id=%d, customer_id=%d",
		created.ID, customerID)
	handlers.RespondJSON(w, http.StatusCreated, created)
}
