package get_package_requests

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PBR-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PBR-SchedulingService/internal/service/requests"
)

const (
	msgInvalidPackageID = "некорректный ID пакета"
	msgInvalidQuery     = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/packages/{packageId}/requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем packageId из URL
	vars := mux.Vars(r)
	packageIDStr := vars["packageId"]

	packageID, err := strconv.ParseInt(packageIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /packages/{id}/requests - Invalid package ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return
	}

	// Парсим фильтры из query
	req, err := parseQuery(packageID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /packages/{id}/requests - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	list, err := h.service.ListByPackage(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("GET /packages/{id}/requests - Invalid input: package_id=%d, error=%v", packageID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /packages/{id}/requests - Failed to list requests: package_id=%d, error=%v",
				packageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /packages/{id}/requests - Retrieved %d requests: package_id=%d",
		len(list.Requests), packageID)
	handlers.RespondJSON(w, http.StatusOK, list)
}
