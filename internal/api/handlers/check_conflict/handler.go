package check_conflict

import (
	"errors"
	"net/http"

	"github.com/m04kA/PBR-SchedulingService/internal/api/handlers"
	checkConflictUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/check_conflict"
)

const (
	msgInvalidQuery    = "некорректные параметры запроса"
	msgPackageNotFound = "пакет не найден"
)

type Handler struct {
	useCase CheckConflictUseCase
	logger  Logger
}

func NewHandler(useCase CheckConflictUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/conflicts/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /conflicts/check - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkConflictUC.ErrPackageNotFound):
			h.logger.Warn("GET /conflicts/check - Package not found: package_id=%d", req.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, checkConflictUC.ErrInvalidInput):
			h.logger.Warn("GET /conflicts/check - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /conflicts/check - Failed to check conflict: package_id=%d, error=%v",
				req.PackageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /conflicts/check - Check completed: package_id=%d, conflicts=%v",
		req.PackageID, resp.Conflicts)
	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(resp))
}
