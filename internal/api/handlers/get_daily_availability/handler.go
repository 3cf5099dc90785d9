package get_daily_availability

import (
	"net/http"
	"time"

	"github.com/m04kA/PBR-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	availabilityUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/get_daily_availability"
)

const (
	msgInvalidDate = "некорректная дата, ожидается формат YYYY-MM-DD"
)

type Handler struct {
	useCase AvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), availabilityUC.Request{Date: date})
	if err != nil {
		h.logger.Error("GET /availability - Failed to compute availability: date=%s, error=%v",
			date.Format(domain.DateFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability - Availability computed: date=%s, packages=%d",
		resp.Date, len(resp.Packages))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
