package check_conflict

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	checkConflictUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/check_conflict"
	"github.com/m04kA/PBR-SchedulingService/pkg/types"
)

// CheckConflictResponse ответ проверки конфликта
type CheckConflictResponse struct {
	Conflicts       bool                `json:"conflicts"`
	ConflictingWith *ConflictingBooking `json:"conflictingWith,omitempty"`
}

// ConflictingBooking мешающее бронирование
type ConflictingBooking struct {
	EventDate string `json:"eventDate"` // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:00"
}

// parseQuery собирает модель usecase из query параметров
// Обязательны packageId, date и startTime; endTime опционален
func parseQuery(query url.Values) (*checkConflictUC.Request, error) {
	packageID, err := strconv.ParseInt(query.Get("packageId"), 10, 64)
	if err != nil || packageID <= 0 {
		return nil, fmt.Errorf("invalid packageId %q", query.Get("packageId"))
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", query.Get("date"), err)
	}

	start, err := types.NewTimeStringFromString(query.Get("startTime"))
	if err != nil {
		return nil, fmt.Errorf("invalid startTime %q: %w", query.Get("startTime"), err)
	}

	req := &checkConflictUC.Request{
		PackageID: packageID,
		Date:      date,
		StartTime: start,
	}

	if raw := query.Get("endTime"); raw != "" {
		end, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid endTime %q: %w", raw, err)
		}
		req.EndTime = &end
	}

	return req, nil
}

// fromUseCaseResponse конвертирует ответ usecase в DTO
func fromUseCaseResponse(resp *checkConflictUC.Response) *CheckConflictResponse {
	out := &CheckConflictResponse{Conflicts: resp.Conflicts}
	if resp.ConflictingWith != nil {
		out.ConflictingWith = &ConflictingBooking{
			EventDate: resp.ConflictingWith.EventDate,
			StartTime: resp.ConflictingWith.StartTime,
			EndTime:   resp.ConflictingWith.EndTime,
		}
	}
	return out
}
