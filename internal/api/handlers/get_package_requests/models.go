package get_package_requests

import (
	"fmt"
	"net/url"
	"time"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	"github.com/m04kA/PBR-SchedulingService/internal/service/requests/models"
)

// parseQuery собирает модель сервиса из query параметров
// Поддерживаются status, startDate и endDate (обе даты в формате YYYY-MM-DD)
func parseQuery(packageID int64, query url.Values) (*models.ListPackageRequestsRequest, error) {
	req := &models.ListPackageRequestsRequest{PackageID: packageID}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("startDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate %q: %w", raw, err)
		}
		req.StartDate = &date
	}

	if raw := query.Get("endDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate %q: %w", raw, err)
		}
		req.EndDate = &date
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("endDate is before startDate")
	}

	return req, nil
}
