package get_package_requests

import (
	"context"

	"github.com/m04kA/PBR-SchedulingService/internal/service/requests/models"
)

type RequestService interface {
	ListByPackage(ctx context.Context, req *models.ListPackageRequestsRequest) (*models.RequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
