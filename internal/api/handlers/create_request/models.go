package create_request

import "github.com/m04kA/PBR-SchedulingService/internal/service/requests/models"

// CreateRequestBody тело запроса на создание заявки
// CustomerID берётся из контекста аутентификации, а не из тела
type CreateRequestBody struct {
	PackageID      int64   `json:"packageId"`
	EventDate      string  `json:"eventDate"` // "2025-10-15"
	StartTime      string  `json:"startTime"` // "10:00"
	EndTime        *string `json:"endTime,omitempty"`
	ExtensionHours int     `json:"extensionHours,omitempty"`
}

// ToServiceRequest конвертирует body в модель сервиса
func (b *CreateRequestBody) ToServiceRequest(customerID int64) *models.CreateRequest {
	return &models.CreateRequest{
		CustomerID:     customerID,
		PackageID:      b.PackageID,
		EventDate:      b.EventDate,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		ExtensionHours: b.ExtensionHours,
	}
}
