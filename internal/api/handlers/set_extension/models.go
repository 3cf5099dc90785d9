package set_extension

import setExtensionUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/set_extension"

// SetExtensionBody тело запроса на изменение продления
type SetExtensionBody struct {
	ExtensionHours int  `json:"extensionHours"` // новое абсолютное значение
	Force          bool `json:"force,omitempty"`
}

// SetExtensionResponse ответ на изменение продления
type SetExtensionResponse struct {
	Committed      bool                `json:"committed"`
	BookingID      int64               `json:"bookingId"`
	RequestID      int64               `json:"requestId,omitempty"`
	NewEndTime     string              `json:"newEndTime,omitempty"` // "14:00"
	ExtensionHours int                 `json:"extensionHours"`
	Conflict       *ConflictingBooking `json:"conflict,omitempty"`

	HourlyRate *float64 `json:"hourlyRate,omitempty"`
	AmountDue  *float64 `json:"amountDue,omitempty"`
	Currency   *string  `json:"currency,omitempty"`
}

// ConflictingBooking бронирование, мешающее продлению
type ConflictingBooking struct {
	RequestID int64  `json:"requestId"`
	StartTime string `json:"startTime"` // "16:00"
	EndTime   string `json:"endTime"`   // "18:00"
}

// fromUseCaseResponse конвертирует ответ usecase в DTO
func fromUseCaseResponse(resp *setExtensionUC.Response) *SetExtensionResponse {
	out := &SetExtensionResponse{
		Committed:      resp.Committed,
		BookingID:      resp.BookingID,
		RequestID:      resp.RequestID,
		NewEndTime:     resp.NewEndTime,
		ExtensionHours: resp.ExtensionHours,
		HourlyRate:     resp.HourlyRate,
		AmountDue:      resp.AmountDue,
		Currency:       resp.Currency,
	}
	if resp.Conflict != nil {
		out.Conflict = &ConflictingBooking{
			RequestID: resp.Conflict.RequestID,
			StartTime: resp.Conflict.StartTime,
			EndTime:   resp.Conflict.EndTime,
		}
	}
	return out
}
