package accept_request

import acceptRequestUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/accept_request"

// AcceptResponse ответ на принятие заявки
type AcceptResponse struct {
	RequestID           int64                `json:"requestId"`
	ConfirmedBookingID  int64                `json:"confirmedBookingId"`
	EventDate           string               `json:"eventDate"` // "2025-10-15"
	StartTime           string               `json:"startTime"` // "10:00"
	RejectedCompetitors []RejectedCompetitor `json:"rejectedCompetitors"`
}

// RejectedCompetitor конкурирующая заявка, отклонённая каскадом
type RejectedCompetitor struct {
	RequestID  int64 `json:"requestId"`
	CustomerID int64 `json:"customerId"`
}

// fromUseCaseResponse конвертирует ответ usecase в DTO
func fromUseCaseResponse(resp *acceptRequestUC.Response) *AcceptResponse {
	out := &AcceptResponse{
		RequestID:           resp.RequestID,
		ConfirmedBookingID:  resp.ConfirmedBookingID,
		EventDate:           resp.EventDate,
		StartTime:           resp.StartTime,
		RejectedCompetitors: make([]RejectedCompetitor, 0, len(resp.RejectedCompetitors)),
	}
	for _, r := range resp.RejectedCompetitors {
		out.RejectedCompetitors = append(out.RejectedCompetitors, RejectedCompetitor{
			RequestID:  r.RequestID,
			CustomerID: r.CustomerID,
		})
	}
	return out
}
