package reject_request

import rejectRequestUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/reject_request"

// RejectRequestBody тело запроса на отклонение заявки
type RejectRequestBody struct {
	Reason *string `json:"reason,omitempty"` // необязательная причина для клиента
}

// RejectResponse ответ на отклонение заявки
type RejectResponse struct {
	RequestID int64  `json:"requestId"`
	Status    string `json:"status"`
}

// fromUseCaseResponse конвертирует ответ usecase в DTO
func fromUseCaseResponse(resp *rejectRequestUC.Response) *RejectResponse {
	return &RejectResponse{
		RequestID: resp.RequestID,
		Status:    resp.Status,
	}
}
