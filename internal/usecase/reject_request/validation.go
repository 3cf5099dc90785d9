package reject_request

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.RequestID <= 0 {
		return fmt.Errorf("%w: request id must be positive", ErrInvalidInput)
	}

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxRejectionNoteLength {
		return fmt.Errorf("%w: reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxRejectionNoteLength)
	}

	return nil
}
