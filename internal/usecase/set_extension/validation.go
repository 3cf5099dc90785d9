package set_extension

import "fmt"

// validateRequest проверяет корректность входных данных
func (uc *UseCase) validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	if req.ExtensionHours < 0 {
		return fmt.Errorf("%w: extension hours must not be negative", ErrInvalidInput)
	}

	if req.ExtensionHours > uc.rules.ExtensionCeilingHours {
		return fmt.Errorf("%w: requested %d hours, ceiling is %d",
			ErrCeilingExceeded, req.ExtensionHours, uc.rules.ExtensionCeilingHours)
	}

	return nil
}
