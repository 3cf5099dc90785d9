package check_conflict

import "fmt"

// validateRequest валидирует входные данные запроса
// Некорректные данные отклоняются до любого обращения к хранилищу
func validateRequest(req *Request) error {
	if req.PackageID <= 0 {
		return fmt.Errorf("%w: packageID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := req.StartTime.Minutes(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	if req.EndTime != nil {
		endMinutes, err := req.EndTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: invalid end time: %v", ErrInvalidInput, err)
		}
		startMinutes, _ := req.StartTime.Minutes()
		if endMinutes <= startMinutes {
			return fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
		}
	}

	return nil
}
