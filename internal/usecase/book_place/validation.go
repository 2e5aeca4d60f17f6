package book_place

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CandidatID <= 0 {
		return fmt.Errorf("%w: candidatID must be positive", ErrInvalidInput)
	}

	if req.CentreID <= 0 {
		return fmt.Errorf("%w: centreID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
