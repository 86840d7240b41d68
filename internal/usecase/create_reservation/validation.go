package create_reservation

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if req.VehiclePlateNumber == "" {
		return fmt.Errorf("%w: vehiclePlateNumber is required", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.VehiclePlateNumber) > domain.MaxPlateLength {
		return fmt.Errorf("%w: vehiclePlateNumber exceeds %d characters", ErrInvalidInput, domain.MaxPlateLength)
	}

	if len(req.Services) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.Comments != nil && utf8.RuneCountInString(*req.Comments) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comments exceed %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}

	return nil
}

// countInWindow подсчитывает активные брони, пересекающие окно слота
func countInWindow(reservations []*domain.Reservation, window domain.SlotWindow) int {
	count := 0
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if r.Overlaps(window.Start, window.End) {
			count++
		}
	}
	return count
}
