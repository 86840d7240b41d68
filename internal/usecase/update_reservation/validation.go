package update_reservation

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
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

// authorize проверяет право актора редактировать бронь
// Владелец правит только до сдачи ключей, сотрудник правит любое нетерминальное состояние
func authorize(r *domain.Reservation, actorID int64, staff bool) error {
	if staff {
		if r.State.IsTerminal() {
			return ErrNotEditable
		}
		return nil
	}

	if r.UserID != actorID {
		return ErrAccessDenied
	}

	if !r.State.CancellableByUser() {
		return ErrNotEditable
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
