package create_blocker

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, candidate *domain.Blocker) error {
	if req.CreatedByID <= 0 {
		return fmt.Errorf("%w: createdByID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.Comment != nil && utf8.RuneCountInString(*req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}

	if !candidate.RangeValid() {
		return ErrBlockerRangeInverted
	}

	if !candidate.SpanWithinLimit(domain.MaxBlockerSpanMonths) {
		return fmt.Errorf("%w: maximum span is %d month", ErrBlockerSpanTooLong, domain.MaxBlockerSpanMonths)
	}

	return nil
}
