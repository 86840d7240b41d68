package create_blocker

import (
	"time"

	createBlocker "github.com/m04kA/SMC-CarWashService/internal/usecase/create_blocker"
)

// CreateBlockerRequest HTTP request model
type CreateBlockerRequest struct {
	StartDate string  `json:"startDate"`         // ISO 8601
	EndDate   *string `json:"endDate,omitempty"` // ISO 8601, null = открытая блокировка
	Comment   *string `json:"comment,omitempty"`
}

// BlockerResponse HTTP response model
type BlockerResponse struct {
	ID          int64   `json:"id"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate,omitempty"`
	Comment     *string `json:"comment,omitempty"`
	CreatedByID int64   `json:"createdById"`
	CreatedAt   string  `json:"createdAt"`

	CancelledReservationIDs []int64 `json:"cancelledReservationIds"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBlockerRequest) ToUseCaseRequest(actorID int64) (*createBlocker.Request, error) {
	startDate, err := time.Parse(time.RFC3339, r.StartDate)
	if err != nil {
		return nil, err
	}

	req := &createBlocker.Request{
		StartDate:   startDate,
		Comment:     r.Comment,
		CreatedByID: actorID,
	}

	if r.EndDate != nil {
		endDate, err := time.Parse(time.RFC3339, *r.EndDate)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBlocker.Response) *BlockerResponse {
	result := &BlockerResponse{
		ID:                      resp.ID,
		StartDate:               resp.StartDate.Format(time.RFC3339),
		Comment:                 resp.Comment,
		CreatedByID:             resp.CreatedByID,
		CreatedAt:               resp.CreatedOn.Format(time.RFC3339),
		CancelledReservationIDs: resp.CancelledReservationIDs,
	}

	if result.CancelledReservationIDs == nil {
		result.CancelledReservationIDs = []int64{}
	}

	if resp.EndDate != nil {
		end := resp.EndDate.Format(time.RFC3339)
		result.EndDate = &end
	}

	return result
}
