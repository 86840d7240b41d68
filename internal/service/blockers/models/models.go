package models

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// BlockerResponse ответ с данными блокировки
type BlockerResponse struct {
	ID          int64   `json:"id"`
	StartDate   string  `json:"startDate"`         // ISO 8601
	EndDate     *string `json:"endDate,omitempty"` // ISO 8601, null = открытая блокировка
	Comment     *string `json:"comment,omitempty"`
	CreatedByID int64   `json:"createdById"`

	CreatedAt time.Time `json:"createdAt"`
}

// BlockerListResponse ответ со списком блокировок
type BlockerListResponse struct {
	Blockers []BlockerResponse `json:"blockers"`
}

// FromDomainBlocker конвертирует domain модель в DTO
func FromDomainBlocker(b *domain.Blocker) *BlockerResponse {
	if b == nil {
		return nil
	}

	resp := &BlockerResponse{
		ID:          b.ID,
		StartDate:   b.StartDate.Format(time.RFC3339),
		Comment:     b.Comment,
		CreatedByID: b.CreatedByID,
		CreatedAt:   b.CreatedOn,
	}

	if b.EndDate != nil {
		end := b.EndDate.Format(time.RFC3339)
		resp.EndDate = &end
	}

	return resp
}

// FromDomainBlockerList конвертирует список domain моделей в DTO
func FromDomainBlockerList(blockers []*domain.Blocker) *BlockerListResponse {
	result := make([]BlockerResponse, 0, len(blockers))
	for _, b := range blockers {
		result = append(result, *FromDomainBlocker(b))
	}
	return &BlockerListResponse{Blockers: result}
}
