package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

var (
	// ErrInvalidState возвращается при некорректном состоянии в фильтре
	ErrInvalidState = errors.New("invalid reservation state")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	ActorID int64  `json:"actorId"`
	Staff   bool   `json:"-"`
	Reason  string `json:"reason"`
}

// AdvanceStateRequest запрос на перевод брони в следующее состояние
type AdvanceStateRequest struct {
	ActorID   int64 `json:"actorId"`
	NextState int   `json:"nextState"`
}

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64 `json:"userId"`
	State  *int  `json:"state,omitempty"`
}

// GetCompanyReservationsRequest запрос на получение бронирований компании
type GetCompanyReservationsRequest struct {
	CompanyID int64      `json:"companyId"`
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	State     *int       `json:"state,omitempty"`     // Фильтр по состоянию (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCompanyReservationsRequest) ToDomainFilter() (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{
		CompanyID: r.CompanyID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.State != nil {
		state := domain.ReservationState(*r.State)
		if !state.Valid() {
			return filter, ErrInvalidState
		}
		filter.State = &state
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID                 int64   `json:"id"`
	UserID             int64   `json:"userId"`
	CompanyID          int64   `json:"companyId"`
	VehiclePlateNumber string  `json:"vehiclePlateNumber"`
	Location           string  `json:"location"`
	State              int     `json:"state"`
	StateName          string  `json:"stateName"`
	Services           []int64 `json:"services"`
	Private            bool    `json:"private"`
	Mpv                bool    `json:"mpv"`
	TimeRequirement    int     `json:"timeRequirement"`
	StartDate          string  `json:"startDate"` // ISO 8601
	EndDate            string  `json:"endDate"`   // ISO 8601
	Comments           *string `json:"comments,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		CompanyID:          r.CompanyID,
		VehiclePlateNumber: r.VehiclePlateNumber,
		Location:           r.Location,
		State:              int(r.State),
		StateName:          r.State.String(),
		Services:           r.Services,
		Private:            r.Private,
		Mpv:                r.Mpv,
		TimeRequirement:    r.TimeRequirement,
		StartDate:          r.StartDate.Format(time.RFC3339),
		EndDate:            r.End().Format(time.RFC3339),
		Comments:           r.Comments,
		CreatedAt:          r.CreatedOn,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	result := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, *FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: result}
}
