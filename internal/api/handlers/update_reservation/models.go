package update_reservation

import (
	"time"

	updateReservation "github.com/m04kA/SMC-CarWashService/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model
type UpdateReservationRequest struct {
	Services  []int64 `json:"services"`
	Mpv       bool    `json:"mpv"`
	StartDate string  `json:"startDate"` // ISO 8601
	Location  string  `json:"location"`
	Comments  *string `json:"comments,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                 int64   `json:"id"`
	UserID             int64   `json:"userId"`
	CompanyID          int64   `json:"companyId"`
	VehiclePlateNumber string  `json:"vehiclePlateNumber"`
	Location           string  `json:"location"`
	State              int     `json:"state"`
	Services           []int64 `json:"services"`
	Private            bool    `json:"private"`
	Mpv                bool    `json:"mpv"`
	TimeRequirement    int     `json:"timeRequirement"`
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
	TotalPrice         float64 `json:"totalPrice"`
	Comments           *string `json:"comments,omitempty"`
	CreatedAt          string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(reservationID, actorID int64, staff bool) (*updateReservation.Request, error) {
	startDate, err := time.Parse(time.RFC3339, r.StartDate)
	if err != nil {
		return nil, err
	}

	return &updateReservation.Request{
		ReservationID: reservationID,
		ActorID:       actorID,
		Staff:         staff,
		Services:      r.Services,
		Mpv:           r.Mpv,
		StartDate:     startDate,
		Location:      r.Location,
		Comments:      r.Comments,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:                 resp.ID,
		UserID:             resp.UserID,
		CompanyID:          resp.CompanyID,
		VehiclePlateNumber: resp.VehiclePlateNumber,
		Location:           resp.Location,
		State:              resp.State,
		Services:           resp.Services,
		Private:            resp.Private,
		Mpv:                resp.Mpv,
		TimeRequirement:    resp.TimeRequirement,
		StartDate:          resp.StartDate.Format(time.RFC3339),
		EndDate:            resp.EndDate.Format(time.RFC3339),
		TotalPrice:         resp.TotalPrice,
		Comments:           resp.Comments,
		CreatedAt:          resp.CreatedOn.Format(time.RFC3339),
	}
}
