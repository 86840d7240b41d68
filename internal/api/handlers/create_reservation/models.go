package create_reservation

import (
	"time"

	createReservation "github.com/m04kA/SMC-CarWashService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CompanyID          int64   `json:"companyId"`
	VehiclePlateNumber string  `json:"vehiclePlateNumber"`
	Location           string  `json:"location"`
	Services           []int64 `json:"services"`
	Private            bool    `json:"private"`
	Mpv                bool    `json:"mpv"`
	StartDate          string  `json:"startDate"` // ISO 8601
	Comments           *string `json:"comments,omitempty"`
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
func (r *CreateReservationRequest) ToUseCaseRequest(actorID int64) (*createReservation.Request, error) {
	startDate, err := time.Parse(time.RFC3339, r.StartDate)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:             actorID,
		CompanyID:          r.CompanyID,
		VehiclePlateNumber: r.VehiclePlateNumber,
		Location:           r.Location,
		Services:           r.Services,
		Private:            r.Private,
		Mpv:                r.Mpv,
		StartDate:          startDate,
		CreatedByID:        actorID,
		Comments:           r.Comments,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
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
