package notifyservice

import "time"

// CancellationRequest запрос на отправку уведомления об отмене брони
type CancellationRequest struct {
	IdempotencyKey     string    `json:"idempotency_key"`
	UserID             int64     `json:"user_id"`
	ReservationID      int64     `json:"reservation_id"`
	VehiclePlateNumber string    `json:"vehicle_plate_number"`
	StartDate          time.Time `json:"start_date"`
	Reason             string    `json:"reason"`
}
