package update_reservation

import "time"

// Request модель запроса на редактирование бронирования
// Редактирование проходит те же проверки вместимости, что и создание,
// но собственный след брони из подсчетов исключается
type Request struct {
	ReservationID int64     // ID редактируемого бронирования
	ActorID       int64     // Кто редактирует
	Staff         bool      // Сотрудник может редактировать чужие брони в любом состоянии
	Services      []int64   // Новый набор услуг
	Mpv           bool      // Минивэн
	StartDate     time.Time // Новое время сдачи ключей
	Location      string    // Новое место парковки
	Comments      *string   // Комментарий (опционально)
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID                 int64
	UserID             int64
	CompanyID          int64
	VehiclePlateNumber string
	Location           string
	State              int
	Services           []int64
	Private            bool
	Mpv                bool
	TimeRequirement    int
	StartDate          time.Time
	EndDate            time.Time
	TotalPrice         float64
	Comments           *string
	CreatedOn          time.Time
}
