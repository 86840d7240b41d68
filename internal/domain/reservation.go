package domain

import "time"

// Reservation бронирование мойки автомобиля
type Reservation struct {
	ID                 int64
	UserID             int64
	CompanyID          int64
	VehiclePlateNumber string
	Location           string // место парковки, например "Garage/-1/12"
	State              ReservationState
	Services           []int64 // ID услуг из каталога
	Private            bool    // частная бронь (оплачивает пользователь, не компания)
	Mpv                bool    // минивэн: другая цена, та же длительность
	TimeRequirement    int     // суммарная длительность услуг в минутах
	StartDate          time.Time
	EndDate            *time.Time // StartDate + TimeRequirement, округленный до TimeUnit
	CreatedByID        int64
	CreatedOn          time.Time
	Comments           *string
}

// End возвращает конец интервала бронирования
// Для строк без рассчитанного EndDate используется сырая длительность услуг
func (r *Reservation) End() time.Time {
	if r.EndDate != nil {
		return *r.EndDate
	}
	return r.StartDate.Add(time.Duration(r.TimeRequirement) * time.Minute)
}

// IsActive проверяет, что бронирование занимает рабочий процесс мойки
// (не дошло до терминального состояния)
func (r *Reservation) IsActive() bool {
	return !r.State.IsTerminal()
}

// Overlaps проверяет пересечение брони с полуоткрытым интервалом [start, end)
// Строгие неравенства: граничащие интервалы не считаются пересечением
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartDate.Before(end) && r.End().After(start)
}

// SameDay проверяет, что бронь начинается в указанный календарный день
func (r *Reservation) SameDay(date time.Time) bool {
	y1, m1, d1 := r.StartDate.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ReservationsFilter фильтр для выборки бронирований компании
type ReservationsFilter struct {
	CompanyID int64             // Обязательный параметр
	StartDate *time.Time        // Начало периода (опционально)
	EndDate   *time.Time        // Конец периода (опционально)
	State     *ReservationState // Фильтр по состоянию (опционально)
}
