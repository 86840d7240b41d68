package domain

import "time"

// ReservationSettings настройки движка бронирования
// Передаются в usecase явно при каждом вызове, глобального состояния нет
type ReservationSettings struct {
	// TimeUnitMinutes шаг планирования: длительность брони округляется
	// вверх до целого числа юнитов
	TimeUnitMinutes int

	// UserConcurrentReservationLimit максимум одновременно активных броней пользователя
	UserConcurrentReservationLimit int

	// MinutesToAllowReserveInPast льготное окно для бронирования "задним числом"
	MinutesToAllowReserveInPast int

	// HoursAfterCompanyLimitIsNotChecked час, после которого дневная квота
	// компании на сегодня не проверяется
	HoursAfterCompanyLimitIsNotChecked int
}

// DefaultReservationSettings настройки по умолчанию
func DefaultReservationSettings() ReservationSettings {
	return ReservationSettings{
		TimeUnitMinutes:                    DefaultTimeUnitMinutes,
		UserConcurrentReservationLimit:     DefaultUserConcurrentReservationLimit,
		MinutesToAllowReserveInPast:        DefaultMinutesToAllowReserveInPast,
		HoursAfterCompanyLimitIsNotChecked: DefaultHoursAfterCompanyLimitIsNotChecked,
	}
}

// RoundUpToTimeUnit округляет длительность вверх до целого числа юнитов
func (s ReservationSettings) RoundUpToTimeUnit(minutes int) int {
	unit := s.TimeUnitMinutes
	if unit <= 0 {
		return minutes
	}
	return (minutes + unit - 1) / unit * unit
}

// EarliestAllowedStart самое раннее время начала, которое еще принимается
func (s ReservationSettings) EarliestAllowedStart(now time.Time) time.Time {
	return now.Add(-time.Duration(s.MinutesToAllowReserveInPast) * time.Minute)
}

// CompanyLimitSkipped проверяет, что дневная квота компании не проверяется:
// поздним вечером квота уже не защищает вместимость, а блокировать
// бронирования на сегодняшний вечер недружелюбно к пользователям
func (s ReservationSettings) CompanyLimitSkipped(date, now time.Time) bool {
	if now.Hour() < s.HoursAfterCompanyLimitIsNotChecked {
		return false
	}
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// EngineConfig снимок конфигурации движка на момент запроса
// "Последняя конфигурация выигрывает": движок перечитывает снимок на каждый запрос
type EngineConfig struct {
	Settings ReservationSettings
	Slots    SlotTable
	Catalog  *ServiceCatalog
}
