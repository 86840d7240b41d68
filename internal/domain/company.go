package domain

// Company компания-арендатор (tenant) с дневной квотой бронирований
type Company struct {
	ID       int64
	Name     string
	TenantID int64
	// DailyLimit максимум бронирований компании в календарный день
	// 0 = корпоративное бронирование для компании выключено
	DailyLimit int
}

// BookingEnabled проверяет, что пользователи компании вообще могут бронировать
func (c *Company) BookingEnabled() bool {
	return c.DailyLimit > 0
}
