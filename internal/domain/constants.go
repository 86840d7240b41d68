package domain

// Default reservation settings
const (
	DefaultTimeUnitMinutes                    = 15
	DefaultUserConcurrentReservationLimit     = 2
	DefaultMinutesToAllowReserveInPast        = 15
	DefaultHoursAfterCompanyLimitIsNotChecked = 11
)

// Business validation constants
const (
	MinTimeUnitMinutes = 5
	MaxTimeUnitMinutes = 120

	// MaxBlockerSpanMonths максимальная длительность блокировки с заданным концом
	MaxBlockerSpanMonths = 1

	MaxCommentLength = 500
	MaxPlateLength   = 16
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
