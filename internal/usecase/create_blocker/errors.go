package create_blocker

import "errors"

var (
	// ErrBlockerRangeInverted возвращается, когда начало блокировки позже конца
	ErrBlockerRangeInverted = errors.New("create_blocker: start date is after end date")

	// ErrBlockerSpanTooLong возвращается, когда блокировка длиннее месяца
	ErrBlockerSpanTooLong = errors.New("create_blocker: blocker span exceeds one month")

	// ErrBlockerOverlap возвращается при пересечении с существующей блокировкой
	ErrBlockerOverlap = errors.New("create_blocker: blocker overlaps an existing one")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_blocker: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_blocker: internal error")
)
