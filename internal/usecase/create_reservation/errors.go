package create_reservation

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("create_reservation: company not found")

	// ErrServiceNotFound возвращается, когда услуга отсутствует в каталоге
	ErrServiceNotFound = errors.New("create_reservation: service not found")

	// ErrTooLateToReserve возвращается, когда начало брони раньше льготного окна
	ErrTooLateToReserve = errors.New("create_reservation: too late to reserve this time")

	// ErrUserLimitExceeded возвращается при превышении лимита одновременных броней пользователя
	ErrUserLimitExceeded = errors.New("create_reservation: user concurrent reservation limit exceeded")

	// ErrCompanyLimitExceeded возвращается при исчерпании дневной квоты компании
	ErrCompanyLimitExceeded = errors.New("create_reservation: company daily limit exceeded")

	// ErrSlotFull возвращается, когда вместимость слота исчерпана
	ErrSlotFull = errors.New("create_reservation: slot is full")

	// ErrIntervalBlocked возвращается, когда запрошенный интервал перекрыт блокировкой
	ErrIntervalBlocked = errors.New("create_reservation: interval is blocked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
