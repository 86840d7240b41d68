package update_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда бронь редактирует не владелец и не сотрудник
	ErrAccessDenied = errors.New("update_reservation: access denied")

	// ErrNotEditable возвращается, когда ключи уже сданы и редактирование
	// доступно только сотруднику
	ErrNotEditable = errors.New("update_reservation: reservation is no longer editable by user")

	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("update_reservation: company not found")

	// ErrServiceNotFound возвращается, когда услуга отсутствует в каталоге
	ErrServiceNotFound = errors.New("update_reservation: service not found")

	// ErrTooLateToReserve возвращается, когда новое начало брони раньше льготного окна
	ErrTooLateToReserve = errors.New("update_reservation: too late to reserve this time")

	// ErrUserLimitExceeded возвращается при превышении лимита одновременных броней пользователя
	ErrUserLimitExceeded = errors.New("update_reservation: user concurrent reservation limit exceeded")

	// ErrCompanyLimitExceeded возвращается при исчерпании дневной квоты компании
	ErrCompanyLimitExceeded = errors.New("update_reservation: company daily limit exceeded")

	// ErrSlotFull возвращается, когда вместимость слота исчерпана
	ErrSlotFull = errors.New("update_reservation: slot is full")

	// ErrIntervalBlocked возвращается, когда запрошенный интервал перекрыт блокировкой
	ErrIntervalBlocked = errors.New("update_reservation: interval is blocked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
