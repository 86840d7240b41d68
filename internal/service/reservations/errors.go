package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено:
	// ключи уже сданы и обычная отмена недоступна
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrInvalidStateTransition возвращается при недопустимом переходе состояния
	ErrInvalidStateTransition = errors.New("invalid reservation state transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
