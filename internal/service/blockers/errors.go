package blockers

import "errors"

var (
	// ErrBlockerNotFound возвращается, когда блокировка не найдена
	ErrBlockerNotFound = errors.New("blocker not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
