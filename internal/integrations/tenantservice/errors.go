package tenantservice

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не зарегистрирована в TenantService
	ErrCompanyNotFound = errors.New("company not found in tenant service")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("tenantservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("tenantservice client: invalid response")
)
