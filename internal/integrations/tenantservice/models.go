package tenantservice

// CompanyResponse модель компании из TenantService
type CompanyResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	TenantID   int64  `json:"tenant_id"`
	DailyLimit int    `json:"daily_limit"`
}

// ErrorResponse модель ошибки от TenantService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
