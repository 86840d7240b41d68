package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	CountActiveByUser(ctx context.Context, userID int64, excludeID *int64) (int, error)
	CountByCompanyOnDate(ctx context.Context, companyID int64, date time.Time, excludeID *int64) (int, error)
	GetOverlapping(ctx context.Context, from time.Time, to *time.Time, excludeID *int64) ([]*domain.Reservation, error)
}

// BlockerRepository интерфейс репозитория блокировок
type BlockerRepository interface {
	GetOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Blocker, error)
}

// TenantServiceClient интерфейс клиента для TenantService
type TenantServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*domain.Company, error)
}

// ConfigProvider снимок конфигурации движка
// Перечитывается на каждый запрос: последняя конфигурация выигрывает
type ConfigProvider interface {
	EngineConfig() domain.EngineConfig
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
