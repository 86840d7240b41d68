package get_day_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetOverlapping(ctx context.Context, from time.Time, to *time.Time, excludeID *int64) ([]*domain.Reservation, error)
}

// BlockerRepository интерфейс репозитория блокировок
type BlockerRepository interface {
	GetOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Blocker, error)
}

// ConfigProvider снимок конфигурации движка
type ConfigProvider interface {
	EngineConfig() domain.EngineConfig
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
