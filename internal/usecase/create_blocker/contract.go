package create_blocker

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// BlockerRepository интерфейс репозитория блокировок
type BlockerRepository interface {
	Create(ctx context.Context, blocker *domain.Blocker) (*domain.Blocker, error)
	GetAll(ctx context.Context) ([]*domain.Blocker, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetOverlapping(ctx context.Context, from time.Time, to *time.Time, excludeID *int64) ([]*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

// OutboxRepository интерфейс транзакционного outbox
type OutboxRepository interface {
	CreateBatch(ctx context.Context, events []*domain.OutboxEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
