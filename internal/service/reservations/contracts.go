package reservations

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64, state *domain.ReservationState) ([]*domain.Reservation, error)
	GetByCompanyWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	UpdateState(ctx context.Context, id int64, state domain.ReservationState) error
	Delete(ctx context.Context, id int64) error
}

// OutboxRepository интерфейс транзакционного outbox
type OutboxRepository interface {
	CreateBatch(ctx context.Context, events []*domain.OutboxEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
