package create_blocker

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
)

const cancellationReason = "временная блокировка мойки администратором"

// UseCase use case для создания блокировки
type UseCase struct {
	blockerRepo     BlockerRepository
	reservationRepo ReservationRepository
	outboxRepo      OutboxRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	blockerRepo BlockerRepository,
	reservationRepo ReservationRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		blockerRepo:     blockerRepo,
		reservationRepo: reservationRepo,
		outboxRepo:      outboxRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case создания блокировки
// Проверка пересечений, вставка, каскадная отмена броней и запись outbox
// событий идут в одной сериализуемой транзакции: либо блокировка принята
// и все попавшие под неё брони отменены, либо ничего не изменилось
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBlocker: creator=%d, start=%s, end=%s",
		req.CreatedByID, req.StartDate.Format(time.RFC3339), formatEnd(req.EndDate))

	candidate := &domain.Blocker{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Comment:     req.Comment,
		CreatedByID: req.CreatedByID,
	}

	// 1. Валидация диапазона
	if err := validateRequest(req, candidate); err != nil {
		uc.logger.Warn("CreateBlocker: validation failed: %v", err)
		return nil, err
	}

	var created *domain.Blocker
	var cancelledIDs []int64

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Пересечение с существующими блокировками (замкнутые интервалы,
		// открытый конец = +бесконечность); строки заблокированы FOR UPDATE
		existing, err := uc.blockerRepo.GetAll(txCtx)
		if err != nil {
			uc.logger.Error("CreateBlocker: failed to get blockers: %v", err)
			return fmt.Errorf("%w: failed to get blockers: %v", ErrInternal, err)
		}

		for _, other := range existing {
			if candidate.Overlaps(other) {
				uc.logger.Warn("CreateBlocker: overlaps existing blocker id=%d", other.ID)
				return fmt.Errorf("%w: blocker id=%d", ErrBlockerOverlap, other.ID)
			}
		}

		// 3. Вставка блокировки
		created, err = uc.blockerRepo.Create(txCtx, candidate)
		if err != nil {
			uc.logger.Error("CreateBlocker: failed to create blocker: %v", err)
			return fmt.Errorf("%w: failed to create blocker: %v", ErrInternal, err)
		}

		// 4. Каскадная отмена броней, попавших в блокировку
		// Отменяются только еще не начатые (SubmittedNotActual): машину,
		// ключи от которой уже сданы, молча отменять нельзя
		victims, err := uc.findCancellableReservations(txCtx, created)
		if err != nil {
			return err
		}

		events := make([]*domain.OutboxEvent, 0, len(victims)*2)

		for _, victim := range victims {
			if err := uc.reservationRepo.Delete(txCtx, victim.ID); err != nil {
				uc.logger.Error("CreateBlocker: failed to delete reservation id=%d: %v", victim.ID, err)
				return fmt.Errorf("%w: failed to delete reservation: %v", ErrInternal, err)
			}
			events = append(events, domain.NewCancellationEvents(victim, created.CreatedByID, cancellationReason)...)
			cancelledIDs = append(cancelledIDs, victim.ID)
		}

		// 5. Outbox события коммитятся вместе с отменой; доставка out-of-band
		if err := uc.outboxRepo.CreateBatch(txCtx, events); err != nil {
			uc.logger.Error("CreateBlocker: failed to enqueue outbox events: %v", err)
			return fmt.Errorf("%w: failed to enqueue outbox events: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBlocker: successfully created blocker id=%d, cancelled %d reservations",
		created.ID, len(cancelledIDs))

	return &Response{
		ID:                      created.ID,
		StartDate:               created.StartDate,
		EndDate:                 created.EndDate,
		Comment:                 created.Comment,
		CreatedByID:             created.CreatedByID,
		CreatedOn:               created.CreatedOn,
		CancelledReservationIDs: cancelledIDs,
	}, nil
}

// findCancellableReservations находит еще не начатые брони внутри блокировки
func (uc *UseCase) findCancellableReservations(ctx context.Context, blocker *domain.Blocker) ([]*domain.Reservation, error) {
	// Замкнутый конец блокировки: бронь, начинающаяся ровно в EndDate,
	// тоже попадает под отмену, поэтому SQL диапазон расширяется на секунду
	var scanTo *time.Time
	if blocker.EndDate != nil {
		scanTo = ptr.Ptr(blocker.EndDate.Add(time.Second))
	}

	overlapping, err := uc.reservationRepo.GetOverlapping(ctx, blocker.StartDate, scanTo, nil)
	if err != nil {
		uc.logger.Error("CreateBlocker: failed to scan reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to scan reservations: %v", ErrInternal, err)
	}

	victims := make([]*domain.Reservation, 0, len(overlapping))
	for _, r := range overlapping {
		if r.State != domain.StateSubmittedNotActual {
			uc.logger.Info("CreateBlocker: reservation id=%d in state %s left for staff, not auto-cancelled",
				r.ID, r.State)
			continue
		}
		if blocker.BlocksReservation(r) {
			victims = append(victims, r)
		}
	}

	return victims, nil
}

func formatEnd(end *time.Time) string {
	if end == nil {
		return "open"
	}
	return end.Format(time.RFC3339)
}
