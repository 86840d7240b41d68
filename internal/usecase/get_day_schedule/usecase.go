package get_day_schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

// UseCase use case получения расписания слотов на день
type UseCase struct {
	reservationRepo ReservationRepository
	blockerRepo     BlockerRepository
	config          ConfigProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	blockerRepo BlockerRepository,
	config ConfigProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		blockerRepo:     blockerRepo,
		config:          config,
		logger:          logger,
	}
}

// Execute возвращает занятость каждого слота на запрошенный день
// Чтение без транзакции: расписание справочное, решение о приеме брони
// все равно перепроверяется в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	uc.logger.Info("GetDaySchedule: date=%s", req.Date.Format(domain.DateFormat))

	cfg := uc.config.EngineConfig()

	windows, err := cfg.Slots.WindowsFor(req.Date)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to materialize slot windows: %v", err)
		return nil, fmt.Errorf("%w: failed to materialize slot windows: %v", ErrInternal, err)
	}

	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	reservations, err := uc.reservationRepo.GetOverlapping(ctx, dayStart, &dayEnd, nil)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	blockers, err := uc.blockerRepo.GetOverlapping(ctx, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get blockers: %v", err)
		return nil, fmt.Errorf("%w: failed to get blockers: %v", ErrInternal, err)
	}

	slots := make([]SlotStatus, 0, len(windows))

	for _, window := range windows {
		occupied := 0
		for _, r := range reservations {
			if r.IsActive() && r.Overlaps(window.Start, window.End) {
				occupied++
			}
		}

		blocked := false
		for _, b := range blockers {
			end := window.End
			if b.OverlapsInterval(window.Start, &end) {
				blocked = true
				break
			}
		}

		free := window.Capacity - occupied
		if free < 0 {
			free = 0
		}
		if blocked {
			free = 0
		}

		slots = append(slots, SlotStatus{
			StartTime: types.NewTimeString(window.Start),
			EndTime:   types.NewTimeString(window.End),
			Capacity:  window.Capacity,
			Occupied:  occupied,
			Free:      free,
			Blocked:   blocked,
		})
	}

	return &Response{
		Date:  dayStart,
		Slots: slots,
	}, nil
}
