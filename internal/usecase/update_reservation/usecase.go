package update_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/reservation"
	tenantClient "github.com/m04kA/SMC-CarWashService/internal/integrations/tenantservice"
)

// UseCase use case для редактирования бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	blockerRepo     BlockerRepository
	tenantClient    TenantServiceClient
	config          ConfigProvider
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	blockerRepo BlockerRepository,
	tenantClient TenantServiceClient,
	config ConfigProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		blockerRepo:     blockerRepo,
		tenantClient:    tenantClient,
		config:          config,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case редактирования бронирования
// Собственный след брони исключается из подсчетов вместимости:
// перенос на 10 минут внутри того же слота не должен упираться в саму себя
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: id=%d, actor=%d, staff=%t, start=%s",
		req.ReservationID, req.ActorID, req.Staff, req.StartDate.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Снимок конфигурации и текущее время
	cfg := uc.config.EngineConfig()
	now := uc.timeProvider.Now()

	var result *domain.Reservation
	var totalPrice float64

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3. Берем существующую бронь и проверяем права
		existing, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("UpdateReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if err := authorize(existing, req.ActorID, req.Staff); err != nil {
			uc.logger.Warn("UpdateReservation: actor=%d denied for reservation id=%d: %v",
				req.ActorID, req.ReservationID, err)
			return err
		}

		// 4. Компания и её дневной лимит
		company, err := uc.tenantClient.GetCompany(txCtx, existing.CompanyID)
		if err != nil {
			if errors.Is(err, tenantClient.ErrCompanyNotFound) {
				uc.logger.Warn("UpdateReservation: company id=%d not found", existing.CompanyID)
				return ErrCompanyNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get company id=%d: %v", existing.CompanyID, err)
			return fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
		}

		// 5. Пересчитываем длительность и стоимость по новому набору услуг
		timeRequirement, ok := cfg.Catalog.TimeRequirement(req.Services)
		if !ok {
			uc.logger.Warn("UpdateReservation: unknown service in %v", req.Services)
			return ErrServiceNotFound
		}
		totalPrice, _ = cfg.Catalog.TotalPrice(req.Services, req.Mpv)

		endDate := req.StartDate.Add(time.Duration(cfg.Settings.RoundUpToTimeUnit(timeRequirement)) * time.Minute)

		// 6. Льготное окно
		if req.StartDate.Before(cfg.Settings.EarliestAllowedStart(now)) {
			uc.logger.Warn("UpdateReservation: start %s is before allowed window", req.StartDate.Format(time.RFC3339))
			return fmt.Errorf("%w: reservations may start at most %d minutes in the past",
				ErrTooLateToReserve, cfg.Settings.MinutesToAllowReserveInPast)
		}

		excludeID := existing.ID

		// 7. Интервал не должен попадать в блокировку
		// SQL сканирует замкнутый диапазон, поэтому блокировка, начинающаяся
		// ровно в конце полуоткрытого интервала брони, отсеивается здесь
		blockers, err := uc.blockerRepo.GetOverlapping(txCtx, req.StartDate, endDate)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to get blockers: %v", err)
			return fmt.Errorf("%w: failed to get blockers: %v", ErrInternal, err)
		}
		for _, b := range blockers {
			if b.BlocksInterval(req.StartDate, endDate) {
				uc.logger.Warn("UpdateReservation: interval blocked by blocker id=%d", b.ID)
				return fmt.Errorf("%w: blocker id=%d", ErrIntervalBlocked, b.ID)
			}
		}

		// 8. Лимит одновременных броней пользователя (без собственного следа)
		activeCount, err := uc.reservationRepo.CountActiveByUser(txCtx, existing.UserID, &excludeID)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to count user reservations: %v", err)
			return fmt.Errorf("%w: failed to count user reservations: %v", ErrInternal, err)
		}
		if activeCount >= cfg.Settings.UserConcurrentReservationLimit {
			uc.logger.Warn("UpdateReservation: user id=%d has %d other active reservations, limit=%d",
				existing.UserID, activeCount, cfg.Settings.UserConcurrentReservationLimit)
			return fmt.Errorf("%w: limit=%d", ErrUserLimitExceeded, cfg.Settings.UserConcurrentReservationLimit)
		}

		// 9. Дневная квота компании (без собственного следа)
		if err := uc.checkCompanyLimit(txCtx, req.StartDate, company, cfg.Settings, now, &excludeID); err != nil {
			return err
		}

		// 10. Вместимость слотов (без собственного следа)
		if err := uc.checkSlotCapacity(txCtx, req.StartDate, endDate, cfg.Slots, &excludeID); err != nil {
			return err
		}

		// 11. Обновляем бронь
		existing.Services = req.Services
		existing.Mpv = req.Mpv
		existing.TimeRequirement = timeRequirement
		existing.StartDate = req.StartDate
		existing.EndDate = &endDate
		existing.Location = req.Location
		existing.Comments = req.Comments

		if err := uc.reservationRepo.Update(txCtx, existing); err != nil {
			uc.logger.Error("UpdateReservation: failed to update reservation id=%d: %v", existing.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result = existing
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%d", result.ID)

	return &Response{
		ID:                 result.ID,
		UserID:             result.UserID,
		CompanyID:          result.CompanyID,
		VehiclePlateNumber: result.VehiclePlateNumber,
		Location:           result.Location,
		State:              int(result.State),
		Services:           result.Services,
		Private:            result.Private,
		Mpv:                result.Mpv,
		TimeRequirement:    result.TimeRequirement,
		StartDate:          result.StartDate,
		EndDate:            result.End(),
		TotalPrice:         totalPrice,
		Comments:           result.Comments,
		CreatedOn:          result.CreatedOn,
	}, nil
}

// checkCompanyLimit проверяет дневную квоту компании без собственного следа брони
func (uc *UseCase) checkCompanyLimit(
	ctx context.Context,
	startDate time.Time,
	company *domain.Company,
	settings domain.ReservationSettings,
	now time.Time,
	excludeID *int64,
) error {
	if !company.BookingEnabled() {
		uc.logger.Warn("UpdateReservation: booking disabled for company id=%d", company.ID)
		return fmt.Errorf("%w: booking disabled for company", ErrCompanyLimitExceeded)
	}

	if settings.CompanyLimitSkipped(startDate, now) {
		uc.logger.Info("UpdateReservation: company limit check skipped for same-day evening booking")
		return nil
	}

	dayCount, err := uc.reservationRepo.CountByCompanyOnDate(ctx, company.ID, startDate, excludeID)
	if err != nil {
		uc.logger.Error("UpdateReservation: failed to count company reservations: %v", err)
		return fmt.Errorf("%w: failed to count company reservations: %v", ErrInternal, err)
	}

	if dayCount >= company.DailyLimit {
		uc.logger.Warn("UpdateReservation: company id=%d has %d reservations on %s, limit=%d",
			company.ID, dayCount, startDate.Format(domain.DateFormat), company.DailyLimit)
		return fmt.Errorf("%w: limit=%d", ErrCompanyLimitExceeded, company.DailyLimit)
	}

	return nil
}

// checkSlotCapacity проверяет вместимость слотов, пересекаемых интервалом [start, end)
func (uc *UseCase) checkSlotCapacity(
	ctx context.Context,
	start, end time.Time,
	slots domain.SlotTable,
	excludeID *int64,
) error {
	windows, err := slots.WindowsFor(start)
	if err != nil {
		uc.logger.Error("UpdateReservation: failed to materialize slot windows: %v", err)
		return fmt.Errorf("%w: failed to materialize slot windows: %v", ErrInternal, err)
	}

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	existing, err := uc.reservationRepo.GetOverlapping(ctx, dayStart, &dayEnd, excludeID)
	if err != nil {
		uc.logger.Error("UpdateReservation: failed to get overlapping reservations: %v", err)
		return fmt.Errorf("%w: failed to get overlapping reservations: %v", ErrInternal, err)
	}

	for _, window := range windows {
		if !window.Intersects(start, end) {
			continue
		}

		occupied := countInWindow(existing, window)
		if occupied >= window.Capacity {
			uc.logger.Warn("UpdateReservation: slot %s is full, %d/%d cars",
				window.Label(), occupied, window.Capacity)
			return fmt.Errorf("%w: slot %s, capacity=%d", ErrSlotFull, window.Label(), window.Capacity)
		}
	}

	return nil
}
