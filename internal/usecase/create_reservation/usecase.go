package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	tenantClient "github.com/m04kA/SMC-CarWashService/internal/integrations/tenantservice"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования
// Проверки вместимости и вставка идут в одной сериализуемой транзакции:
// две конкурирующие брони на последнее место не могут пройти обе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, company=%d, start=%s, services=%v",
		req.UserID, req.CompanyID, req.StartDate.Format(time.RFC3339), req.Services)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Снимок конфигурации и текущее время
	cfg := uc.config.EngineConfig()
	now := uc.timeProvider.Now()

	// 3. Получаем компанию с её дневным лимитом
	company, err := uc.tenantClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, tenantClient.ErrCompanyNotFound) {
			uc.logger.Warn("CreateReservation: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("CreateReservation: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 4. Считаем длительность и стоимость по каталогу услуг
	timeRequirement, ok := cfg.Catalog.TimeRequirement(req.Services)
	if !ok {
		uc.logger.Warn("CreateReservation: unknown service in %v", req.Services)
		return nil, ErrServiceNotFound
	}
	totalPrice, _ := cfg.Catalog.TotalPrice(req.Services, req.Mpv)

	// 5. Конец интервала: длительность округляется вверх до юнита планирования
	endDate := req.StartDate.Add(time.Duration(cfg.Settings.RoundUpToTimeUnit(timeRequirement)) * time.Minute)

	// 6. Льготное окно для бронирования "задним числом"
	if req.StartDate.Before(cfg.Settings.EarliestAllowedStart(now)) {
		uc.logger.Warn("CreateReservation: start %s is before allowed window", req.StartDate.Format(time.RFC3339))
		return nil, fmt.Errorf("%w: reservations may start at most %d minutes in the past",
			ErrTooLateToReserve, cfg.Settings.MinutesToAllowReserveInPast)
	}

	var result *domain.Reservation

	// 7. Проверки вместимости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Интервал не должен попадать в блокировку
		// SQL сканирует замкнутый диапазон, поэтому блокировка, начинающаяся
		// ровно в конце полуоткрытого интервала брони, отсеивается здесь
		blockers, err := uc.blockerRepo.GetOverlapping(txCtx, req.StartDate, endDate)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get blockers: %v", err)
			return fmt.Errorf("%w: failed to get blockers: %v", ErrInternal, err)
		}
		for _, b := range blockers {
			if b.BlocksInterval(req.StartDate, endDate) {
				uc.logger.Warn("CreateReservation: interval blocked by blocker id=%d", b.ID)
				return fmt.Errorf("%w: blocker id=%d", ErrIntervalBlocked, b.ID)
			}
		}

		// 7.2. Лимит одновременных броней пользователя
		activeCount, err := uc.reservationRepo.CountActiveByUser(txCtx, req.UserID, nil)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to count user reservations: %v", err)
			return fmt.Errorf("%w: failed to count user reservations: %v", ErrInternal, err)
		}
		if activeCount >= cfg.Settings.UserConcurrentReservationLimit {
			uc.logger.Warn("CreateReservation: user id=%d has %d active reservations, limit=%d",
				req.UserID, activeCount, cfg.Settings.UserConcurrentReservationLimit)
			return fmt.Errorf("%w: limit=%d", ErrUserLimitExceeded, cfg.Settings.UserConcurrentReservationLimit)
		}

		// 7.3. Дневная квота компании
		if err := uc.checkCompanyLimit(txCtx, req, company, cfg.Settings, now, nil); err != nil {
			return err
		}

		// 7.4. Вместимость слотов на день
		if err := uc.checkSlotCapacity(txCtx, req.StartDate, endDate, cfg.Slots, nil); err != nil {
			return err
		}

		// 7.5. Создаем бронирование
		reservation := &domain.Reservation{
			UserID:             req.UserID,
			CompanyID:          req.CompanyID,
			VehiclePlateNumber: req.VehiclePlateNumber,
			Location:           req.Location,
			State:              domain.StateSubmittedNotActual,
			Services:           req.Services,
			Private:            req.Private,
			Mpv:                req.Mpv,
			TimeRequirement:    timeRequirement,
			StartDate:          req.StartDate,
			EndDate:            &endDate,
			CreatedByID:        req.CreatedByID,
			Comments:           req.Comments,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

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

// checkCompanyLimit проверяет дневную квоту компании
// excludeID исключает из подсчета собственный след редактируемой брони
func (uc *UseCase) checkCompanyLimit(
	ctx context.Context,
	req *Request,
	company *domain.Company,
	settings domain.ReservationSettings,
	now time.Time,
	excludeID *int64,
) error {
	// Нулевой лимит отключает бронирование для компании целиком,
	// вечернее послабление на него не распространяется
	if !company.BookingEnabled() {
		uc.logger.Warn("CreateReservation: booking disabled for company id=%d", company.ID)
		return fmt.Errorf("%w: booking disabled for company", ErrCompanyLimitExceeded)
	}

	if settings.CompanyLimitSkipped(req.StartDate, now) {
		uc.logger.Info("CreateReservation: company limit check skipped for same-day evening booking")
		return nil
	}

	dayCount, err := uc.reservationRepo.CountByCompanyOnDate(ctx, req.CompanyID, req.StartDate, excludeID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to count company reservations: %v", err)
		return fmt.Errorf("%w: failed to count company reservations: %v", ErrInternal, err)
	}

	if dayCount >= company.DailyLimit {
		uc.logger.Warn("CreateReservation: company id=%d has %d reservations on %s, limit=%d",
			company.ID, dayCount, req.StartDate.Format(domain.DateFormat), company.DailyLimit)
		return fmt.Errorf("%w: limit=%d", ErrCompanyLimitExceeded, company.DailyLimit)
	}

	return nil
}

// checkSlotCapacity проверяет вместимость каждого слота, пересекаемого интервалом [start, end)
// excludeID исключает из подсчета собственный след редактируемой брони
func (uc *UseCase) checkSlotCapacity(
	ctx context.Context,
	start, end time.Time,
	slots domain.SlotTable,
	excludeID *int64,
) error {
	windows, err := slots.WindowsFor(start)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to materialize slot windows: %v", err)
		return fmt.Errorf("%w: failed to materialize slot windows: %v", ErrInternal, err)
	}

	// Берем брони всего дня одним запросом с блокировкой строк
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	existing, err := uc.reservationRepo.GetOverlapping(ctx, dayStart, &dayEnd, excludeID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get overlapping reservations: %v", err)
		return fmt.Errorf("%w: failed to get overlapping reservations: %v", ErrInternal, err)
	}

	for _, window := range windows {
		if !window.Intersects(start, end) {
			continue
		}

		occupied := countInWindow(existing, window)
		if occupied >= window.Capacity {
			uc.logger.Warn("CreateReservation: slot %s is full, %d/%d cars",
				window.Label(), occupied, window.Capacity)
			return fmt.Errorf("%w: slot %s, capacity=%d", ErrSlotFull, window.Label(), window.Capacity)
		}

		uc.logger.Info("CreateReservation: slot %s has room, %d/%d cars",
			window.Label(), occupied, window.Capacity)
	}

	return nil
}
