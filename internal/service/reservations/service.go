package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CarWashService/internal/service/reservations/models"
)

const userCancellationReason = "бронирование отменено"

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	outboxRepo      OutboxRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		outboxRepo:      outboxRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свою бронь, сотрудник видит любую
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64, staff bool) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for actor=%d", id, actorID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !staff && reservation.UserID != actorID {
		s.logger.Warn("GetByID: access denied for actor=%d to reservation id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает бронирования пользователя
// Опционально фильтрует по состоянию
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, state=%v", req.UserID, req.State)

	var domainState *domain.ReservationState
	if req.State != nil {
		state := domain.ReservationState(*req.State)
		if !state.Valid() {
			s.logger.Warn("GetUserReservations: invalid state=%d for user=%d", *req.State, req.UserID)
			return nil, fmt.Errorf("%w: invalid state", ErrInvalidInput)
		}
		domainState = &state
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainState)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetCompanyReservations получает бронирования компании с фильтрацией
// по периоду и состоянию; доступно только сотрудникам
func (s *Service) GetCompanyReservations(ctx context.Context, req *models.GetCompanyReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetCompanyReservations: fetching reservations for company=%d", req.CompanyID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCompanyReservations: invalid filter for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByCompanyWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCompanyReservations: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: GetCompanyReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCompanyReservations: successfully fetched %d reservations for company=%d",
		len(reservations), req.CompanyID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование
// Пользователь отменяет свою бронь до сдачи ключей, сотрудник отменяет любую
// нетерминальную; строка удаляется, уведомления уходят через outbox
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by actor=%d, staff=%t",
		reservationID, req.ActorID, req.Staff)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, reservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
				return ErrReservationNotFound
			}
			s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if req.Staff {
			if reservation.State.IsTerminal() {
				s.logger.Warn("Cancel: reservation id=%d is already done", reservationID)
				return ErrCannotCancel
			}
		} else {
			if reservation.UserID != req.ActorID {
				s.logger.Warn("Cancel: access denied for actor=%d to reservation id=%d", req.ActorID, reservationID)
				return ErrAccessDenied
			}
			// После сдачи ключей машина уже в работе, отмена только через сотрудника
			if !reservation.State.CancellableByUser() {
				s.logger.Warn("Cancel: reservation id=%d in state %s, key already dropped",
					reservationID, reservation.State)
				return ErrCannotCancel
			}
		}

		if err := s.reservationRepo.Delete(txCtx, reservationID); err != nil {
			s.logger.Error("Cancel: failed to delete reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Cancel - failed to delete reservation: %v", ErrInternal, err)
		}

		reason := req.Reason
		if reason == "" {
			reason = userCancellationReason
		}

		events := domain.NewCancellationEvents(reservation, req.ActorID, reason)
		if err := s.outboxRepo.CreateBatch(txCtx, events); err != nil {
			s.logger.Error("Cancel: failed to enqueue outbox events for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Cancel - failed to enqueue outbox events: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}

// AdvanceState переводит бронь в следующее состояние жизненного цикла
// Доступно только сотрудникам; допускается ровно один шаг вперед
func (s *Service) AdvanceState(ctx context.Context, reservationID int64, req *models.AdvanceStateRequest) (*models.ReservationResponse, error) {
	s.logger.Info("AdvanceState: reservation id=%d to state=%d by actor=%d",
		reservationID, req.NextState, req.ActorID)

	next := domain.ReservationState(req.NextState)
	if !next.Valid() {
		s.logger.Warn("AdvanceState: invalid state=%d for reservation id=%d", req.NextState, reservationID)
		return nil, fmt.Errorf("%w: invalid state", ErrInvalidInput)
	}

	var result *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, reservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("AdvanceState: reservation id=%d not found", reservationID)
				return ErrReservationNotFound
			}
			s.logger.Error("AdvanceState: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: AdvanceState - repository error: %v", ErrInternal, err)
		}

		if !reservation.State.CanTransitionTo(next, reservation.Private) {
			s.logger.Warn("AdvanceState: transition %s -> %s denied for reservation id=%d",
				reservation.State, next, reservationID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, reservation.State, next)
		}

		if err := s.reservationRepo.UpdateState(txCtx, reservationID, next); err != nil {
			s.logger.Error("AdvanceState: failed to update state for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: AdvanceState - failed to update state: %v", ErrInternal, err)
		}

		reservation.State = next
		result = reservation
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("AdvanceState: reservation id=%d moved to state=%s", reservationID, result.State)
	return models.FromDomainReservation(result), nil
}
