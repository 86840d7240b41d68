package blockers

import (
	"context"
	"errors"
	"fmt"

	blockerRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/blocker"
	"github.com/m04kA/SMC-CarWashService/internal/service/blockers/models"
)

// Service сервис для работы с блокировками
type Service struct {
	blockerRepo BlockerRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(blockerRepo BlockerRepository, logger Logger) *Service {
	return &Service{
		blockerRepo: blockerRepo,
		logger:      logger,
	}
}

// List возвращает все блокировки
func (s *Service) List(ctx context.Context) (*models.BlockerListResponse, error) {
	s.logger.Info("List: fetching blockers")

	blockers, err := s.blockerRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d blockers", len(blockers))
	return models.FromDomainBlockerList(blockers), nil
}

// GetByID возвращает блокировку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BlockerResponse, error) {
	s.logger.Info("GetByID: fetching blocker id=%d", id)

	blocker, err := s.blockerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, blockerRepo.ErrBlockerNotFound) {
			s.logger.Warn("GetByID: blocker id=%d not found", id)
			return nil, ErrBlockerNotFound
		}
		s.logger.Error("GetByID: repository error for blocker id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlocker(blocker), nil
}

// Delete снимает блокировку
// Ранее отмененные брони не восстанавливаются: пользователи бронируют заново
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting blocker id=%d", id)

	if err := s.blockerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockerRepo.ErrBlockerNotFound) {
			s.logger.Warn("Delete: blocker id=%d not found", id)
			return ErrBlockerNotFound
		}
		s.logger.Error("Delete: repository error for blocker id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted blocker id=%d", id)
	return nil
}
