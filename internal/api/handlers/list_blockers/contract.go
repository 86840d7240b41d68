package list_blockers

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/service/blockers/models"
)

type BlockerService interface {
	List(ctx context.Context) (*models.BlockerListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
