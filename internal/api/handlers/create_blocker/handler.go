package create_blocker

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	createBlocker "github.com/m04kA/SMC-CarWashService/internal/usecase/create_blocker"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается ISO 8601"
	msgStaffOnly          = "операция доступна только сотрудникам"
	msgRangeInverted      = "начало блокировки позже её конца"
	msgSpanTooLong        = "блокировка не может длиться дольше месяца"
	msgBlockerOverlap     = "блокировка пересекается с существующей"
)

type Handler struct {
	useCase CreateBlockerUseCase
	logger  Logger
}

func NewHandler(useCase CreateBlockerUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/blockers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserID(r.Context())

	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("POST /blockers - Staff only, actor=%d", actorID)
		handlers.RespondForbidden(w, msgStaffOnly)
		return
	}

	var req CreateBlockerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blockers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actorID)
	if err != nil {
		h.logger.Warn("POST /blockers - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBlocker.ErrBlockerRangeInverted):
			h.logger.Warn("POST /blockers - Range inverted, actor=%d", actorID)
			handlers.RespondBadRequest(w, msgRangeInverted)

		case errors.Is(err, createBlocker.ErrBlockerSpanTooLong):
			h.logger.Warn("POST /blockers - Span too long, actor=%d", actorID)
			handlers.RespondBadRequest(w, msgSpanTooLong)

		case errors.Is(err, createBlocker.ErrBlockerOverlap):
			h.logger.Warn("POST /blockers - Overlap with existing blocker, actor=%d", actorID)
			handlers.RespondConflict(w, msgBlockerOverlap)

		case errors.Is(err, createBlocker.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /blockers - Failed to create blocker: actor=%d, error=%v", actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blockers - Blocker created: blocker_id=%d, cancelled=%d reservations, actor=%d",
		result.ID, len(result.CancelledReservationIDs), actorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
