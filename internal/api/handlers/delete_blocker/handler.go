package delete_blocker

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/service/blockers"
)

const (
	msgInvalidBlockerID = "некорректный ID блокировки"
	msgBlockerNotFound  = "блокировка не найдена"
	msgStaffOnly        = "операция доступна только сотрудникам"
)

type Handler struct {
	service BlockerService
	logger  Logger
}

func NewHandler(service BlockerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/blockers/{blockerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserID(r.Context())

	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("DELETE /blockers - Staff only, actor=%d", actorID)
		handlers.RespondForbidden(w, msgStaffOnly)
		return
	}

	blockerID, err := strconv.ParseInt(mux.Vars(r)["blockerId"], 10, 64)
	if err != nil || blockerID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBlockerID)
		return
	}

	if err := h.service.Delete(r.Context(), blockerID); err != nil {
		switch {
		case errors.Is(err, blockers.ErrBlockerNotFound):
			handlers.RespondNotFound(w, msgBlockerNotFound)
		default:
			h.logger.Error("DELETE /blockers/%d - Failed: actor=%d, error=%v", blockerID, actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /blockers/%d - Blocker deleted by actor=%d", blockerID, actorID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
