package list_blockers

import (
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
)

const msgStaffOnly = "операция доступна только сотрудникам"

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

// Handle GET /api/v1/blockers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserID(r.Context())

	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("GET /blockers - Staff only, actor=%d", actorID)
		handlers.RespondForbidden(w, msgStaffOnly)
		return
	}

	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /blockers - Failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
