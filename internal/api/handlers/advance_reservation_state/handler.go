package advance_reservation_state

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/service/reservations"
	"github.com/m04kA/SMC-CarWashService/internal/service/reservations/models"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidReservationID   = "некорректный ID бронирования"
	msgReservationNotFound    = "бронирование не найдено"
	msgStaffOnly              = "операция доступна только сотрудникам"
	msgInvalidStateTransition = "недопустимый переход состояния"
)

// AdvanceStateRequest HTTP request model
type AdvanceStateRequest struct {
	NextState int `json:"nextState"`
}

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/state
// Жизненный цикл двигают только сотрудники мойки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserID(r.Context())

	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("PATCH /reservations/state - Staff only, actor=%d", actorID)
		handlers.RespondForbidden(w, msgStaffOnly)
		return
	}

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req AdvanceStateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/%d/state - Invalid request body: %v", reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AdvanceState(r.Context(), reservationID, &models.AdvanceStateRequest{
		ActorID:   actorID,
		NextState: req.NextState,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrInvalidStateTransition):
			h.logger.Warn("PATCH /reservations/%d/state - Invalid transition to %d", reservationID, req.NextState)
			handlers.RespondConflict(w, msgInvalidStateTransition)

		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /reservations/%d/state - Failed: actor=%d, error=%v", reservationID, actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/%d/state - Moved to state=%d by actor=%d",
		reservationID, result.State, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
