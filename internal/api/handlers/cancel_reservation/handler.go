package cancel_reservation

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
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgReservationNotFound  = "бронирование не найдено"
	msgAccessDenied         = "нет прав на отмену бронирования"
	msgCannotCancel         = "бронирование уже нельзя отменить"
)

// CancelRequest HTTP request model
type CancelRequest struct {
	Reason string `json:"reason,omitempty"`
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

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserID(r.Context())
	staff := middleware.IsStaff(r.Context())

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Тело с причиной опционально
	var req CancelRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /reservations/%d/cancel - Invalid request body: %v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	err = h.service.Cancel(r.Context(), reservationID, &models.CancelReservationRequest{
		ActorID: actorID,
		Staff:   staff,
		Reason:  req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/%d/cancel - Access denied for actor=%d", reservationID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reservations.ErrCannotCancel):
			h.logger.Warn("PATCH /reservations/%d/cancel - Cannot cancel, actor=%d", reservationID, actorID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /reservations/%d/cancel - Failed: actor=%d, error=%v", reservationID, actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/%d/cancel - Cancelled by actor=%d", reservationID, actorID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
