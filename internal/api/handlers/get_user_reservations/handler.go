package get_user_reservations

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
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidState  = "некорректное состояние бронирования"
	msgAccessDenied  = "нет прав на просмотр чужих бронирований"
)

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

// Handle GET /api/v1/users/{userId}/reservations?state=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserID(r.Context())
	staff := middleware.IsStaff(r.Context())

	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Чужую историю видит только сотрудник
	if !staff && userID != actorID {
		h.logger.Warn("GET /users/%d/reservations - Access denied for actor=%d", userID, actorID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetUserReservationsRequest{UserID: userID}

	if rawState := r.URL.Query().Get("state"); rawState != "" {
		state, err := strconv.Atoi(rawState)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidState)
			return
		}
		req.State = &state
	}

	result, err := h.service.GetUserReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidState)
		default:
			h.logger.Error("GET /users/%d/reservations - Failed: error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
