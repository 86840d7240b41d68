package update_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	updateReservation "github.com/m04kA/SMC-CarWashService/internal/usecase/update_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidDate          = "некорректный формат даты, ожидается ISO 8601"
	msgReservationNotFound  = "бронирование не найдено"
	msgAccessDenied         = "нет прав на изменение бронирования"
	msgNotEditable          = "ключи уже сданы, изменение доступно только сотруднику"
	msgCompanyNotFound      = "компания не найдена"
	msgServiceNotFound      = "услуга не найдена"
	msgTooLateToReserve     = "слишком поздно для бронирования на это время"
	msgUserLimitExceeded    = "превышен лимит одновременных бронирований"
	msgCompanyLimitExceeded = "дневная квота компании исчерпана"
	msgSlotFull             = "выбранный временной слот заполнен"
	msgIntervalBlocked      = "мойка не работает в выбранное время"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserID(r.Context())
	staff := middleware.IsStaff(r.Context())

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/%d - Invalid request body: %v", reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID, actorID, staff)
	if err != nil {
		h.logger.Warn("PUT /reservations/%d - Failed to parse start date: %v", reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, updateReservation.ErrAccessDenied):
			h.logger.Warn("PUT /reservations/%d - Access denied for actor=%d", reservationID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, updateReservation.ErrNotEditable):
			h.logger.Warn("PUT /reservations/%d - Not editable by user, actor=%d", reservationID, actorID)
			handlers.RespondForbidden(w, msgNotEditable)

		case errors.Is(err, updateReservation.ErrSlotFull):
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, updateReservation.ErrIntervalBlocked):
			handlers.RespondConflict(w, msgIntervalBlocked)

		case errors.Is(err, updateReservation.ErrUserLimitExceeded):
			handlers.RespondConflict(w, msgUserLimitExceeded)

		case errors.Is(err, updateReservation.ErrCompanyLimitExceeded):
			handlers.RespondConflict(w, msgCompanyLimitExceeded)

		case errors.Is(err, updateReservation.ErrTooLateToReserve):
			handlers.RespondBadRequest(w, msgTooLateToReserve)

		case errors.Is(err, updateReservation.ErrCompanyNotFound):
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, updateReservation.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /reservations/%d - Failed to update: actor=%d, error=%v", reservationID, actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/%d - Reservation updated by actor=%d", reservationID, actorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
