package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-CarWashService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается ISO 8601"
	msgCompanyNotFound      = "компания не найдена"
	msgServiceNotFound      = "услуга не найдена"
	msgTooLateToReserve     = "слишком поздно для бронирования на это время"
	msgUserLimitExceeded    = "превышен лимит одновременных бронирований"
	msgCompanyLimitExceeded = "дневная квота компании исчерпана"
	msgSlotFull             = "выбранный временной слот заполнен"
	msgIntervalBlocked      = "мойка не работает в выбранное время"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserID(r.Context())

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actorID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotFull):
			h.logger.Warn("POST /reservations - Slot full: user_id=%d, company_id=%d", actorID, req.CompanyID)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createReservation.ErrIntervalBlocked):
			h.logger.Warn("POST /reservations - Interval blocked: user_id=%d", actorID)
			handlers.RespondConflict(w, msgIntervalBlocked)

		case errors.Is(err, createReservation.ErrUserLimitExceeded):
			h.logger.Warn("POST /reservations - User limit exceeded: user_id=%d", actorID)
			handlers.RespondConflict(w, msgUserLimitExceeded)

		case errors.Is(err, createReservation.ErrCompanyLimitExceeded):
			h.logger.Warn("POST /reservations - Company limit exceeded: company_id=%d", req.CompanyID)
			handlers.RespondConflict(w, msgCompanyLimitExceeded)

		case errors.Is(err, createReservation.ErrTooLateToReserve):
			h.logger.Warn("POST /reservations - Too late to reserve: user_id=%d", actorID)
			handlers.RespondBadRequest(w, msgTooLateToReserve)

		case errors.Is(err, createReservation.ErrCompanyNotFound):
			h.logger.Warn("POST /reservations - Company not found: company_id=%d", req.CompanyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, createReservation.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: user_id=%d", actorID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", actorID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, error=%v", actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d", result.ID, actorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
