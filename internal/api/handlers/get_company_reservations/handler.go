package get_company_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/reservations"
	"github.com/m04kA/SMC-CarWashService/internal/service/reservations/models"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidFilter    = "некорректные параметры фильтрации"
	msgStaffOnly        = "операция доступна только сотрудникам"
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

// Handle GET /api/v1/companies/{companyId}/reservations?startDate=...&endDate=...&state=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserID(r.Context())

	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("GET /companies/reservations - Staff only, actor=%d", actorID)
		handlers.RespondForbidden(w, msgStaffOnly)
		return
	}

	companyID, err := strconv.ParseInt(mux.Vars(r)["companyId"], 10, 64)
	if err != nil || companyID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	req := &models.GetCompanyReservationsRequest{CompanyID: companyID}

	query := r.URL.Query()

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.EndDate = &endDate
	}

	if raw := query.Get("state"); raw != "" {
		state, err := strconv.Atoi(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.State = &state
	}

	result, err := h.service.GetCompanyReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFilter)
		default:
			h.logger.Error("GET /companies/%d/reservations - Failed: error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
