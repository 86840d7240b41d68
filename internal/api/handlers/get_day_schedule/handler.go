package get_day_schedule

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/domain"
	getDaySchedule "github.com/m04kA/SMC-CarWashService/internal/usecase/get_day_schedule"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

// SlotStatusResponse занятость одного слота
type SlotStatusResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Capacity  int    `json:"capacity"`
	Occupied  int    `json:"occupied"`
	Free      int    `json:"free"`
	Blocked   bool   `json:"blocked"`
}

// DayScheduleResponse расписание на день
type DayScheduleResponse struct {
	Date  string               `json:"date"`
	Slots []SlotStatusResponse `json:"slots"`
}

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(domain.DateFormat, mux.Vars(r)["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDaySchedule.Request{Date: date})
	if err != nil {
		h.logger.Error("GET /schedule/%s - Failed: error=%v", date.Format(domain.DateFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	slots := make([]SlotStatusResponse, 0, len(result.Slots))
	for _, slot := range result.Slots {
		slots = append(slots, SlotStatusResponse{
			StartTime: string(slot.StartTime),
			EndTime:   string(slot.EndTime),
			Capacity:  slot.Capacity,
			Occupied:  slot.Occupied,
			Free:      slot.Free,
			Blocked:   slot.Blocked,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, &DayScheduleResponse{
		Date:  result.Date.Format(domain.DateFormat),
		Slots: slots,
	})
}
