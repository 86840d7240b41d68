package get_day_schedule

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

// Request модель запроса расписания на день
type Request struct {
	Date time.Time // Календарный день
}

// SlotStatus занятость одного слота на запрошенный день
type SlotStatus struct {
	StartTime types.TimeString // Начало окна, например "08:00"
	EndTime   types.TimeString // Конец окна
	Capacity  int              // Вместимость в машинах
	Occupied  int              // Занято машинами
	Free      int              // Свободно машин (0, если день заблокирован)
	Blocked   bool             // Окно перекрыто административной блокировкой
}

// Response расписание слотов на день
type Response struct {
	Date  time.Time
	Slots []SlotStatus
}
