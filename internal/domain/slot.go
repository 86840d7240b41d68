package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

// Slot окно времени суток с вместимостью в машинах
// Вместимость измеряется в одновременно моемых автомобилях, не в минутах
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  int
}

// Validate проверяет корректность границ и вместимости слота
func (s Slot) Validate() error {
	if err := s.StartTime.Validate(); err != nil {
		return err
	}
	if err := s.EndTime.Validate(); err != nil {
		return err
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return fmt.Errorf("slot %s-%s: start must be before end", s.StartTime, s.EndTime)
	}
	if s.Capacity <= 0 {
		return fmt.Errorf("slot %s-%s: capacity must be positive", s.StartTime, s.EndTime)
	}
	return nil
}

// SlotTable расписание слотов по дням недели
type SlotTable struct {
	Monday    []Slot
	Tuesday   []Slot
	Wednesday []Slot
	Thursday  []Slot
	Friday    []Slot
	Saturday  []Slot
	Sunday    []Slot
}

// For возвращает слоты для дня недели
func (t *SlotTable) For(weekday time.Weekday) []Slot {
	switch weekday {
	case time.Monday:
		return t.Monday
	case time.Tuesday:
		return t.Tuesday
	case time.Wednesday:
		return t.Wednesday
	case time.Thursday:
		return t.Thursday
	case time.Friday:
		return t.Friday
	case time.Saturday:
		return t.Saturday
	case time.Sunday:
		return t.Sunday
	default:
		return nil
	}
}

// Validate проверяет все слоты таблицы: границы, порядок и отсутствие пересечений
func (t *SlotTable) Validate() error {
	days := []struct {
		name  string
		slots []Slot
	}{
		{"monday", t.Monday},
		{"tuesday", t.Tuesday},
		{"wednesday", t.Wednesday},
		{"thursday", t.Thursday},
		{"friday", t.Friday},
		{"saturday", t.Saturday},
		{"sunday", t.Sunday},
	}

	for _, day := range days {
		for i, slot := range day.slots {
			if err := slot.Validate(); err != nil {
				return fmt.Errorf("%s: %w", day.name, err)
			}
			if i > 0 && day.slots[i-1].EndTime.IsAfter(slot.StartTime) {
				return fmt.Errorf("%s: slots %s-%s and %s-%s overlap",
					day.name,
					day.slots[i-1].StartTime, day.slots[i-1].EndTime,
					slot.StartTime, slot.EndTime)
			}
		}
	}

	return nil
}

// WindowsFor материализует слоты дня в конкретные интервалы на дату
func (t *SlotTable) WindowsFor(date time.Time) ([]SlotWindow, error) {
	slots := t.For(date.Weekday())
	windows := make([]SlotWindow, 0, len(slots))

	for _, slot := range slots {
		start, err := slot.StartTime.At(date)
		if err != nil {
			return nil, err
		}
		end, err := slot.EndTime.At(date)
		if err != nil {
			return nil, err
		}
		windows = append(windows, SlotWindow{
			Start:    start,
			End:      end,
			Capacity: slot.Capacity,
		})
	}

	return windows, nil
}

// SlotWindow слот, привязанный к конкретной дате
type SlotWindow struct {
	Start    time.Time
	End      time.Time
	Capacity int
}

// Intersects проверяет пересечение окна с полуоткрытым интервалом [start, end)
// Строгие неравенства: бронь, граничащая с окном, его вместимость не расходует
func (w SlotWindow) Intersects(start, end time.Time) bool {
	return start.Before(w.End) && end.After(w.Start)
}

// Label возвращает человекочитаемое обозначение окна, например "08:00-11:00"
func (w SlotWindow) Label() string {
	return fmt.Sprintf("%s-%s", w.Start.Format(TimeFormat), w.End.Format(TimeFormat))
}
