package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSlotWindowIntersects тестирует пересечение окна с полуоткрытым интервалом брони
func TestSlotWindowIntersects(t *testing.T) {
	window := SlotWindow{
		Start:    time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC),
		Capacity: 2,
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "reservation inside window",
			start: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
			want:  true,
		},
		{
			name:  "reservation ending exactly at window start does not count",
			start: time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "reservation starting exactly at window end does not count",
			start: time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "reservation crossing window start",
			start: time.Date(2025, 6, 2, 7, 30, 0, 0, time.UTC),
			end:   time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC),
			want:  true,
		},
		{
			name:  "reservation spanning whole window",
			start: time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window.Intersects(tt.start, tt.end))
		})
	}
}

// TestSlotValidate тестирует валидацию одного слота
func TestSlotValidate(t *testing.T) {
	tests := []struct {
		name    string
		slot    Slot
		wantErr bool
	}{
		{name: "valid slot", slot: Slot{StartTime: "08:00", EndTime: "11:00", Capacity: 2}},
		{name: "slot up to midnight", slot: Slot{StartTime: "22:00", EndTime: "24:00", Capacity: 1}},
		{name: "inverted bounds", slot: Slot{StartTime: "11:00", EndTime: "08:00", Capacity: 2}, wantErr: true},
		{name: "zero length", slot: Slot{StartTime: "08:00", EndTime: "08:00", Capacity: 2}, wantErr: true},
		{name: "zero capacity", slot: Slot{StartTime: "08:00", EndTime: "11:00", Capacity: 0}, wantErr: true},
		{name: "bad time format", slot: Slot{StartTime: "8am", EndTime: "11:00", Capacity: 2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestSlotTableValidate тестирует проверку пересечений слотов внутри дня
func TestSlotTableValidate(t *testing.T) {
	valid := SlotTable{
		Monday: []Slot{
			{StartTime: "08:00", EndTime: "11:00", Capacity: 2},
			{StartTime: "11:00", EndTime: "14:00", Capacity: 2},
		},
	}
	assert.NoError(t, valid.Validate())

	overlapping := SlotTable{
		Monday: []Slot{
			{StartTime: "08:00", EndTime: "11:00", Capacity: 2},
			{StartTime: "10:00", EndTime: "14:00", Capacity: 2},
		},
	}
	assert.Error(t, overlapping.Validate())
}

// TestSlotTableWindowsFor тестирует материализацию слотов на конкретную дату
func TestSlotTableWindowsFor(t *testing.T) {
	table := SlotTable{
		Monday: []Slot{
			{StartTime: "08:00", EndTime: "11:00", Capacity: 2},
			{StartTime: "14:00", EndTime: "18:00", Capacity: 3},
		},
	}

	// 2 июня 2025, понедельник
	monday := time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC)
	windows, err := table.WindowsFor(monday)
	require.NoError(t, err)
	require.Len(t, windows, 2)

	assert.Equal(t, time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC), windows[0].Start)
	assert.Equal(t, time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC), windows[0].End)
	assert.Equal(t, 2, windows[0].Capacity)
	assert.Equal(t, "08:00-11:00", windows[0].Label())

	assert.Equal(t, 3, windows[1].Capacity)

	// День без слотов дает пустой список: мойка в этот день не работает
	sunday := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	windows, err = table.WindowsFor(sunday)
	require.NoError(t, err)
	assert.Empty(t, windows)
}
