package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(day, hour int) time.Time {
	return time.Date(2025, 6, day, hour, 0, 0, 0, time.UTC)
}

func datePtr(day, hour int) *time.Time {
	d := date(day, hour)
	return &d
}

// TestBlockerOverlaps тестирует пересечение блокировок как замкнутых интервалов
func TestBlockerOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Blocker
		b    Blocker
		want bool
	}{
		{
			name: "identical intervals",
			a:    Blocker{StartDate: date(1, 0), EndDate: datePtr(5, 0)},
			b:    Blocker{StartDate: date(1, 0), EndDate: datePtr(5, 0)},
			want: true,
		},
		{
			name: "b inside a",
			a:    Blocker{StartDate: date(1, 0), EndDate: datePtr(10, 0)},
			b:    Blocker{StartDate: date(3, 0), EndDate: datePtr(5, 0)},
			want: true,
		},
		{
			name: "b covers a",
			a:    Blocker{StartDate: date(3, 0), EndDate: datePtr(5, 0)},
			b:    Blocker{StartDate: date(1, 0), EndDate: datePtr(10, 0)},
			want: true,
		},
		{
			name: "b overlaps start of a",
			a:    Blocker{StartDate: date(5, 0), EndDate: datePtr(10, 0)},
			b:    Blocker{StartDate: date(3, 0), EndDate: datePtr(6, 0)},
			want: true,
		},
		{
			name: "b overlaps end of a",
			a:    Blocker{StartDate: date(1, 0), EndDate: datePtr(5, 0)},
			b:    Blocker{StartDate: date(4, 0), EndDate: datePtr(8, 0)},
			want: true,
		},
		{
			name: "touching boundaries overlap (closed intervals)",
			a:    Blocker{StartDate: date(1, 0), EndDate: datePtr(5, 0)},
			b:    Blocker{StartDate: date(5, 0), EndDate: datePtr(8, 0)},
			want: true,
		},
		{
			name: "disjoint intervals",
			a:    Blocker{StartDate: date(1, 0), EndDate: datePtr(3, 0)},
			b:    Blocker{StartDate: date(5, 0), EndDate: datePtr(8, 0)},
			want: false,
		},
		{
			name: "open-ended blocker catches any later interval",
			a:    Blocker{StartDate: date(10, 0), EndDate: nil},
			b:    Blocker{StartDate: date(20, 0), EndDate: datePtr(21, 0)},
			want: true,
		},
		{
			name: "open-ended blocker misses earlier interval",
			a:    Blocker{StartDate: date(10, 0), EndDate: nil},
			b:    Blocker{StartDate: date(1, 0), EndDate: datePtr(5, 0)},
			want: false,
		},
		{
			name: "two open-ended blockers always overlap",
			a:    Blocker{StartDate: date(1, 0), EndDate: nil},
			b:    Blocker{StartDate: date(20, 0), EndDate: nil},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(&tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(&tt.a))
		})
	}
}

// TestBlockerBlocksReservation тестирует попадание брони (полуоткрытый интервал)
// в блокировку (замкнутый интервал)
func TestBlockerBlocksReservation(t *testing.T) {
	blocker := Blocker{StartDate: date(10, 8), EndDate: datePtr(10, 12)}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{name: "reservation inside blocker", start: date(10, 9), end: date(10, 10), want: true},
		{name: "reservation starting exactly at blocker end", start: date(10, 12), end: date(10, 13), want: true},
		{name: "reservation ending exactly at blocker start", start: date(10, 7), end: date(10, 8), want: false},
		{name: "reservation after blocker", start: date(10, 13), end: date(10, 14), want: false},
		{name: "reservation before blocker", start: date(10, 5), end: date(10, 6), want: false},
		{name: "reservation spanning whole blocker", start: date(10, 7), end: date(10, 13), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := tt.end
			r := &Reservation{StartDate: tt.start, EndDate: &end}
			assert.Equal(t, tt.want, blocker.BlocksReservation(r))
		})
	}

	// Открытая блокировка накрывает любую бронь, начинающуюся после её начала
	open := Blocker{StartDate: date(10, 8), EndDate: nil}
	end := date(20, 10)
	assert.True(t, open.BlocksReservation(&Reservation{StartDate: date(20, 9), EndDate: &end}))
}

// TestBlockerSpanWithinLimit тестирует лимит длительности блокировки
func TestBlockerSpanWithinLimit(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	exactlyOneMonth := start.AddDate(0, 1, 0)
	overOneMonth := exactlyOneMonth.Add(time.Hour)

	assert.True(t, (&Blocker{StartDate: start, EndDate: &exactlyOneMonth}).SpanWithinLimit(MaxBlockerSpanMonths))
	assert.False(t, (&Blocker{StartDate: start, EndDate: &overOneMonth}).SpanWithinLimit(MaxBlockerSpanMonths))

	// Для открытых блокировок лимит не применяется
	assert.True(t, (&Blocker{StartDate: start, EndDate: nil}).SpanWithinLimit(MaxBlockerSpanMonths))
}

// TestBlockerRangeValid тестирует порядок границ
func TestBlockerRangeValid(t *testing.T) {
	assert.True(t, (&Blocker{StartDate: date(1, 0), EndDate: datePtr(2, 0)}).RangeValid())
	// Мгновенная блокировка допустима
	assert.True(t, (&Blocker{StartDate: date(1, 0), EndDate: datePtr(1, 0)}).RangeValid())
	assert.False(t, (&Blocker{StartDate: date(2, 0), EndDate: datePtr(1, 0)}).RangeValid())
	assert.True(t, (&Blocker{StartDate: date(1, 0), EndDate: nil}).RangeValid())
}
