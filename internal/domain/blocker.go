package domain

import "time"

// Blocker административная блокировка: интервал, в котором мойка не работает
// (праздники, ремонт, корпоративные мероприятия)
// EndDate == nil означает блокировку "до дальнейшего уведомления"
type Blocker struct {
	ID          int64
	StartDate   time.Time
	EndDate     *time.Time
	Comment     *string
	CreatedByID int64
	CreatedOn   time.Time
}

// Overlaps проверяет пересечение двух блокировок
// Блокировки трактуются как замкнутые интервалы, открытый конец = +бесконечность
// Пересечением считается любой общий момент времени, включая совпадение границ
func (b *Blocker) Overlaps(other *Blocker) bool {
	return closedIntervalsOverlap(b.StartDate, b.EndDate, other.StartDate, other.EndDate)
}

// OverlapsInterval проверяет пересечение блокировки с замкнутым интервалом [start, end]
func (b *Blocker) OverlapsInterval(start time.Time, end *time.Time) bool {
	return closedIntervalsOverlap(b.StartDate, b.EndDate, start, end)
}

// BlocksReservation проверяет, что бронирование попадает в блокировку
func (b *Blocker) BlocksReservation(r *Reservation) bool {
	return b.BlocksInterval(r.StartDate, r.End())
}

// BlocksInterval проверяет, что блокировка задевает полуоткрытый интервал [start, end)
// Бронь трактуется как полуоткрытый интервал, блокировка как замкнутый:
// блокировка, начинающаяся ровно в end, интервал не задевает,
// а начало ровно в закрытом конце блокировки попадает под нее
func (b *Blocker) BlocksInterval(start, end time.Time) bool {
	if b.EndDate != nil && start.After(*b.EndDate) {
		return false
	}
	return b.StartDate.Before(end)
}

// SpanWithinLimit проверяет, что длительность блокировки не превышает лимит в месяцах
// Для открытых блокировок лимит не применяется
func (b *Blocker) SpanWithinLimit(months int) bool {
	if b.EndDate == nil {
		return true
	}
	return !b.EndDate.After(b.StartDate.AddDate(0, months, 0))
}

// RangeValid проверяет, что начало не позже конца
func (b *Blocker) RangeValid() bool {
	if b.EndDate == nil {
		return true
	}
	return !b.StartDate.After(*b.EndDate)
}

// closedIntervalsOverlap стандартный тест пересечения замкнутых интервалов:
// s1 <= e2 && s2 <= e1, nil конец = +бесконечность
// Все пять именованных случаев (равенство, подмножество, надмножество,
// пересечение начала, пересечение конца) сводятся к этому предикату
func closedIntervalsOverlap(s1 time.Time, e1 *time.Time, s2 time.Time, e2 *time.Time) bool {
	if e2 != nil && s1.After(*e2) {
		return false
	}
	if e1 != nil && s2.After(*e1) {
		return false
	}
	return true
}
