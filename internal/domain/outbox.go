package domain

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEventType тип отложенного побочного эффекта отмены
type OutboxEventType string

const (
	// EventCancellationEmail письмо (и push/бот-сообщение) пользователю об отмене
	EventCancellationEmail OutboxEventType = "cancellation_email"

	// EventCalendarDelete удаление события из Outlook календаря пользователя
	EventCalendarDelete OutboxEventType = "calendar_delete"
)

// OutboxStatus статус обработки события
type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "pending"
	OutboxStatusDone    OutboxStatus = "done"
	OutboxStatusFailed  OutboxStatus = "failed"
)

// CancellationNotice данные отмененного бронирования для уведомлений
// Денормализованы в payload: к моменту доставки строка брони уже удалена
type CancellationNotice struct {
	ReservationID      int64     `json:"reservationId"`
	UserID             int64     `json:"userId"`
	VehiclePlateNumber string    `json:"vehiclePlateNumber"`
	StartDate          time.Time `json:"startDate"`
	Reason             string    `json:"reason"`
}

// OutboxEvent событие транзакционного outbox
// Записывается в той же транзакции, что освобождает вместимость;
// доставка выполняется воркером отдельно и никогда не откатывает отмену
type OutboxEvent struct {
	ID            uuid.UUID // также ключ идемпотентности для получателей
	Type          OutboxEventType
	Notice        CancellationNotice
	TriggeredByID int64 // кто инициировал отмену (для аудита)
	Status        OutboxStatus
	Attempts      int
	NextAttemptAt time.Time
	CreatedOn     time.Time
	UpdatedOn     time.Time
}

// NewCancellationEvents создает пару событий (письмо + календарь) для отмененной брони
func NewCancellationEvents(r *Reservation, triggeredByID int64, reason string) []*OutboxEvent {
	notice := CancellationNotice{
		ReservationID:      r.ID,
		UserID:             r.UserID,
		VehiclePlateNumber: r.VehiclePlateNumber,
		StartDate:          r.StartDate,
		Reason:             reason,
	}

	return []*OutboxEvent{
		{
			ID:            uuid.New(),
			Type:          EventCancellationEmail,
			Notice:        notice,
			TriggeredByID: triggeredByID,
			Status:        OutboxStatusPending,
		},
		{
			ID:            uuid.New(),
			Type:          EventCalendarDelete,
			Notice:        notice,
			TriggeredByID: triggeredByID,
			Status:        OutboxStatusPending,
		},
	}
}
