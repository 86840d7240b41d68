package domain

// ReservationState состояние жизненного цикла бронирования мойки
// Значения и порядок фиксированы: они хранятся в БД и двигаются только вперед
type ReservationState int

const (
	// StateSubmittedNotActual бронирование создано, напоминание еще не отправлено
	StateSubmittedNotActual ReservationState = 0

	// StateReminderSentWaitingForKey напоминание отправлено, ждем ключи от машины
	StateReminderSentWaitingForKey ReservationState = 1

	// StateCarKeyLeftAndLocationConfirmed ключи сданы, место парковки подтверждено
	StateCarKeyLeftAndLocationConfirmed ReservationState = 2

	// StateWashInProgress мойка выполняется
	StateWashInProgress ReservationState = 3

	// StateNotYetPaid мойка завершена, ожидается оплата (только для частных броней)
	StateNotYetPaid ReservationState = 4

	// StateDone терминальное состояние
	StateDone ReservationState = 5
)

// String возвращает имя состояния
func (s ReservationState) String() string {
	switch s {
	case StateSubmittedNotActual:
		return "submitted_not_actual"
	case StateReminderSentWaitingForKey:
		return "reminder_sent_waiting_for_key"
	case StateCarKeyLeftAndLocationConfirmed:
		return "car_key_left_and_location_confirmed"
	case StateWashInProgress:
		return "wash_in_progress"
	case StateNotYetPaid:
		return "not_yet_paid"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Valid проверяет, что значение является известным состоянием
func (s ReservationState) Valid() bool {
	return s >= StateSubmittedNotActual && s <= StateDone
}

// IsTerminal проверяет, что состояние терминальное
func (s ReservationState) IsTerminal() bool {
	return s == StateDone
}

// Next возвращает следующее легальное состояние
// Частные брони проходят через NotYetPaid, корпоративные идут сразу в Done
// ok == false, если из текущего состояния двигаться некуда
func (s ReservationState) Next(private bool) (ReservationState, bool) {
	switch s {
	case StateSubmittedNotActual:
		return StateReminderSentWaitingForKey, true
	case StateReminderSentWaitingForKey:
		return StateCarKeyLeftAndLocationConfirmed, true
	case StateCarKeyLeftAndLocationConfirmed:
		return StateWashInProgress, true
	case StateWashInProgress:
		if private {
			return StateNotYetPaid, true
		}
		return StateDone, true
	case StateNotYetPaid:
		return StateDone, true
	default:
		return s, false
	}
}

// CanTransitionTo проверяет, что переход в next легален
// Переходы только на один шаг вперед, из терминального состояния переходов нет
func (s ReservationState) CanTransitionTo(next ReservationState, private bool) bool {
	candidate, ok := s.Next(private)
	return ok && candidate == next
}

// CancellableByUser проверяет, что бронирование еще может отменить сам пользователь
// После физической сдачи ключей отмена возможна только персоналом мойки
func (s ReservationState) CancellableByUser() bool {
	return s == StateSubmittedNotActual || s == StateReminderSentWaitingForKey
}

// KeyDropped проверяет, что ключи уже сданы
func (s ReservationState) KeyDropped() bool {
	return s >= StateCarKeyLeftAndLocationConfirmed && s <= StateDone
}
