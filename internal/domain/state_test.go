package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStateNext тестирует продвижение жизненного цикла на один шаг
func TestStateNext(t *testing.T) {
	tests := []struct {
		name    string
		state   ReservationState
		private bool
		want    ReservationState
		ok      bool
	}{
		{name: "submitted to reminder", state: StateSubmittedNotActual, want: StateReminderSentWaitingForKey, ok: true},
		{name: "reminder to key left", state: StateReminderSentWaitingForKey, want: StateCarKeyLeftAndLocationConfirmed, ok: true},
		{name: "key left to wash", state: StateCarKeyLeftAndLocationConfirmed, want: StateWashInProgress, ok: true},
		{name: "corporate wash to done", state: StateWashInProgress, private: false, want: StateDone, ok: true},
		{name: "private wash to not yet paid", state: StateWashInProgress, private: true, want: StateNotYetPaid, ok: true},
		{name: "not yet paid to done", state: StateNotYetPaid, want: StateDone, ok: true},
		{name: "done is terminal", state: StateDone, want: StateDone, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.state.Next(tt.private)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// TestStateCanTransitionTo тестирует, что переходы возможны только на один шаг вперед
func TestStateCanTransitionTo(t *testing.T) {
	// Перескок через состояние запрещен
	assert.False(t, StateSubmittedNotActual.CanTransitionTo(StateCarKeyLeftAndLocationConfirmed, false))
	// Назад нельзя
	assert.False(t, StateWashInProgress.CanTransitionTo(StateCarKeyLeftAndLocationConfirmed, false))
	// В себя нельзя
	assert.False(t, StateWashInProgress.CanTransitionTo(StateWashInProgress, false))

	// Корпоративная бронь не проходит через NotYetPaid
	assert.False(t, StateWashInProgress.CanTransitionTo(StateNotYetPaid, false))
	assert.True(t, StateWashInProgress.CanTransitionTo(StateDone, false))

	// Частная бронь обязана пройти через NotYetPaid
	assert.True(t, StateWashInProgress.CanTransitionTo(StateNotYetPaid, true))
	assert.False(t, StateWashInProgress.CanTransitionTo(StateDone, true))

	// Из терминального состояния переходов нет
	assert.False(t, StateDone.CanTransitionTo(StateDone, false))
	assert.False(t, StateDone.CanTransitionTo(StateSubmittedNotActual, false))
}

// TestStateCancellableByUser тестирует границу самостоятельной отмены:
// после сдачи ключей отменить бронь может только персонал
func TestStateCancellableByUser(t *testing.T) {
	assert.True(t, StateSubmittedNotActual.CancellableByUser())
	assert.True(t, StateReminderSentWaitingForKey.CancellableByUser())
	assert.False(t, StateCarKeyLeftAndLocationConfirmed.CancellableByUser())
	assert.False(t, StateWashInProgress.CancellableByUser())
	assert.False(t, StateNotYetPaid.CancellableByUser())
	assert.False(t, StateDone.CancellableByUser())
}

// TestStateValid тестирует распознавание известных состояний
func TestStateValid(t *testing.T) {
	for s := StateSubmittedNotActual; s <= StateDone; s++ {
		assert.True(t, s.Valid(), s.String())
	}
	assert.False(t, ReservationState(-1).Valid())
	assert.False(t, ReservationState(6).Valid())
}

// TestStateWalkPrivateLifecycle прогоняет полный жизненный цикл частной брони
func TestStateWalkPrivateLifecycle(t *testing.T) {
	want := []ReservationState{
		StateSubmittedNotActual,
		StateReminderSentWaitingForKey,
		StateCarKeyLeftAndLocationConfirmed,
		StateWashInProgress,
		StateNotYetPaid,
		StateDone,
	}

	state := StateSubmittedNotActual
	walked := []ReservationState{state}
	for {
		next, ok := state.Next(true)
		if !ok {
			break
		}
		walked = append(walked, next)
		state = next
	}

	require.Equal(t, want, walked)
	assert.True(t, state.IsTerminal())
}
