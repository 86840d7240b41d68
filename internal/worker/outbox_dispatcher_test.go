package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/integrations/notifyservice"
)

// --- фейки зависимостей ---

type fakeOutboxRepo struct {
	pending []*domain.OutboxEvent
	done    []string
	failed  []string
	retried map[string]time.Time
}

func newFakeOutboxRepo() *fakeOutboxRepo {
	return &fakeOutboxRepo{retried: make(map[string]time.Time)}
}

func (f *fakeOutboxRepo) FetchPending(_ context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeOutboxRepo) MarkDone(_ context.Context, id string) error {
	f.done = append(f.done, id)
	return nil
}

func (f *fakeOutboxRepo) MarkRetry(_ context.Context, id string, nextAttemptAt time.Time) error {
	f.retried[id] = nextAttemptAt
	return nil
}

func (f *fakeOutboxRepo) MarkFailed(_ context.Context, id string) error {
	f.failed = append(f.failed, id)
	return nil
}

type fakeNotifyClient struct {
	requests []*notifyservice.CancellationRequest
	err      error
}

func (f *fakeNotifyClient) SendCancellation(_ context.Context, req *notifyservice.CancellationRequest) error {
	if f.err != nil {
		return f.err
	}
	f.requests = append(f.requests, req)
	return nil
}

type fakeCalendarClient struct {
	deleted [][2]int64
	err     error
}

func (f *fakeCalendarClient) DeleteReservationEvent(_ context.Context, userID, reservationID int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, [2]int64{userID, reservationID})
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	counts map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{counts: make(map[string]int)}
}

func (f *fakeMetrics) IncOutboxEvent(eventType, result string) {
	f.counts[eventType+"/"+result]++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- фикстуры ---

func testEvent(eventType domain.OutboxEventType, attempts int) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:   uuid.New(),
		Type: eventType,
		Notice: domain.CancellationNotice{
			ReservationID:      42,
			UserID:             10,
			VehiclePlateNumber: "А123БВ77",
			StartDate:          time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
			Reason:             "временная блокировка мойки администратором",
		},
		TriggeredByID: 500,
		Status:        domain.OutboxStatusPending,
		Attempts:      attempts,
	}
}

type env struct {
	dispatcher *OutboxDispatcher
	outbox     *fakeOutboxRepo
	notify     *fakeNotifyClient
	calendar   *fakeCalendarClient
	metrics    *fakeMetrics
}

func newEnv() *env {
	outbox := newFakeOutboxRepo()
	notify := &fakeNotifyClient{}
	calendar := &fakeCalendarClient{}
	metrics := newFakeMetrics()

	dispatcher := NewOutboxDispatcher(outbox, notify, calendar, fakeTxManager{}, metrics, Config{
		PollInterval: time.Second,
		BatchSize:    50,
		MaxAttempts:  3,
		BaseDelay:    30 * time.Second,
	}, nopLogger{})

	return &env{dispatcher: dispatcher, outbox: outbox, notify: notify, calendar: calendar, metrics: metrics}
}

// --- тесты ---

// TestDispatchEmailDelivered тестирует успешную доставку письма об отмене
func TestDispatchEmailDelivered(t *testing.T) {
	e := newEnv()
	event := testEvent(domain.EventCancellationEmail, 0)
	e.outbox.pending = []*domain.OutboxEvent{event}

	err := e.dispatcher.processBatch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{event.ID.String()}, e.outbox.done)
	assert.Empty(t, e.outbox.retried)
	assert.Empty(t, e.outbox.failed)

	require.Len(t, e.notify.requests, 1)
	sent := e.notify.requests[0]
	// ID события служит ключом идемпотентности получателя
	assert.Equal(t, event.ID.String(), sent.IdempotencyKey)
	assert.Equal(t, int64(42), sent.ReservationID)
	assert.Equal(t, int64(10), sent.UserID)

	assert.Equal(t, 1, e.metrics.counts["cancellation_email/done"])
}

// TestDispatchCalendarDelete тестирует удаление события из календаря
func TestDispatchCalendarDelete(t *testing.T) {
	e := newEnv()
	event := testEvent(domain.EventCalendarDelete, 0)
	e.outbox.pending = []*domain.OutboxEvent{event}

	err := e.dispatcher.processBatch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, [][2]int64{{10, 42}}, e.calendar.deleted)
	assert.Equal(t, []string{event.ID.String()}, e.outbox.done)
}

// TestDispatchRetryWithBackoff тестирует откладывание упавшего события
// с экспоненциальным backoff
func TestDispatchRetryWithBackoff(t *testing.T) {
	e := newEnv()
	e.notify.err = errors.New("notify service is down")

	event := testEvent(domain.EventCancellationEmail, 0)
	e.outbox.pending = []*domain.OutboxEvent{event}

	before := time.Now()
	err := e.dispatcher.processBatch(context.Background())
	require.NoError(t, err)

	assert.Empty(t, e.outbox.done)
	assert.Empty(t, e.outbox.failed)

	nextAttempt, ok := e.outbox.retried[event.ID.String()]
	require.True(t, ok)
	// Первая неудача: задержка равна BaseDelay
	assert.WithinDuration(t, before.Add(30*time.Second), nextAttempt, 2*time.Second)

	assert.Equal(t, 1, e.metrics.counts["cancellation_email/retry"])
}

// TestDispatchBackoffDoubles тестирует удвоение задержки с каждой попыткой
func TestDispatchBackoffDoubles(t *testing.T) {
	e := newEnv()

	assert.Equal(t, 30*time.Second, e.dispatcher.backoff(1))
	assert.Equal(t, 60*time.Second, e.dispatcher.backoff(2))
	assert.Equal(t, 120*time.Second, e.dispatcher.backoff(3))
}

// TestDispatchFailedAfterMaxAttempts тестирует перевод события в failed
// после исчерпания попыток
func TestDispatchFailedAfterMaxAttempts(t *testing.T) {
	e := newEnv()
	e.calendar.err = errors.New("calendar service is down")

	// Уже две неудачные попытки, третья будет последней
	event := testEvent(domain.EventCalendarDelete, 2)
	e.outbox.pending = []*domain.OutboxEvent{event}

	err := e.dispatcher.processBatch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{event.ID.String()}, e.outbox.failed)
	assert.Empty(t, e.outbox.retried)
	assert.Equal(t, 1, e.metrics.counts["calendar_delete/failed"])
}

// TestDispatchUnknownTypeDropped тестирует, что событие неизвестного типа
// не зацикливает доставку
func TestDispatchUnknownTypeDropped(t *testing.T) {
	e := newEnv()
	event := testEvent(domain.OutboxEventType("push_notification"), 0)
	e.outbox.pending = []*domain.OutboxEvent{event}

	err := e.dispatcher.processBatch(context.Background())
	require.NoError(t, err)

	// Неизвестный тип помечается done и выбывает из очереди
	assert.Equal(t, []string{event.ID.String()}, e.outbox.done)
}

// TestDispatchMixedBatch тестирует пачку из успешных и падающих событий:
// судьба каждого события независима
func TestDispatchMixedBatch(t *testing.T) {
	e := newEnv()
	e.calendar.err = errors.New("calendar service is down")

	email := testEvent(domain.EventCancellationEmail, 0)
	calendar := testEvent(domain.EventCalendarDelete, 0)
	e.outbox.pending = []*domain.OutboxEvent{email, calendar}

	err := e.dispatcher.processBatch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{email.ID.String()}, e.outbox.done)
	_, retried := e.outbox.retried[calendar.ID.String()]
	assert.True(t, retried)
}
