package worker

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/integrations/notifyservice"
)

// OutboxRepository интерфейс транзакционного outbox
type OutboxRepository interface {
	FetchPending(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkDone(ctx context.Context, id string) error
	MarkRetry(ctx context.Context, id string, nextAttemptAt time.Time) error
	MarkFailed(ctx context.Context, id string) error
}

// NotifyServiceClient интерфейс клиента уведомлений
type NotifyServiceClient interface {
	SendCancellation(ctx context.Context, req *notifyservice.CancellationRequest) error
}

// CalendarServiceClient интерфейс клиента календаря
type CalendarServiceClient interface {
	DeleteReservationEvent(ctx context.Context, userID, reservationID int64) error
}

// TransactionManager интерфейс для управления транзакциями
// Выборка идет с FOR UPDATE SKIP LOCKED, поэтому обработка пачки
// держится в транзакции: конкурирующие воркеры не берут одни и те же события
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс счетчиков доставки
type Metrics interface {
	IncOutboxEvent(eventType, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config настройки диспетчера outbox
type Config struct {
	PollInterval time.Duration // Период опроса таблицы outbox
	BatchSize    int           // Максимум событий за тик
	MaxAttempts  int           // Попыток доставки до статуса failed
	BaseDelay    time.Duration // База экспоненциального backoff
}

// OutboxDispatcher доставляет события отмены из outbox во внешние сервисы
// Доставка at-least-once: упавшие события откладываются с экспоненциальным
// backoff, после MaxAttempts помечаются failed; отмену брони это не откатывает
type OutboxDispatcher struct {
	outboxRepo     OutboxRepository
	notifyClient   NotifyServiceClient
	calendarClient CalendarServiceClient
	txManager      TransactionManager
	metrics        Metrics
	cfg            Config
	logger         Logger
}

// NewOutboxDispatcher создает новый экземпляр диспетчера
func NewOutboxDispatcher(
	outboxRepo OutboxRepository,
	notifyClient NotifyServiceClient,
	calendarClient CalendarServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *OutboxDispatcher {
	return &OutboxDispatcher{
		outboxRepo:     outboxRepo,
		notifyClient:   notifyClient,
		calendarClient: calendarClient,
		txManager:      txManager,
		metrics:        metrics,
		cfg:            cfg,
		logger:         logger,
	}
}

// Run запускает цикл доставки до отмены контекста
func (d *OutboxDispatcher) Run(ctx context.Context) {
	d.logger.Info("OutboxDispatcher: started, poll_interval=%s, batch_size=%d",
		d.cfg.PollInterval, d.cfg.BatchSize)

	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("OutboxDispatcher: stopped")
			return
		case <-ticker.C:
			if err := d.processBatch(ctx); err != nil {
				d.logger.Error("OutboxDispatcher: batch failed: %v", err)
			}
		}
	}
}

// processBatch забирает и доставляет одну пачку событий
func (d *OutboxDispatcher) processBatch(ctx context.Context) error {
	return d.txManager.Do(ctx, func(txCtx context.Context) error {
		events, err := d.outboxRepo.FetchPending(txCtx, d.cfg.BatchSize)
		if err != nil {
			return err
		}

		for _, event := range events {
			d.dispatch(txCtx, event)
		}

		return nil
	})
}

// dispatch доставляет одно событие и обновляет его статус
func (d *OutboxDispatcher) dispatch(ctx context.Context, event *domain.OutboxEvent) {
	err := d.deliver(ctx, event)
	if err == nil {
		if markErr := d.outboxRepo.MarkDone(ctx, event.ID.String()); markErr != nil {
			d.logger.Error("OutboxDispatcher: failed to mark event %s done: %v", event.ID, markErr)
			return
		}
		d.metrics.IncOutboxEvent(string(event.Type), "done")
		d.logger.Info("OutboxDispatcher: delivered event %s type=%s reservation=%d",
			event.ID, event.Type, event.Notice.ReservationID)
		return
	}

	attempt := event.Attempts + 1

	if attempt >= d.cfg.MaxAttempts {
		d.logger.Error("OutboxDispatcher: event %s type=%s failed after %d attempts: %v",
			event.ID, event.Type, attempt, err)
		if markErr := d.outboxRepo.MarkFailed(ctx, event.ID.String()); markErr != nil {
			d.logger.Error("OutboxDispatcher: failed to mark event %s failed: %v", event.ID, markErr)
		}
		d.metrics.IncOutboxEvent(string(event.Type), "failed")
		return
	}

	nextAttemptAt := time.Now().Add(d.backoff(attempt))
	d.logger.Warn("OutboxDispatcher: event %s type=%s attempt %d/%d failed, retry at %s: %v",
		event.ID, event.Type, attempt, d.cfg.MaxAttempts, nextAttemptAt.Format(time.RFC3339), err)

	if markErr := d.outboxRepo.MarkRetry(ctx, event.ID.String(), nextAttemptAt); markErr != nil {
		d.logger.Error("OutboxDispatcher: failed to schedule retry for event %s: %v", event.ID, markErr)
	}
	d.metrics.IncOutboxEvent(string(event.Type), "retry")
}

// deliver выполняет внешний вызов для события
func (d *OutboxDispatcher) deliver(ctx context.Context, event *domain.OutboxEvent) error {
	switch event.Type {
	case domain.EventCancellationEmail:
		return d.notifyClient.SendCancellation(ctx, &notifyservice.CancellationRequest{
			IdempotencyKey:     event.ID.String(),
			UserID:             event.Notice.UserID,
			ReservationID:      event.Notice.ReservationID,
			VehiclePlateNumber: event.Notice.VehiclePlateNumber,
			StartDate:          event.Notice.StartDate,
			Reason:             event.Notice.Reason,
		})
	case domain.EventCalendarDelete:
		return d.calendarClient.DeleteReservationEvent(ctx, event.Notice.UserID, event.Notice.ReservationID)
	default:
		d.logger.Warn("OutboxDispatcher: unknown event type %s, dropping event %s", event.Type, event.ID)
		return nil
	}
}

// backoff экспоненциальная задержка: BaseDelay * 2^(attempt-1)
func (d *OutboxDispatcher) backoff(attempt int) time.Duration {
	delay := d.cfg.BaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}
	return delay
}
