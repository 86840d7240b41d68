package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

var eventColumns = []string{
	"id",
	"event_type",
	"payload",
	"triggered_by_id",
	"status",
	"attempts",
	"next_attempt_at",
	"created_on",
	"updated_on",
}

// Repository репозиторий транзакционного outbox
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория outbox
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch записывает пакет событий
// Вызывается только внутри транзакции, которая удаляет бронирования:
// либо фиксируются и отмена, и события, либо ничего
func (r *Repository) CreateBatch(ctx context.Context, events []*domain.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("outbox_events").
		Columns(
			"id",
			"event_type",
			"payload",
			"triggered_by_id",
			"status",
			"attempts",
			"next_attempt_at",
		)

	now := time.Now()
	for _, event := range events {
		payload, err := json.Marshal(event.Notice)
		if err != nil {
			return fmt.Errorf("%w: CreateBatch - event %s: %v", ErrEncodePayload, event.ID, err)
		}
		insertBuilder = insertBuilder.Values(
			event.ID,
			event.Type,
			payload,
			event.TriggeredByID,
			domain.OutboxStatusPending,
			0,
			now,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// FetchPending получает события, готовые к доставке
// FOR UPDATE SKIP LOCKED позволяет запускать несколько экземпляров воркера
func (r *Repository) FetchPending(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("outbox_events").
		Where(squirrel.Eq{"status": domain.OutboxStatusPending}).
		Where(squirrel.LtOrEq{"next_attempt_at": time.Now()}).
		OrderBy("next_attempt_at ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FetchPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// MarkDone помечает событие доставленным
func (r *Repository) MarkDone(ctx context.Context, id string) error {
	return r.updateStatus(ctx, id, domain.OutboxStatusDone, nil)
}

// MarkRetry откладывает событие до nextAttemptAt и наращивает счетчик попыток
func (r *Repository) MarkRetry(ctx context.Context, id string, nextAttemptAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("outbox_events").
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("next_attempt_at", nextAttemptAt).
		Set("updated_on", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRetry - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkRetry")
}

// MarkFailed помечает событие окончательно недоставленным
// Отмена брони при этом остается в силе: доставка уведомления best-effort
func (r *Repository) MarkFailed(ctx context.Context, id string) error {
	return r.updateStatus(ctx, id, domain.OutboxStatusFailed, nil)
}

func (r *Repository) updateStatus(ctx context.Context, id string, status domain.OutboxStatus, nextAttemptAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("outbox_events").
		Set("status", status).
		Set("updated_on", time.Now()).
		Where(squirrel.Eq{"id": id})

	if nextAttemptAt != nil {
		updateBuilder = updateBuilder.Set("next_attempt_at", *nextAttemptAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: updateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "updateStatus")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor dbmetrics.DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func scanEvents(rows *sql.Rows) ([]*domain.OutboxEvent, error) {
	events := make([]*domain.OutboxEvent, 0)

	for rows.Next() {
		var event domain.OutboxEvent
		var payload []byte
		var createdOn, updatedOn sql.NullTime

		err := rows.Scan(
			&event.ID,
			&event.Type,
			&payload,
			&event.TriggeredByID,
			&event.Status,
			&event.Attempts,
			&event.NextAttemptAt,
			&createdOn,
			&updatedOn,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEvents - scan row: %v", ErrScanRow, err)
		}

		if err := json.Unmarshal(payload, &event.Notice); err != nil {
			return nil, fmt.Errorf("%w: scanEvents - decode payload: %v", ErrScanRow, err)
		}

		event.CreatedOn = createdOn.Time
		event.UpdatedOn = updatedOn.Time

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEvents - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}
