package blocker

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

var blockerColumns = []string{
	"id",
	"start_date",
	"end_date",
	"comment",
	"created_by_id",
	"created_on",
}

// Repository репозиторий для работы с блокировками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую блокировку
// Вставка идет в той же транзакции, что и проверка пересечений с другими блокировками
func (r *Repository) Create(ctx context.Context, blocker *domain.Blocker) (*domain.Blocker, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blockers").
		Columns(
			"start_date",
			"end_date",
			"comment",
			"created_by_id",
		).
		Values(
			blocker.StartDate,
			blocker.EndDate,
			blocker.Comment,
			blocker.CreatedByID,
		).
		Suffix("RETURNING id, created_on").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdOn sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&blocker.ID,
		&createdOn,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	blocker.CreatedOn = createdOn.Time

	return blocker, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Blocker, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockerColumns...).
		From("blockers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	blocker, err := scanBlocker(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBlockerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan blocker: %v", ErrScanRow, err)
	}

	return blocker, nil
}

// GetAll получает все блокировки в порядке начала
// Внутри транзакции строки блокируются: проверка пересечений и вставка
// новой блокировки не должны чередоваться с конкурирующим созданием
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Blocker, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockerColumns...).
		From("blockers").
		OrderBy("start_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlockers(rows)
}

// GetOverlapping получает блокировки, пересекающие закрытый интервал [from, to]
// Открытые блокировки (end_date IS NULL) пересекают любой интервал после их начала
func (r *Repository) GetOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Blocker, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockerColumns...).
		From("blockers").
		Where(squirrel.LtOrEq{"start_date": to}).
		Where(squirrel.Or{
			squirrel.Eq{"end_date": nil},
			squirrel.GtOrEq{"end_date": from},
		}).
		OrderBy("start_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlockers(rows)
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blockers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockerNotFound
	}

	return nil
}

func scanBlocker(scan func(dest ...interface{}) error) (*domain.Blocker, error) {
	var blocker domain.Blocker
	var createdOn sql.NullTime

	err := scan(
		&blocker.ID,
		&blocker.StartDate,
		&blocker.EndDate,
		&blocker.Comment,
		&blocker.CreatedByID,
		&createdOn,
	)
	if err != nil {
		return nil, err
	}

	blocker.CreatedOn = createdOn.Time

	return &blocker, nil
}

func scanBlockers(rows *sql.Rows) ([]*domain.Blocker, error) {
	blockers := make([]*domain.Blocker, 0)

	for rows.Next() {
		blocker, err := scanBlocker(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBlockers - scan row: %v", ErrScanRow, err)
		}
		blockers = append(blockers, blocker)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlockers - rows error: %v", ErrScanRow, err)
	}

	return blockers, nil
}
