package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

// reservationColumns полный набор колонок таблицы reservations
var reservationColumns = []string{
	"id",
	"user_id",
	"company_id",
	"vehicle_plate_number",
	"location",
	"state",
	"services",
	"private",
	"mpv",
	"time_requirement",
	"start_date",
	"end_date",
	"created_by_id",
	"created_on",
	"comments",
}

// endDateExpr конец интервала брони: для старых строк без end_date
// используется сырая длительность услуг
const endDateExpr = "COALESCE(end_date, start_date + make_interval(mins => time_requirement))"

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её:
// вставка должна идти в той же сериализуемой транзакции, что и подсчет занятости
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"user_id",
			"company_id",
			"vehicle_plate_number",
			"location",
			"state",
			"services",
			"private",
			"mpv",
			"time_requirement",
			"start_date",
			"end_date",
			"created_by_id",
			"comments",
		).
		Values(
			reservation.UserID,
			reservation.CompanyID,
			reservation.VehiclePlateNumber,
			reservation.Location,
			reservation.State,
			pq.Array(reservation.Services),
			reservation.Private,
			reservation.Mpv,
			reservation.TimeRequirement,
			reservation.StartDate,
			reservation.EndDate,
			reservation.CreatedByID,
			reservation.Comments,
		).
		Suffix("RETURNING id, created_on").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdOn sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdOn,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedOn = createdOn.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	reservation, err := scanReservation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по состоянию
func (r *Repository) GetByUserID(ctx context.Context, userID int64, state *domain.ReservationState) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_date DESC")

	if state != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"state": *state})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByCompanyWithFilter получает бронирования компании с фильтрацией
// по периоду и состоянию
func (r *Repository) GetByCompanyWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"company_id": filter.CompanyID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_date": filter.EndDate.AddDate(0, 0, 1)})
	}
	if filter.State != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"state": *filter.State})
	}

	selectBuilder = selectBuilder.OrderBy("start_date ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// CountActiveByUser подсчитывает активные (нетерминальные) бронирования пользователя
// excludeID исключает из подсчета редактируемое бронирование
func (r *Repository) CountActiveByUser(ctx context.Context, userID int64, excludeID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Lt{"state": domain.StateDone})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByUser - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByUser - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountByCompanyOnDate подсчитывает бронирования компании, начинающиеся
// в указанный календарный день (для проверки дневной квоты)
func (r *Repository) CountByCompanyOnDate(ctx context.Context, companyID int64, date time.Time, excludeID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.GtOrEq{"start_date": dayStart}).
		Where(squirrel.Lt{"start_date": dayEnd})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByCompanyOnDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByCompanyOnDate - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetOverlapping получает бронирования, пересекающие полуоткрытый интервал [from, to)
// to == nil означает открытый конец (для открытых блокировок)
// excludeID исключает редактируемое бронирование
//
// Внутри транзакции строки блокируются (FOR UPDATE): подсчет занятости
// и вставка не должны чередоваться с конкурирующим бронированием
func (r *Repository) GetOverlapping(ctx context.Context, from time.Time, to *time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Expr(endDateExpr+" > ?", from))

	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_date": *to})
	}
	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	selectBuilder = selectBuilder.OrderBy("start_date ASC")

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

	return scanReservations(rows)
}

// Update обновляет редактируемые поля бронирования
func (r *Repository) Update(ctx context.Context, reservation *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("vehicle_plate_number", reservation.VehiclePlateNumber).
		Set("location", reservation.Location).
		Set("services", pq.Array(reservation.Services)).
		Set("private", reservation.Private).
		Set("mpv", reservation.Mpv).
		Set("time_requirement", reservation.TimeRequirement).
		Set("start_date", reservation.StartDate).
		Set("end_date", reservation.EndDate).
		Set("comments", reservation.Comments).
		Where(squirrel.Eq{"id": reservation.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// UpdateState обновляет состояние бронирования
func (r *Repository) UpdateState(ctx context.Context, id int64, state domain.ReservationState) error {
	if !state.Valid() {
		return fmt.Errorf("%w: UpdateState - state %d", ErrInvalidState, state)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("state", state).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateState - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateState - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateState - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Delete удаляет бронирование физически
// Отмена в этой системе выполняется жестким удалением: запросы занятости видят только живые строки
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
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
		return ErrReservationNotFound
	}

	return nil
}

// scanReservation сканирует одну строку в модель бронирования
func scanReservation(scan func(dest ...interface{}) error) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var services pq.Int64Array
	var createdOn sql.NullTime

	err := scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.CompanyID,
		&reservation.VehiclePlateNumber,
		&reservation.Location,
		&reservation.State,
		&services,
		&reservation.Private,
		&reservation.Mpv,
		&reservation.TimeRequirement,
		&reservation.StartDate,
		&reservation.EndDate,
		&reservation.CreatedByID,
		&createdOn,
		&reservation.Comments,
	)
	if err != nil {
		return nil, err
	}

	reservation.Services = services
	reservation.CreatedOn = createdOn.Time

	return &reservation, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
