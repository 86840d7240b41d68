package reservation

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
)

// --- минимальный драйвер, записывающий связанные аргументы запросов ---

type capturedQuery struct {
	query string
	args  []driver.Value
}

type captureConn struct {
	queries []capturedQuery
	columns []string
	rows    [][]driver.Value
}

func (c *captureConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare is not supported")
}

func (c *captureConn) Close() error { return nil }

func (c *captureConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions are not supported")
}

func (c *captureConn) QueryContext(_ context.Context, query string, named []driver.NamedValue) (driver.Rows, error) {
	args := make([]driver.Value, len(named))
	for i, nv := range named {
		args[i] = nv.Value
	}
	c.queries = append(c.queries, capturedQuery{query: query, args: args})
	return &captureRows{columns: c.columns, rows: c.rows}, nil
}

type captureRows struct {
	columns []string
	rows    [][]driver.Value
	next    int
}

func (r *captureRows) Columns() []string { return r.columns }
func (r *captureRows) Close() error      { return nil }

func (r *captureRows) Next(dest []driver.Value) error {
	if r.next >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.next])
	r.next++
	return nil
}

type captureConnector struct {
	conn *captureConn
}

func (c *captureConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c *captureConnector) Driver() driver.Driver                        { return nil }

// --- тесты ---

// TestCreateBindsComments тестирует связывание опционального комментария:
// бронь без комментария уходит в insert как SQL NULL, колонка это допускает
func TestCreateBindsComments(t *testing.T) {
	tests := []struct {
		name     string
		comments *string
		want     driver.Value
	}{
		{name: "without comments binds NULL", comments: nil, want: nil},
		{name: "with comments binds text", comments: ptr.Ptr("позвонить за час"), want: "позвонить за час"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &captureConn{
				columns: []string{"id", "created_on"},
				rows:    [][]driver.Value{{int64(7), time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)}},
			}
			repo := NewRepository(sql.OpenDB(&captureConnector{conn: conn}))

			end := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
			created, err := repo.Create(context.Background(), &domain.Reservation{
				UserID:             10,
				CompanyID:          1,
				VehiclePlateNumber: "А123БВ77",
				State:              domain.StateSubmittedNotActual,
				Services:           []int64{1},
				TimeRequirement:    60,
				StartDate:          time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
				EndDate:            &end,
				CreatedByID:        10,
				Comments:           tt.comments,
			})
			require.NoError(t, err)
			assert.EqualValues(t, 7, created.ID)

			require.Len(t, conn.queries, 1)
			args := conn.queries[0].args
			require.Len(t, args, 13)
			// comments идет последней колонкой insert
			assert.Equal(t, tt.want, args[12])
		})
	}
}
