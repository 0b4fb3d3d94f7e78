package datasource

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type regionRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

func newMockSQL(t *testing.T) (*SQL, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQL(sqlx.NewDb(db, "sqlmock")), mock
}

func TestSQL_SelectOrdered(t *testing.T) {
	c, mock := newMockSQL(t)

	rows := sqlmock.NewRows([]string{"id", "name", "created_at"}).
		AddRow(2, "Bangalore", nil).
		AddRow(1, "Goa", nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM regions ORDER BY name asc")).WillReturnRows(rows)

	var got []regionRow
	err := c.Select(context.Background(), Query{Table: "regions", OrderBy: "name"}, &got)
	require.NoError(t, err)
	assert.Equal(t, []regionRow{{2, "Bangalore"}, {1, "Goa"}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_SelectDescending(t *testing.T) {
	c, mock := newMockSQL(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM ads ORDER BY priority desc")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	var got []regionRow
	require.NoError(t, c.Select(context.Background(), Query{Table: "ads", OrderBy: "priority", Descending: true}, &got))
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_SelectWrapsDriverError(t *testing.T) {
	c, mock := newMockSQL(t)

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM ads")).WillReturnError(boom)

	var got []regionRow
	err := c.Select(context.Background(), Query{Table: "ads"}, &got)
	assert.ErrorIs(t, err, boom)
}

func TestSQL_RejectsInjectedOrder(t *testing.T) {
	c, _ := newMockSQL(t)

	var got []regionRow
	err := c.Select(context.Background(), Query{Table: "ads", OrderBy: "name; DROP TABLE ads"}, &got)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}
