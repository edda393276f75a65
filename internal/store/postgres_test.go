package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/quote-compare-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_CreateDataset(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO datasets`).
		WithArgs(pgxmock.AnyArg(), "march quotes", "quotes.xlsx", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	ds, err := s.CreateDataset(context.Background(), "march quotes", "quotes.xlsx")
	require.NoError(t, err)
	assert.NotEmpty(t, ds.ID)
	assert.Equal(t, "march quotes", ds.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetDataset_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, name, source, quote_count, created_at FROM datasets WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetDataset(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListQuotes(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	quotedAt := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"article", "series", "material", "supplier", "price", "quoted_at"}).
		AddRow("A", "S", "Granite", "X", 100.0, quotedAt).
		AddRow("A", "S", "Granite", "Y", 120.0, quotedAt.AddDate(0, 0, 1))

	mock.ExpectQuery(`SELECT article, series, material, supplier, price, quoted_at`).
		WithArgs("ds-1").
		WillReturnRows(rows)

	got, err := s.ListQuotes(context.Background(), "ds-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "X", got[0].Supplier)
	assert.InDelta(t, 120.0, got[1].Price, 0.0001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AddQuotes_CopiesAndBumpsCount(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT COALESCE\(MAX\(seq\), -1\) \+ 1 FROM quotes`).
		WithArgs("ds-1").
		WillReturnRows(pgxmock.NewRows([]string{"seq"}).AddRow(0))

	mock.ExpectCopyFrom(pgx.Identifier{"quotes"},
		[]string{"dataset_id", "seq", "article", "series", "material", "supplier", "price", "quoted_at"}).
		WillReturnResult(2)

	mock.ExpectExec(`UPDATE datasets SET quote_count`).
		WithArgs(int64(2), "ds-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	quotes := []model.Quote{
		{Article: "A", Series: "S", Material: "G", Supplier: "X", Price: 100, QuotedAt: time.Now()},
		{Article: "A", Series: "S", Material: "G", Supplier: "Y", Price: 110, QuotedAt: time.Now()},
	}
	n, err := s.AddQuotes(context.Background(), "ds-1", quotes)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteDataset_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`DELETE FROM datasets WHERE id = \$1`).
		WithArgs("nope").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := s.DeleteDataset(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
