package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/quote-compare-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS datasets (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	source      TEXT NOT NULL,
	quote_count INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS quotes (
	dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
	seq        INTEGER NOT NULL,
	article    TEXT NOT NULL,
	series     TEXT NOT NULL,
	material   TEXT NOT NULL,
	supplier   TEXT NOT NULL,
	price      REAL NOT NULL CHECK (price > 0),
	quoted_at  DATETIME NOT NULL,
	PRIMARY KEY (dataset_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_quotes_dataset_id ON quotes(dataset_id);
CREATE INDEX IF NOT EXISTS idx_quotes_supplier ON quotes(supplier);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateDataset(ctx context.Context, name, source string) (*model.Dataset, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO datasets (id, name, source, quote_count, created_at) VALUES (?, ?, ?, 0, ?)`,
		id, name, source, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert dataset")
	}

	return &model.Dataset{ID: id, Name: name, Source: source, CreatedAt: now}, nil
}

func (s *SQLiteStore) GetDataset(ctx context.Context, id string) (*model.Dataset, error) {
	var d model.Dataset
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, source, quote_count, created_at FROM datasets WHERE id = ?`, id,
	).Scan(&d.ID, &d.Name, &d.Source, &d.QuoteCount, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("sqlite: dataset %s not found", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get dataset %s", id)
	}
	return &d, nil
}

func (s *SQLiteStore) ListDatasets(ctx context.Context) ([]model.Dataset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, source, quote_count, created_at FROM datasets ORDER BY created_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list datasets")
	}
	defer rows.Close()

	var out []model.Dataset
	for rows.Next() {
		var d model.Dataset
		if err := rows.Scan(&d.ID, &d.Name, &d.Source, &d.QuoteCount, &d.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan dataset")
		}
		out = append(out, d)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list datasets")
}

func (s *SQLiteStore) DeleteDataset(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete dataset %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: dataset %s not found", id)
	}
	return nil
}

func (s *SQLiteStore) AddQuotes(ctx context.Context, datasetID string, quotes []model.Quote) (int, error) {
	if len(quotes) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	var seq int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), -1) + 1 FROM quotes WHERE dataset_id = ?`, datasetID,
	).Scan(&seq); err != nil {
		return 0, eris.Wrap(err, "sqlite: next seq")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO quotes (dataset_id, seq, article, series, material, supplier, price, quoted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert quote")
	}
	defer stmt.Close()

	for i, q := range quotes {
		if _, err := stmt.ExecContext(ctx,
			datasetID, seq+i, q.Article, q.Series, q.Material, q.Supplier, q.Price, q.QuotedAt.UTC(),
		); err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert quote %d", i)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE datasets SET quote_count = quote_count + ? WHERE id = ?`, len(quotes), datasetID,
	); err != nil {
		return 0, eris.Wrap(err, "sqlite: update quote count")
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit")
	}
	return len(quotes), nil
}

func (s *SQLiteStore) ListQuotes(ctx context.Context, datasetID string) ([]model.Quote, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT article, series, material, supplier, price, quoted_at
		 FROM quotes WHERE dataset_id = ? ORDER BY seq`, datasetID)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list quotes %s", datasetID)
	}
	defer rows.Close()

	var out []model.Quote
	for rows.Next() {
		var q model.Quote
		if err := rows.Scan(&q.Article, &q.Series, &q.Material, &q.Supplier, &q.Price, &q.QuotedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan quote")
		}
		out = append(out, q)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list quotes")
}
