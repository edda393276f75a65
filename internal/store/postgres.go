package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/quote-compare-cli/internal/db"
	"github.com/sells-group/quote-compare-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection.
var preparedStatements = map[string]string{
	"insert_dataset": `INSERT INTO datasets (id, name, source, quote_count, created_at) VALUES ($1, $2, $3, 0, $4)`,
	"get_dataset":    `SELECT id, name, source, quote_count, created_at FROM datasets WHERE id = $1`,
	"list_datasets":  `SELECT id, name, source, quote_count, created_at FROM datasets ORDER BY created_at DESC`,
	"delete_dataset": `DELETE FROM datasets WHERE id = $1`,
	"list_quotes":    `SELECT article, series, material, supplier, price, quoted_at FROM quotes WHERE dataset_id = $1 ORDER BY seq`,
	"next_seq":       `SELECT COALESCE(MAX(seq), -1) + 1 FROM quotes WHERE dataset_id = $1`,
	"bump_count":     `UPDATE datasets SET quote_count = quote_count + $1 WHERE id = $2`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS datasets (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	source      TEXT NOT NULL,
	quote_count INTEGER NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS quotes (
	dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
	seq        INTEGER NOT NULL,
	article    TEXT NOT NULL,
	series     TEXT NOT NULL,
	material   TEXT NOT NULL,
	supplier   TEXT NOT NULL,
	price      DOUBLE PRECISION NOT NULL CHECK (price > 0),
	quoted_at  TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (dataset_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_quotes_dataset_id ON quotes(dataset_id);
CREATE INDEX IF NOT EXISTS idx_quotes_supplier ON quotes(supplier);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateDataset(ctx context.Context, name, source string) (*model.Dataset, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO datasets (id, name, source, quote_count, created_at) VALUES ($1, $2, $3, 0, $4)`,
		id, name, source, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert dataset")
	}

	return &model.Dataset{ID: id, Name: name, Source: source, CreatedAt: now}, nil
}

func (s *PostgresStore) GetDataset(ctx context.Context, id string) (*model.Dataset, error) {
	var d model.Dataset
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, source, quote_count, created_at FROM datasets WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.Source, &d.QuoteCount, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("postgres: dataset %s not found", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get dataset %s", id)
	}
	return &d, nil
}

func (s *PostgresStore) ListDatasets(ctx context.Context) ([]model.Dataset, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, source, quote_count, created_at FROM datasets ORDER BY created_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list datasets")
	}
	defer rows.Close()

	var out []model.Dataset
	for rows.Next() {
		var d model.Dataset
		if err := rows.Scan(&d.ID, &d.Name, &d.Source, &d.QuoteCount, &d.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan dataset")
		}
		out = append(out, d)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list datasets")
}

func (s *PostgresStore) DeleteDataset(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete dataset %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: dataset %s not found", id)
	}
	return nil
}

func (s *PostgresStore) AddQuotes(ctx context.Context, datasetID string, quotes []model.Quote) (int, error) {
	if len(quotes) == 0 {
		return 0, nil
	}

	var seq int
	if err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(seq), -1) + 1 FROM quotes WHERE dataset_id = $1`, datasetID,
	).Scan(&seq); err != nil {
		return 0, eris.Wrap(err, "postgres: next seq")
	}

	rows := make([][]any, len(quotes))
	for i, q := range quotes {
		rows[i] = []any{datasetID, seq + i, q.Article, q.Series, q.Material, q.Supplier, q.Price, q.QuotedAt.UTC()}
	}

	n, err := db.CopyFrom(ctx, s.pool, "quotes",
		[]string{"dataset_id", "seq", "article", "series", "material", "supplier", "price", "quoted_at"},
		rows,
	)
	if err != nil {
		return 0, err
	}

	if _, err := s.pool.Exec(ctx,
		`UPDATE datasets SET quote_count = quote_count + $1 WHERE id = $2`, n, datasetID,
	); err != nil {
		return 0, eris.Wrap(err, "postgres: update quote count")
	}
	return int(n), nil
}

func (s *PostgresStore) ListQuotes(ctx context.Context, datasetID string) ([]model.Quote, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT article, series, material, supplier, price, quoted_at
		 FROM quotes WHERE dataset_id = $1 ORDER BY seq`, datasetID)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list quotes %s", datasetID)
	}
	defer rows.Close()

	var out []model.Quote
	for rows.Next() {
		var q model.Quote
		if err := rows.Scan(&q.Article, &q.Series, &q.Material, &q.Supplier, &q.Price, &q.QuotedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan quote")
		}
		out = append(out, q)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list quotes")
}
