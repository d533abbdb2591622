package history

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS tax_comparisons (
	id           UUID PRIMARY KEY,
	source       TEXT NOT NULL,
	gross_income NUMERIC(23, 8) NOT NULL,
	schedule_a   TEXT NOT NULL,
	tax_a        NUMERIC(28, 10) NOT NULL,
	schedule_b   TEXT NOT NULL,
	tax_b        NUMERIC(28, 10) NOT NULL,
	difference   NUMERIC(28, 10) NOT NULL,
	direction    TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
)`

// PostgresStore persists records in the tax_comparisons table.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects to dsn and makes sure the table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := NewPostgresStore(db)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create tax_comparisons: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tax_comparisons
			(id, source, gross_income, schedule_a, tax_a, schedule_b, tax_b, difference, direction, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.Source, rec.GrossIncome, rec.ScheduleA, rec.TaxA,
		rec.ScheduleB, rec.TaxB, rec.Difference, rec.Direction, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert comparison: %w", err)
	}
	return nil
}

func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, gross_income, schedule_a, tax_a, schedule_b, tax_b, difference, direction, created_at
		FROM tax_comparisons
		ORDER BY created_at DESC
		LIMIT $1`, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query comparisons: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Source, &r.GrossIncome, &r.ScheduleA, &r.TaxA,
			&r.ScheduleB, &r.TaxB, &r.Difference, &r.Direction, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comparison: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
