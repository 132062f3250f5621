package usage

import (
	"context"
	"database/sql"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed usage store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Insert(ctx context.Context, rec Record) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO usage_records (id, endpoint, api_key_hash, model_id, outcome, error_code, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.Endpoint, rec.APIKeyHash, rec.ModelID, rec.Outcome, rec.ErrorCode, rec.DurationMs, rec.CreatedAt,
	)
	return err
}

func (s *pgStore) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, endpoint, api_key_hash, model_id, outcome, error_code, duration_ms, created_at
		FROM usage_records
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Endpoint, &rec.APIKeyHash, &rec.ModelID, &rec.Outcome, &rec.ErrorCode, &rec.DurationMs, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
