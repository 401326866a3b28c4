package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ComparePostgresRepository stores comparison sets in the compare_sets table.
type ComparePostgresRepository struct {
	pool *pgxpool.Pool
}

func NewComparePostgresRepository(pool *pgxpool.Pool) *ComparePostgresRepository {
	return &ComparePostgresRepository{pool: pool}
}

func (r *ComparePostgresRepository) Load(ctx context.Context, clientID string) ([]int, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT ids FROM compare_sets WHERE client_id = $1`, clientID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select compare set: %w", err)
	}
	return decodeIDs(raw)
}

// Save upserts the full set.
func (r *ComparePostgresRepository) Save(ctx context.Context, clientID string, ids []int) error {
	raw, err := encodeIDs(ids)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO compare_sets (client_id, ids, updated_at) VALUES ($1, $2::jsonb, NOW())
		 ON CONFLICT (client_id) DO UPDATE SET ids = EXCLUDED.ids, updated_at = NOW()`,
		clientID, string(raw))
	if err != nil {
		return fmt.Errorf("upsert compare set: %w", err)
	}
	return nil
}

func (r *ComparePostgresRepository) Delete(ctx context.Context, clientID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM compare_sets WHERE client_id = $1`, clientID); err != nil {
		return fmt.Errorf("delete compare set: %w", err)
	}
	return nil
}
