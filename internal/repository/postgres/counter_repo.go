package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"hearbill/internal/domain"
	"hearbill/internal/port"
)

type counterRepo struct {
	db *sqlx.DB
}

// NewCounterRepo creates a new PostgreSQL-backed DocumentCounterRepository.
func NewCounterRepo(db *sqlx.DB) port.DocumentCounterRepository {
	return &counterRepo{db: db}
}

// Next allocates the next sequence for a prefix in a single atomic upsert.
// Two concurrent creations are serialized by the row lock and can never
// observe the same number, unlike the legacy client-side scan-and-increment.
func (r *counterRepo) Next(ctx context.Context, prefix string) (int, error) {
	if prefix == "" {
		return 0, fmt.Errorf("%w: document prefix must not be empty", domain.ErrInvalidArgument)
	}
	var seq int
	err := r.db.GetContext(ctx, &seq, `
		INSERT INTO document_counters (prefix, seq)
		VALUES ($1, 1)
		ON CONFLICT (prefix) DO UPDATE SET seq = document_counters.seq + 1
		RETURNING seq`,
		prefix)
	if err != nil {
		return 0, fmt.Errorf("counterRepo.Next: %w", err)
	}
	return seq, nil
}

func (r *counterRepo) Seed(ctx context.Context, prefix string, seq int) error {
	if prefix == "" {
		return fmt.Errorf("%w: document prefix must not be empty", domain.ErrInvalidArgument)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO document_counters (prefix, seq)
		VALUES ($1, $2)
		ON CONFLICT (prefix) DO UPDATE SET seq = GREATEST(document_counters.seq, EXCLUDED.seq)`,
		prefix, seq)
	if err != nil {
		return fmt.Errorf("counterRepo.Seed: %w", err)
	}
	return nil
}
