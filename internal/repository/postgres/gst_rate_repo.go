package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"hearbill/internal/domain"
	"hearbill/internal/port"
)

type gstRateRepo struct {
	db *sqlx.DB
}

// NewGSTRateRepo creates a new PostgreSQL-backed GSTRateRepository.
func NewGSTRateRepo(db *sqlx.DB) port.GSTRateRepository {
	return &gstRateRepo{db: db}
}

func (r *gstRateRepo) GetByHSN(ctx context.Context, hsnCode string) (*domain.GSTRate, error) {
	var rate domain.GSTRate
	err := r.db.GetContext(ctx, &rate, "SELECT * FROM gst_rates WHERE hsn_code = $1", hsnCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("gstRateRepo.GetByHSN: %w", err)
	}
	return &rate, nil
}

func (r *gstRateRepo) Search(ctx context.Context, query string, limit int) ([]domain.GSTRate, error) {
	var rates []domain.GSTRate
	err := r.db.SelectContext(ctx, &rates,
		`SELECT * FROM gst_rates WHERE hsn_code ILIKE $1 OR description ILIKE $1
		 ORDER BY hsn_code LIMIT $2`,
		"%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("gstRateRepo.Search: %w", err)
	}
	return rates, nil
}
