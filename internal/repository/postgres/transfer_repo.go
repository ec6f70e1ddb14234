package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hearbill/internal/domain"
	"hearbill/internal/port"
)

type transferRepo struct {
	db *sqlx.DB
}

// NewTransferRepo creates a new PostgreSQL-backed TransferRepository.
func NewTransferRepo(db *sqlx.DB) port.TransferRepository {
	return &transferRepo{db: db}
}

func (r *transferRepo) Create(ctx context.Context, transfer *domain.Transfer) error {
	transfer.ID = uuid.New()
	if transfer.DispatchedAt.IsZero() {
		transfer.DispatchedAt = time.Now().UTC()
	}

	query := `INSERT INTO transfers (id, device_id, from_location, to_location, status,
		dispatched_at, received_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		transfer.ID, transfer.DeviceID, transfer.FromLocation, transfer.ToLocation,
		transfer.Status, transfer.DispatchedAt, transfer.ReceivedAt, transfer.CreatedBy)
	if err != nil {
		return fmt.Errorf("transferRepo.Create: %w", err)
	}
	return nil
}

func (r *transferRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	var transfer domain.Transfer
	err := r.db.GetContext(ctx, &transfer, "SELECT * FROM transfers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("transferRepo.GetByID: %w", err)
	}
	return &transfer, nil
}

func (r *transferRepo) List(ctx context.Context, status domain.TransferStatus, offset, limit int) ([]domain.Transfer, int, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = "WHERE status = $1"
		args = append(args, status)
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM transfers "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("transferRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM transfers %s ORDER BY dispatched_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var transfers []domain.Transfer
	err = r.db.SelectContext(ctx, &transfers, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("transferRepo.List: %w", err)
	}
	return transfers, total, nil
}

func (r *transferRepo) Update(ctx context.Context, transfer *domain.Transfer) error {
	query := `UPDATE transfers SET status = $1, received_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, transfer.Status, transfer.ReceivedAt, transfer.ID)
	if err != nil {
		return fmt.Errorf("transferRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
