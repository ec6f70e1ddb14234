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

type leadRepo struct {
	db *sqlx.DB
}

// NewLeadRepo creates a new PostgreSQL-backed LeadRepository.
func NewLeadRepo(db *sqlx.DB) port.LeadRepository {
	return &leadRepo{db: db}
}

func (r *leadRepo) Create(ctx context.Context, lead *domain.Lead) error {
	lead.ID = uuid.New()
	now := time.Now().UTC()
	lead.CreatedAt = now
	lead.UpdatedAt = now
	if lead.Status == "" {
		lead.Status = domain.LeadNew
	}

	query := `INSERT INTO leads (id, full_name, phone, email, source, status, patient_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		lead.ID, lead.FullName, lead.Phone, lead.Email, lead.Source,
		lead.Status, lead.PatientID, lead.CreatedBy, lead.CreatedAt, lead.UpdatedAt)
	if err != nil {
		return fmt.Errorf("leadRepo.Create: %w", err)
	}
	return nil
}

func (r *leadRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	var lead domain.Lead
	err := r.db.GetContext(ctx, &lead, "SELECT * FROM leads WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("leadRepo.GetByID: %w", err)
	}
	return &lead, nil
}

func (r *leadRepo) List(ctx context.Context, status domain.LeadStatus, offset, limit int) ([]domain.Lead, int, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = "WHERE status = $1"
		args = append(args, status)
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM leads "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("leadRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM leads %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var leads []domain.Lead
	err = r.db.SelectContext(ctx, &leads, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("leadRepo.List: %w", err)
	}
	return leads, total, nil
}

func (r *leadRepo) Update(ctx context.Context, lead *domain.Lead) error {
	lead.UpdatedAt = time.Now().UTC()
	query := `UPDATE leads SET full_name = $1, phone = $2, email = $3, source = $4,
		status = $5, patient_id = $6, updated_at = $7 WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query,
		lead.FullName, lead.Phone, lead.Email, lead.Source,
		lead.Status, lead.PatientID, lead.UpdatedAt, lead.ID)
	if err != nil {
		return fmt.Errorf("leadRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *leadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM leads WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("leadRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *leadRepo) AddFollowUp(ctx context.Context, followUp *domain.FollowUp) error {
	followUp.ID = uuid.New()
	followUp.CreatedAt = time.Now().UTC()

	query := `INSERT INTO lead_follow_ups (id, lead_id, note, due_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		followUp.ID, followUp.LeadID, followUp.Note, followUp.DueAt,
		followUp.CreatedBy, followUp.CreatedAt)
	if err != nil {
		return fmt.Errorf("leadRepo.AddFollowUp: %w", err)
	}
	return nil
}

func (r *leadRepo) ListFollowUps(ctx context.Context, leadID uuid.UUID) ([]domain.FollowUp, error) {
	var followUps []domain.FollowUp
	err := r.db.SelectContext(ctx, &followUps,
		"SELECT * FROM lead_follow_ups WHERE lead_id = $1 ORDER BY created_at DESC", leadID)
	if err != nil {
		return nil, fmt.Errorf("leadRepo.ListFollowUps: %w", err)
	}
	return followUps, nil
}
