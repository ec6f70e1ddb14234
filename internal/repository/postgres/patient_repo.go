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

type patientRepo struct {
	db *sqlx.DB
}

// NewPatientRepo creates a new PostgreSQL-backed PatientRepository.
func NewPatientRepo(db *sqlx.DB) port.PatientRepository {
	return &patientRepo{db: db}
}

func (r *patientRepo) Create(ctx context.Context, patient *domain.Patient) error {
	patient.ID = uuid.New()
	now := time.Now().UTC()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	query := `INSERT INTO patients (id, full_name, phone, email, address, state_code, dob, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		patient.ID, patient.FullName, patient.Phone, patient.Email, patient.Address,
		patient.StateCode, patient.DOB, patient.Notes, patient.CreatedAt, patient.UpdatedAt)
	if err != nil {
		return fmt.Errorf("patientRepo.Create: %w", err)
	}
	return nil
}

func (r *patientRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	var patient domain.Patient
	err := r.db.GetContext(ctx, &patient, "SELECT * FROM patients WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("patientRepo.GetByID: %w", err)
	}
	return &patient, nil
}

func (r *patientRepo) List(ctx context.Context, search string, offset, limit int) ([]domain.Patient, int, error) {
	where := ""
	args := []interface{}{}
	if search != "" {
		where = "WHERE full_name ILIKE $1 OR phone ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM patients "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("patientRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM patients %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var patients []domain.Patient
	err = r.db.SelectContext(ctx, &patients, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("patientRepo.List: %w", err)
	}
	return patients, total, nil
}

func (r *patientRepo) Update(ctx context.Context, patient *domain.Patient) error {
	patient.UpdatedAt = time.Now().UTC()
	query := `UPDATE patients SET full_name = $1, phone = $2, email = $3, address = $4,
		state_code = $5, dob = $6, notes = $7, updated_at = $8 WHERE id = $9`
	result, err := r.db.ExecContext(ctx, query,
		patient.FullName, patient.Phone, patient.Email, patient.Address,
		patient.StateCode, patient.DOB, patient.Notes, patient.UpdatedAt, patient.ID)
	if err != nil {
		return fmt.Errorf("patientRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *patientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM patients WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("patientRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
