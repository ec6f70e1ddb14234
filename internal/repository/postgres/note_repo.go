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

type noteRepo struct {
	db *sqlx.DB
}

// NewNoteRepo creates a new PostgreSQL-backed NoteRepository.
func NewNoteRepo(db *sqlx.DB) port.NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) Create(ctx context.Context, note *domain.FinancialNote) error {
	note.CreatedAt = time.Now().UTC()

	query := `INSERT INTO financial_notes (id, document_id, type, invoice_id, invoice_document_id,
		patient_name, amount, reason, date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		note.ID, note.DocumentID, note.Type, note.InvoiceID, note.InvoiceDoc,
		note.PatientName, note.Amount, note.Reason, note.Date, note.CreatedBy, note.CreatedAt)
	if err != nil {
		return fmt.Errorf("noteRepo.Create: %w", err)
	}
	return nil
}

func (r *noteRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FinancialNote, error) {
	var note domain.FinancialNote
	err := r.db.GetContext(ctx, &note, "SELECT * FROM financial_notes WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("noteRepo.GetByID: %w", err)
	}
	return &note, nil
}

func (r *noteRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.FinancialNote, error) {
	var notes []domain.FinancialNote
	err := r.db.SelectContext(ctx, &notes,
		"SELECT * FROM financial_notes WHERE invoice_id = $1 ORDER BY date", invoiceID)
	if err != nil {
		return nil, fmt.Errorf("noteRepo.ListByInvoice: %w", err)
	}
	return notes, nil
}

func (r *noteRepo) List(ctx context.Context, noteType domain.NoteType, offset, limit int) ([]domain.FinancialNote, int, error) {
	where := ""
	args := []interface{}{}
	if noteType != "" {
		where = "WHERE type = $1"
		args = append(args, noteType)
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM financial_notes "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("noteRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM financial_notes %s ORDER BY date DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var notes []domain.FinancialNote
	err = r.db.SelectContext(ctx, &notes, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("noteRepo.List: %w", err)
	}
	return notes, total, nil
}

func (r *noteRepo) ListDocumentIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids, "SELECT document_id FROM financial_notes")
	if err != nil {
		return nil, fmt.Errorf("noteRepo.ListDocumentIDs: %w", err)
	}
	return ids, nil
}
