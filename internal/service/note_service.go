package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hearbill/internal/billing"
	"hearbill/internal/config"
	"hearbill/internal/domain"
	"hearbill/internal/port"
)

// CreateNoteInput is the DTO for issuing a credit or debit note.
type CreateNoteInput struct {
	Type      domain.NoteType `json:"type" binding:"required"`
	InvoiceID uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount    float64         `json:"amount" binding:"required"`
	Reason    string          `json:"reason" binding:"required"`
	Date      time.Time       `json:"date"`
	CreatedBy uuid.UUID       `json:"-"`
}

// NoteService defines the credit/debit note contract.
type NoteService interface {
	Create(ctx context.Context, input CreateNoteInput) (*domain.FinancialNote, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FinancialNote, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.FinancialNote, error)
	List(ctx context.Context, noteType domain.NoteType, offset, limit int) ([]domain.FinancialNote, int, error)
}

type noteService struct {
	noteRepo    port.NoteRepository
	invoiceRepo port.InvoiceRepository
	counterRepo port.DocumentCounterRepository
	clinic      config.ClinicConfig
}

// NewNoteService creates a new NoteService implementation.
func NewNoteService(
	noteRepo port.NoteRepository,
	invoiceRepo port.InvoiceRepository,
	counterRepo port.DocumentCounterRepository,
	clinic config.ClinicConfig,
) NoteService {
	return &noteService{
		noteRepo:    noteRepo,
		invoiceRepo: invoiceRepo,
		counterRepo: counterRepo,
		clinic:      clinic,
	}
}

func (s *noteService) Create(ctx context.Context, input CreateNoteInput) (*domain.FinancialNote, error) {
	switch input.Type {
	case domain.NoteCredit, domain.NoteDebit:
	default:
		return nil, fmt.Errorf("%w: unknown note type %q", domain.ErrInvalidArgument, input.Type)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: note amount must be positive", domain.ErrInvalidArgument)
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if input.Type == domain.NoteCredit && input.Amount > invoice.FinalTotal {
		return nil, fmt.Errorf("%w: credit note exceeds invoice total", domain.ErrInvalidArgument)
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	kind := domain.PrefixCreditNote
	if input.Type == domain.NoteDebit {
		kind = domain.PrefixDebitNote
	}
	prefix := docPrefix(s.clinic, kind, date)
	seq, err := s.counterRepo.Next(ctx, prefix)
	if err != nil {
		return nil, err
	}

	note := &domain.FinancialNote{
		ID:          uuid.New(),
		DocumentID:  billing.FormatDocumentID(prefix, seq),
		Type:        input.Type,
		InvoiceID:   invoice.ID,
		InvoiceDoc:  invoice.DocumentID,
		PatientName: invoice.PatientName,
		Amount:      input.Amount,
		Reason:      input.Reason,
		Date:        date,
		CreatedBy:   input.CreatedBy,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) GetByID(ctx context.Context, id uuid.UUID) (*domain.FinancialNote, error) {
	return s.noteRepo.GetByID(ctx, id)
}

func (s *noteService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.FinancialNote, error) {
	return s.noteRepo.ListByInvoice(ctx, invoiceID)
}

func (s *noteService) List(ctx context.Context, noteType domain.NoteType, offset, limit int) ([]domain.FinancialNote, int, error) {
	return s.noteRepo.List(ctx, noteType, offset, limit)
}
