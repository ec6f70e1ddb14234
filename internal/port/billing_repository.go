package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hearbill/internal/domain"
)

// InvoiceRepository defines the contract for invoice persistence. Create
// stores the invoice together with its item snapshots.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, patientID *uuid.UUID, status domain.PaymentStatus, offset, limit int) ([]domain.Invoice, int, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.Invoice, error)
	ListDocumentIDs(ctx context.Context) ([]string, error)
	AddPayment(ctx context.Context, payment *domain.PaymentRecord) error
	RemovePayment(ctx context.Context, invoiceID, paymentID uuid.UUID) error
	UpdateLedger(ctx context.Context, invoiceID uuid.UUID, balanceDue float64, status domain.PaymentStatus) error
}

// QuotationRepository defines the contract for quotation persistence.
type QuotationRepository interface {
	Create(ctx context.Context, quotation *domain.Quotation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error)
	List(ctx context.Context, patientID *uuid.UUID, offset, limit int) ([]domain.Quotation, int, error)
	ListDocumentIDs(ctx context.Context) ([]string, error)
	MarkConverted(ctx context.Context, quotationID, invoiceID uuid.UUID) error
}

// NoteRepository defines the contract for credit/debit note persistence.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.FinancialNote) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FinancialNote, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.FinancialNote, error)
	List(ctx context.Context, noteType domain.NoteType, offset, limit int) ([]domain.FinancialNote, int, error)
	ListDocumentIDs(ctx context.Context) ([]string, error)
}

// DocumentCounterRepository allocates sequential document numbers through a
// single authoritative counter per (prefix, period). Next must be atomic so
// concurrent creations never observe the same sequence.
type DocumentCounterRepository interface {
	Next(ctx context.Context, prefix string) (int, error)
	// Seed raises the counter to at least seq; used when backfilling from
	// documents numbered by the legacy scan-and-increment policy.
	Seed(ctx context.Context, prefix string, seq int) error
}
