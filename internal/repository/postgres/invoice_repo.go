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

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

// Create stores the invoice and its item snapshots in one transaction so a
// half-written invoice never becomes visible.
func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO invoices (id, document_id, patient_id, patient_name, date,
		discount_type, discount_value, place_of_supply, subtotal, total_discount,
		total_taxable_value, total_cgst, total_sgst, total_igst, total_tax,
		final_total, balance_due, payment_status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err = tx.ExecContext(ctx, query,
		invoice.ID, invoice.DocumentID, invoice.PatientID, invoice.PatientName, invoice.Date,
		invoice.DiscountType, invoice.DiscountValue, invoice.PlaceOfSupply, invoice.Subtotal,
		invoice.TotalDiscount, invoice.TotalTaxableValue, invoice.TotalCGST, invoice.TotalSGST,
		invoice.TotalIGST, invoice.TotalTax, invoice.FinalTotal, invoice.BalanceDue,
		invoice.PaymentStatus, invoice.CreatedBy, invoice.CreatedAt, invoice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}

	itemQuery := `INSERT INTO invoice_items (id, invoice_id, device_id, brand, model,
		serial_number, hsn_code, unit_price, quantity, gst_rate_percent, item_discount,
		taxable_value, cgst_amount, sgst_amount, igst_amount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	for i := range invoice.Items {
		item := &invoice.Items[i]
		item.InvoiceID = invoice.ID
		_, err = tx.ExecContext(ctx, itemQuery,
			item.ID, item.InvoiceID, item.DeviceID, item.Brand, item.Model,
			item.SerialNumber, item.HSNCode, item.UnitPrice, item.Quantity,
			item.GSTRatePercent, item.ItemDiscount, item.TaxableValue,
			item.CGSTAmount, item.SGSTAmount, item.IGSTAmount, item.LineTotal)
		if err != nil {
			return fmt.Errorf("invoiceRepo.Create item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.Create commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.GetContext(ctx, &invoice, "SELECT * FROM invoices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}

	err = r.db.SelectContext(ctx, &invoice.Items,
		"SELECT * FROM invoice_items WHERE invoice_id = $1 ORDER BY serial_number", id)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetByID items: %w", err)
	}
	err = r.db.SelectContext(ctx, &invoice.Payments,
		"SELECT * FROM payments WHERE invoice_id = $1 ORDER BY created_at", id)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetByID payments: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepo) List(ctx context.Context, patientID *uuid.UUID, status domain.PaymentStatus, offset, limit int) ([]domain.Invoice, int, error) {
	conds := []string{}
	args := []interface{}{}
	if patientID != nil {
		args = append(args, *patientID)
		conds = append(conds, fmt.Sprintf("patient_id = $%d", len(args)))
	}
	if status != "" {
		args = append(args, status)
		conds = append(conds, fmt.Sprintf("payment_status = $%d", len(args)))
	}
	where := ""
	for i, c := range conds {
		if i == 0 {
			where = "WHERE " + c
		} else {
			where += " AND " + c
		}
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM invoices %s ORDER BY date DESC, document_id DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var invoices []domain.Invoice
	err = r.db.SelectContext(ctx, &invoices, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		"SELECT * FROM invoices WHERE date >= $1 AND date < $2 ORDER BY date, document_id", from, to)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListBetween: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) ListDocumentIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids, "SELECT document_id FROM invoices")
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListDocumentIDs: %w", err)
	}
	return ids, nil
}

func (r *invoiceRepo) AddPayment(ctx context.Context, payment *domain.PaymentRecord) error {
	payment.CreatedAt = time.Now().UTC()
	query := `INSERT INTO payments (id, invoice_id, date, amount, method, note, bank_details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		payment.ID, payment.InvoiceID, payment.Date, payment.Amount,
		payment.Method, payment.Note, payment.BankDetails, payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.AddPayment: %w", err)
	}
	return nil
}

func (r *invoiceRepo) RemovePayment(ctx context.Context, invoiceID, paymentID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM payments WHERE id = $1 AND invoice_id = $2", paymentID, invoiceID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.RemovePayment: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func (r *invoiceRepo) UpdateLedger(ctx context.Context, invoiceID uuid.UUID, balanceDue float64, status domain.PaymentStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET balance_due = $1, payment_status = $2, updated_at = NOW() WHERE id = $3",
		balanceDue, status, invoiceID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateLedger: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
