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

type quotationRepo struct {
	db *sqlx.DB
}

// NewQuotationRepo creates a new PostgreSQL-backed QuotationRepository.
func NewQuotationRepo(db *sqlx.DB) port.QuotationRepository {
	return &quotationRepo{db: db}
}

func (r *quotationRepo) Create(ctx context.Context, quotation *domain.Quotation) error {
	now := time.Now().UTC()
	quotation.CreatedAt = now
	quotation.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("quotationRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO quotations (id, document_id, patient_id, patient_name, date, valid_until,
		discount_type, discount_value, place_of_supply, subtotal, total_discount,
		total_taxable_value, total_cgst, total_sgst, total_igst, total_tax,
		final_total, converted_invoice_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err = tx.ExecContext(ctx, query,
		quotation.ID, quotation.DocumentID, quotation.PatientID, quotation.PatientName,
		quotation.Date, quotation.ValidUntil, quotation.DiscountType, quotation.DiscountValue,
		quotation.PlaceOfSupply, quotation.Subtotal, quotation.TotalDiscount,
		quotation.TotalTaxableValue, quotation.TotalCGST, quotation.TotalSGST,
		quotation.TotalIGST, quotation.TotalTax, quotation.FinalTotal,
		quotation.ConvertedInvoice, quotation.CreatedBy, quotation.CreatedAt, quotation.UpdatedAt)
	if err != nil {
		return fmt.Errorf("quotationRepo.Create: %w", err)
	}

	itemQuery := `INSERT INTO quotation_items (id, quotation_id, device_id, brand, model,
		serial_number, hsn_code, unit_price, quantity, gst_rate_percent, item_discount,
		taxable_value, cgst_amount, sgst_amount, igst_amount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	for i := range quotation.Items {
		item := &quotation.Items[i]
		item.InvoiceID = quotation.ID
		_, err = tx.ExecContext(ctx, itemQuery,
			item.ID, quotation.ID, item.DeviceID, item.Brand, item.Model,
			item.SerialNumber, item.HSNCode, item.UnitPrice, item.Quantity,
			item.GSTRatePercent, item.ItemDiscount, item.TaxableValue,
			item.CGSTAmount, item.SGSTAmount, item.IGSTAmount, item.LineTotal)
		if err != nil {
			return fmt.Errorf("quotationRepo.Create item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("quotationRepo.Create commit: %w", err)
	}
	return nil
}

func (r *quotationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	var quotation domain.Quotation
	err := r.db.GetContext(ctx, &quotation, "SELECT * FROM quotations WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("quotationRepo.GetByID: %w", err)
	}

	err = r.db.SelectContext(ctx, &quotation.Items,
		`SELECT id, quotation_id AS invoice_id, device_id, brand, model, serial_number, hsn_code,
			unit_price, quantity, gst_rate_percent, item_discount, taxable_value,
			cgst_amount, sgst_amount, igst_amount, line_total
		 FROM quotation_items WHERE quotation_id = $1 ORDER BY serial_number`, id)
	if err != nil {
		return nil, fmt.Errorf("quotationRepo.GetByID items: %w", err)
	}
	return &quotation, nil
}

func (r *quotationRepo) List(ctx context.Context, patientID *uuid.UUID, offset, limit int) ([]domain.Quotation, int, error) {
	where := ""
	args := []interface{}{}
	if patientID != nil {
		where = "WHERE patient_id = $1"
		args = append(args, *patientID)
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM quotations "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("quotationRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM quotations %s ORDER BY date DESC, document_id DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var quotations []domain.Quotation
	err = r.db.SelectContext(ctx, &quotations, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("quotationRepo.List: %w", err)
	}
	return quotations, total, nil
}

func (r *quotationRepo) ListDocumentIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids, "SELECT document_id FROM quotations")
	if err != nil {
		return nil, fmt.Errorf("quotationRepo.ListDocumentIDs: %w", err)
	}
	return ids, nil
}

func (r *quotationRepo) MarkConverted(ctx context.Context, quotationID, invoiceID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE quotations SET converted_invoice_id = $1, updated_at = NOW()
		 WHERE id = $2 AND converted_invoice_id IS NULL`,
		invoiceID, quotationID)
	if err != nil {
		return fmt.Errorf("quotationRepo.MarkConverted: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrQuotationConverted
	}
	return nil
}
