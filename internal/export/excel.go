// Package export builds Excel workbooks for the clinic's financial reports.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"hearbill/internal/billing"
	"hearbill/internal/domain"
)

const (
	invoiceSheet = "Sales Register"
	noteSheet    = "Credit-Debit Notes"
)

var invoiceHeader = []interface{}{
	"Invoice Number", "Invoice Date", "Patient Name", "Place of Supply",
	"Subtotal", "Discount", "Taxable Value", "CGST", "SGST", "IGST",
	"Total Tax", "Invoice Total", "Rounded Total", "Round Off",
	"Balance Due", "Payment Status",
}

var noteHeader = []interface{}{
	"Note Number", "Type", "Against Invoice", "Patient Name", "Amount", "Reason", "Date",
}

// SalesWorkbook builds a two-sheet workbook holding the sales register and
// the credit/debit notes issued in the same window.
func SalesWorkbook(invoices []domain.Invoice, notes []domain.FinancialNote) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", invoiceSheet); err != nil {
		return nil, fmt.Errorf("export.SalesWorkbook: %w", err)
	}
	if err := writeInvoiceSheet(f, invoices); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(noteSheet); err != nil {
		return nil, fmt.Errorf("export.SalesWorkbook: %w", err)
	}
	if err := writeNoteSheet(f, notes); err != nil {
		return nil, err
	}

	return f, nil
}

func writeInvoiceSheet(f *excelize.File, invoices []domain.Invoice) error {
	if err := f.SetSheetRow(invoiceSheet, "A1", &invoiceHeader); err != nil {
		return fmt.Errorf("export.writeInvoiceSheet: %w", err)
	}
	for i := range invoices {
		inv := &invoices[i]
		rounded, roundOff := billing.RoundTotal(inv.FinalTotal)
		row := []interface{}{
			inv.DocumentID,
			inv.Date.Format("2006-01-02"),
			inv.PatientName,
			string(inv.PlaceOfSupply),
			inv.Subtotal,
			inv.TotalDiscount,
			inv.TotalTaxableValue,
			inv.TotalCGST,
			inv.TotalSGST,
			inv.TotalIGST,
			inv.TotalTax,
			inv.FinalTotal,
			rounded,
			roundOff,
			inv.BalanceDue,
			string(inv.PaymentStatus),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export.writeInvoiceSheet: %w", err)
		}
		if err := f.SetSheetRow(invoiceSheet, cell, &row); err != nil {
			return fmt.Errorf("export.writeInvoiceSheet: %w", err)
		}
	}
	return nil
}

func writeNoteSheet(f *excelize.File, notes []domain.FinancialNote) error {
	if err := f.SetSheetRow(noteSheet, "A1", &noteHeader); err != nil {
		return fmt.Errorf("export.writeNoteSheet: %w", err)
	}
	for i := range notes {
		n := &notes[i]
		row := []interface{}{
			n.DocumentID,
			string(n.Type),
			n.InvoiceDoc,
			n.PatientName,
			n.Amount,
			n.Reason,
			n.Date.Format("2006-01-02"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export.writeNoteSheet: %w", err)
		}
		if err := f.SetSheetRow(noteSheet, cell, &row); err != nil {
			return fmt.Errorf("export.writeNoteSheet: %w", err)
		}
	}
	return nil
}
