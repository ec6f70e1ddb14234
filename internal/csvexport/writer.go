package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hearbill/internal/billing"
	"hearbill/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the sales register header row.
var columns = []string{
	"Invoice Number",
	"Invoice Date",
	"Patient Name",
	"Place of Supply",
	"Subtotal",
	"Discount",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
	"Total Tax",
	"Invoice Total",
	"Rounded Total",
	"Round Off",
	"Balance Due",
	"Payment Status",
	"Line Item Count",
	"Created At",
}

// Writer wraps csv.Writer for exporting the GST sales register.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the sales register header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteInvoices converts a batch of invoices to CSV rows and writes them.
func (w *Writer) WriteInvoices(invoices []domain.Invoice) error {
	for i := range invoices {
		row := invoiceToRow(&invoices[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func invoiceToRow(inv *domain.Invoice) []string {
	rounded, roundOff := billing.RoundTotal(inv.FinalTotal)

	row := make([]string, len(columns))
	row[0] = inv.DocumentID
	row[1] = inv.Date.Format("2006-01-02")
	row[2] = inv.PatientName
	row[3] = string(inv.PlaceOfSupply)
	row[4] = formatMoney(inv.Subtotal)
	row[5] = formatMoney(inv.TotalDiscount)
	row[6] = formatMoney(inv.TotalTaxableValue)
	row[7] = formatMoney(inv.TotalCGST)
	row[8] = formatMoney(inv.TotalSGST)
	row[9] = formatMoney(inv.TotalIGST)
	row[10] = formatMoney(inv.TotalTax)
	row[11] = formatMoney(inv.FinalTotal)
	row[12] = formatMoney(rounded)
	row[13] = formatMoney(roundOff)
	row[14] = formatMoney(inv.BalanceDue)
	row[15] = string(inv.PaymentStatus)
	row[16] = strconv.Itoa(len(inv.Items))
	row[17] = inv.CreatedAt.Format(time.RFC3339)
	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a report name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_report_name}_{YYYY-MM-DD}.csv
func BuildFilename(reportName string) string {
	sanitized := SanitizeFilename(reportName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
