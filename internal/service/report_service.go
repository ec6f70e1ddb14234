package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"hearbill/internal/csvexport"
	"hearbill/internal/domain"
	"hearbill/internal/export"
	"hearbill/internal/port"
)

// MonthlyTotals is one month of the financial summary.
type MonthlyTotals struct {
	Month        string  `json:"month"`
	InvoiceCount int     `json:"invoice_count"`
	TaxableValue float64 `json:"taxable_value"`
	TotalTax     float64 `json:"total_tax"`
	TotalBilled  float64 `json:"total_billed"`
	Collected    float64 `json:"collected"`
	Outstanding  float64 `json:"outstanding"`
}

// ReportService produces the clinic's financial reports.
type ReportService interface {
	// SalesRegisterCSV streams the GST sales register for the window to w.
	SalesRegisterCSV(ctx context.Context, from, to time.Time, w io.Writer) error
	// SalesWorkbook builds the Excel sales register with a notes sheet.
	SalesWorkbook(ctx context.Context, from, to time.Time) (*excelize.File, error)
	MonthlySummary(ctx context.Context, from, to time.Time) ([]MonthlyTotals, error)
}

type reportService struct {
	invoiceRepo port.InvoiceRepository
	noteRepo    port.NoteRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(invoiceRepo port.InvoiceRepository, noteRepo port.NoteRepository) ReportService {
	return &reportService{
		invoiceRepo: invoiceRepo,
		noteRepo:    noteRepo,
	}
}

func (s *reportService) SalesRegisterCSV(ctx context.Context, from, to time.Time, w io.Writer) error {
	invoices, err := s.invoiceRepo.ListBetween(ctx, from, to)
	if err != nil {
		return err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("reportService.SalesRegisterCSV: %w", err)
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("reportService.SalesRegisterCSV: %w", err)
	}
	if err := cw.WriteInvoices(invoices); err != nil {
		return fmt.Errorf("reportService.SalesRegisterCSV: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func (s *reportService) SalesWorkbook(ctx context.Context, from, to time.Time) (*excelize.File, error) {
	invoices, err := s.invoiceRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	notes := make([]domain.FinancialNote, 0)
	for _, t := range []domain.NoteType{domain.NoteCredit, domain.NoteDebit} {
		batch, _, err := s.noteRepo.List(ctx, t, 0, 10000)
		if err != nil {
			return nil, err
		}
		for _, n := range batch {
			if !n.Date.Before(from) && !n.Date.After(to) {
				notes = append(notes, n)
			}
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Date.Before(notes[j].Date) })

	return export.SalesWorkbook(invoices, notes)
}

func (s *reportService) MonthlySummary(ctx context.Context, from, to time.Time) ([]MonthlyTotals, error) {
	invoices, err := s.invoiceRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*MonthlyTotals)
	for i := range invoices {
		inv := &invoices[i]
		month := inv.Date.Format("2006-01")
		totals, ok := byMonth[month]
		if !ok {
			totals = &MonthlyTotals{Month: month}
			byMonth[month] = totals
		}
		totals.InvoiceCount++
		totals.TaxableValue += inv.TotalTaxableValue
		totals.TotalTax += inv.TotalTax
		totals.TotalBilled += inv.FinalTotal
		totals.Collected += inv.FinalTotal - inv.BalanceDue
		totals.Outstanding += inv.BalanceDue
	}

	result := make([]MonthlyTotals, 0, len(byMonth))
	for _, totals := range byMonth {
		result = append(result, *totals)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result, nil
}
