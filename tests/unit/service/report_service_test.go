package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hearbill/internal/csvexport"
	"hearbill/internal/domain"
	"hearbill/internal/service"
	"hearbill/mocks"
)

func newReportService() (service.ReportService, *mocks.MockInvoiceRepo, *mocks.MockNoteRepo) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	noteRepo := new(mocks.MockNoteRepo)
	svc := service.NewReportService(invoiceRepo, noteRepo)
	return svc, invoiceRepo, noteRepo
}

func TestReportService_SalesRegisterCSV(t *testing.T) {
	svc, invoiceRepo, _ := newReportService()

	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	invoiceRepo.On("ListBetween", mock.Anything, from, to).Return([]domain.Invoice{
		{DocumentID: "INV-25-26-001", Date: from, PatientName: "Asha Kulkarni", FinalTotal: 29500},
		{DocumentID: "INV-25-26-002", Date: from.AddDate(0, 0, 10), PatientName: "Ramesh Iyer", FinalTotal: 59000},
	}, nil)

	var buf bytes.Buffer
	err := svc.SalesRegisterCSV(context.Background(), from, to, &buf)
	require.NoError(t, err)

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, csvexport.BOM))

	records, err := csv.NewReader(bytes.NewReader(raw[len(csvexport.BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "INV-25-26-001", records[1][0])
	assert.Equal(t, "INV-25-26-002", records[2][0])
}

func TestReportService_MonthlySummary(t *testing.T) {
	svc, invoiceRepo, _ := newReportService()

	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC)
	invoiceRepo.On("ListBetween", mock.Anything, from, to).Return([]domain.Invoice{
		{
			Date:              time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
			TotalTaxableValue: 25000, TotalTax: 4500, FinalTotal: 29500, BalanceDue: 0,
		},
		{
			Date:              time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC),
			TotalTaxableValue: 50000, TotalTax: 9000, FinalTotal: 59000, BalanceDue: 59000,
		},
		{
			Date:              time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC),
			TotalTaxableValue: 10000, TotalTax: 1800, FinalTotal: 11800, BalanceDue: 5800,
		},
	}, nil)

	summary, err := svc.MonthlySummary(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, summary, 2)

	june := summary[0]
	assert.Equal(t, "2025-06", june.Month)
	assert.Equal(t, 2, june.InvoiceCount)
	assert.InDelta(t, 75000, june.TaxableValue, 1e-9)
	assert.InDelta(t, 13500, june.TotalTax, 1e-9)
	assert.InDelta(t, 88500, june.TotalBilled, 1e-9)
	assert.InDelta(t, 29500, june.Collected, 1e-9)
	assert.InDelta(t, 59000, june.Outstanding, 1e-9)

	july := summary[1]
	assert.Equal(t, "2025-07", july.Month)
	assert.Equal(t, 1, july.InvoiceCount)
	assert.InDelta(t, 6000, july.Collected, 1e-9)
	assert.InDelta(t, 5800, july.Outstanding, 1e-9)
}

func TestReportService_SalesWorkbook_FiltersNotesToWindow(t *testing.T) {
	svc, invoiceRepo, noteRepo := newReportService()

	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	invoiceRepo.On("ListBetween", mock.Anything, from, to).Return([]domain.Invoice{
		{DocumentID: "INV-25-26-001", Date: from},
	}, nil)
	noteRepo.On("List", mock.Anything, domain.NoteCredit, 0, 10000).Return([]domain.FinancialNote{
		{DocumentID: "CRN-25-26-001", Date: from.AddDate(0, 0, 5)},
		{DocumentID: "CRN-25-26-002", Date: from.AddDate(0, 2, 0)},
	}, 2, nil)
	noteRepo.On("List", mock.Anything, domain.NoteDebit, 0, 10000).Return([]domain.FinancialNote{}, 0, nil)

	f, err := svc.SalesWorkbook(context.Background(), from, to)
	require.NoError(t, err)
	require.NotNil(t, f)

	rows, err := f.GetRows("Credit-Debit Notes")
	require.NoError(t, err)
	// Header plus the one note inside the window.
	require.Len(t, rows, 2)
	assert.Equal(t, "CRN-25-26-001", rows[1][0])
}
