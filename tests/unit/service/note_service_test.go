package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hearbill/internal/domain"
	"hearbill/internal/service"
	"hearbill/mocks"
)

func newNoteService() (service.NoteService, *mocks.MockNoteRepo, *mocks.MockInvoiceRepo, *mocks.MockCounterRepo) {
	noteRepo := new(mocks.MockNoteRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	counterRepo := new(mocks.MockCounterRepo)
	svc := service.NewNoteService(noteRepo, invoiceRepo, counterRepo, testClinic)
	return svc, noteRepo, invoiceRepo, counterRepo
}

func TestNoteService_Create_CreditNote(t *testing.T) {
	svc, noteRepo, invoiceRepo, counterRepo := newNoteService()

	invoiceID := uuid.New()
	invoiceRepo.On("GetByID", mock.Anything, invoiceID).Return(&domain.Invoice{
		ID:          invoiceID,
		DocumentID:  "INV-25-26-004",
		PatientName: "Asha Kulkarni",
		FinalTotal:  29500,
	}, nil)
	counterRepo.On("Next", mock.Anything, "CRN-25-26-").Return(1, nil)
	noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FinancialNote")).Return(nil)

	note, err := svc.Create(context.Background(), service.CreateNoteInput{
		Type:      domain.NoteCredit,
		InvoiceID: invoiceID,
		Amount:    2500,
		Reason:    "billing adjustment",
		Date:      time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Equal(t, "CRN-25-26-001", note.DocumentID)
	assert.Equal(t, "INV-25-26-004", note.InvoiceDoc)
	assert.Equal(t, "Asha Kulkarni", note.PatientName)
	noteRepo.AssertExpectations(t)
}

func TestNoteService_Create_DebitNoteUsesOwnSeries(t *testing.T) {
	svc, noteRepo, invoiceRepo, counterRepo := newNoteService()

	invoiceID := uuid.New()
	invoiceRepo.On("GetByID", mock.Anything, invoiceID).Return(&domain.Invoice{
		ID:         invoiceID,
		FinalTotal: 29500,
	}, nil)
	counterRepo.On("Next", mock.Anything, "DBN-25-26-").Return(12, nil)
	noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FinancialNote")).Return(nil)

	note, err := svc.Create(context.Background(), service.CreateNoteInput{
		Type:      domain.NoteDebit,
		InvoiceID: invoiceID,
		Amount:    800,
		Reason:    "undercharged accessory",
		Date:      time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Equal(t, "DBN-25-26-012", note.DocumentID)
}

func TestNoteService_Create_CreditCappedByInvoiceTotal(t *testing.T) {
	svc, noteRepo, invoiceRepo, counterRepo := newNoteService()

	invoiceID := uuid.New()
	invoiceRepo.On("GetByID", mock.Anything, invoiceID).Return(&domain.Invoice{
		ID:         invoiceID,
		FinalTotal: 10000,
	}, nil)

	note, err := svc.Create(context.Background(), service.CreateNoteInput{
		Type:      domain.NoteCredit,
		InvoiceID: invoiceID,
		Amount:    10000.01,
		Reason:    "full refund plus",
	})

	assert.Nil(t, note)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	counterRepo.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
	noteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNoteService_Create_DebitNotCapped(t *testing.T) {
	svc, noteRepo, invoiceRepo, counterRepo := newNoteService()

	invoiceID := uuid.New()
	invoiceRepo.On("GetByID", mock.Anything, invoiceID).Return(&domain.Invoice{
		ID:         invoiceID,
		FinalTotal: 10000,
	}, nil)
	counterRepo.On("Next", mock.Anything, mock.AnythingOfType("string")).Return(1, nil)
	noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FinancialNote")).Return(nil)

	note, err := svc.Create(context.Background(), service.CreateNoteInput{
		Type:      domain.NoteDebit,
		InvoiceID: invoiceID,
		Amount:    15000,
		Reason:    "price revision",
	})

	assert.NoError(t, err)
	assert.Equal(t, 15000.0, note.Amount)
}

func TestNoteService_Create_RejectsNonPositiveAmount(t *testing.T) {
	svc, _, invoiceRepo, _ := newNoteService()

	note, err := svc.Create(context.Background(), service.CreateNoteInput{
		Type:      domain.NoteCredit,
		InvoiceID: uuid.New(),
		Amount:    0,
		Reason:    "noop",
	})

	assert.Nil(t, note)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	invoiceRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestNoteService_Create_RejectsUnknownType(t *testing.T) {
	svc, _, _, _ := newNoteService()

	note, err := svc.Create(context.Background(), service.CreateNoteInput{
		Type:      domain.NoteType("refund"),
		InvoiceID: uuid.New(),
		Amount:    100,
		Reason:    "x",
	})

	assert.Nil(t, note)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
