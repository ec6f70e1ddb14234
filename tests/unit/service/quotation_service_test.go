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

func newQuotationService() (service.QuotationService, *mocks.MockQuotationRepo, *mocks.MockPatientRepo, *mocks.MockDeviceRepo, *mocks.MockCounterRepo, *mocks.MockInvoiceService) {
	quotationRepo := new(mocks.MockQuotationRepo)
	patientRepo := new(mocks.MockPatientRepo)
	deviceRepo := new(mocks.MockDeviceRepo)
	counterRepo := new(mocks.MockCounterRepo)
	invoices := new(mocks.MockInvoiceService)
	svc := service.NewQuotationService(quotationRepo, patientRepo, deviceRepo, counterRepo, invoices, testClinic)
	return svc, quotationRepo, patientRepo, deviceRepo, counterRepo, invoices
}

func TestQuotationService_Create_HoldsNoStock(t *testing.T) {
	svc, quotationRepo, patientRepo, deviceRepo, counterRepo, _ := newQuotationService()

	patientID := uuid.New()
	deviceID := uuid.New()
	patient := &domain.Patient{ID: patientID, FullName: "Asha Kulkarni", StateCode: "27"}
	device := &domain.Device{
		ID: deviceID, Brand: "Signia", Model: "Pure 312 AX", SerialNumber: "SN-1001",
		GSTRatePercent: 18, UnitPrice: 25000, Status: domain.DeviceAvailable,
	}

	patientRepo.On("GetByID", mock.Anything, patientID).Return(patient, nil)
	deviceRepo.On("GetByID", mock.Anything, deviceID).Return(device, nil)
	counterRepo.On("Next", mock.Anything, "QUO-25-26-").Return(3, nil)
	quotationRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Quotation")).Return(nil)

	quotation, err := svc.Create(context.Background(), service.CreateQuotationInput{
		PatientID: patientID,
		Date:      time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		Items:     []service.InvoiceItemInput{{DeviceID: deviceID}},
	})

	assert.NoError(t, err)
	assert.Equal(t, "QUO-25-26-003", quotation.DocumentID)
	assert.InDelta(t, 29500.0, quotation.FinalTotal, 1e-9)
	assert.Equal(t, quotation.Date.Add(30*24*time.Hour), quotation.ValidUntil)
	assert.Nil(t, quotation.ConvertedInvoice)
	// Quoting must never touch device status.
	deviceRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	quotationRepo.AssertExpectations(t)
}

func TestQuotationService_Convert_Success(t *testing.T) {
	svc, quotationRepo, _, _, _, invoices := newQuotationService()

	quotationID := uuid.New()
	patientID := uuid.New()
	deviceID := uuid.New()
	convertedBy := uuid.New()
	quotation := &domain.Quotation{
		ID:            quotationID,
		PatientID:     patientID,
		ValidUntil:    time.Now().Add(24 * time.Hour),
		DiscountType:  domain.DiscountFlat,
		PlaceOfSupply: domain.IntraState,
		Items:         []domain.InvoiceItem{{DeviceID: deviceID, Quantity: 1}},
	}
	invoice := &domain.Invoice{ID: uuid.New(), DocumentID: "INV-25-26-010"}

	quotationRepo.On("GetByID", mock.Anything, quotationID).Return(quotation, nil)
	invoices.On("Create", mock.Anything, mock.MatchedBy(func(input service.CreateInvoiceInput) bool {
		return input.PatientID == patientID &&
			len(input.Items) == 1 &&
			input.Items[0].DeviceID == deviceID &&
			input.CreatedBy == convertedBy
	})).Return(invoice, nil)
	quotationRepo.On("MarkConverted", mock.Anything, quotationID, invoice.ID).Return(nil)

	got, err := svc.Convert(context.Background(), quotationID, convertedBy)

	assert.NoError(t, err)
	assert.Equal(t, invoice, got)
	quotationRepo.AssertExpectations(t)
	invoices.AssertExpectations(t)
}

func TestQuotationService_Convert_Expired(t *testing.T) {
	svc, quotationRepo, _, _, _, invoices := newQuotationService()

	quotationID := uuid.New()
	quotationRepo.On("GetByID", mock.Anything, quotationID).Return(&domain.Quotation{
		ID:         quotationID,
		ValidUntil: time.Now().Add(-time.Hour),
	}, nil)

	got, err := svc.Convert(context.Background(), quotationID, uuid.New())

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrQuotationExpired)
	invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuotationService_Convert_AlreadyConverted(t *testing.T) {
	svc, quotationRepo, _, _, _, invoices := newQuotationService()

	quotationID := uuid.New()
	existingInvoice := uuid.New()
	quotationRepo.On("GetByID", mock.Anything, quotationID).Return(&domain.Quotation{
		ID:               quotationID,
		ValidUntil:       time.Now().Add(24 * time.Hour),
		ConvertedInvoice: &existingInvoice,
	}, nil)

	got, err := svc.Convert(context.Background(), quotationID, uuid.New())

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrQuotationConverted)
	invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuotationService_Convert_StockGoneFailsCleanly(t *testing.T) {
	svc, quotationRepo, _, _, _, invoices := newQuotationService()

	quotationID := uuid.New()
	quotation := &domain.Quotation{
		ID:            quotationID,
		PatientID:     uuid.New(),
		ValidUntil:    time.Now().Add(24 * time.Hour),
		DiscountType:  domain.DiscountFlat,
		PlaceOfSupply: domain.IntraState,
		Items:         []domain.InvoiceItem{{DeviceID: uuid.New(), Quantity: 1}},
	}

	quotationRepo.On("GetByID", mock.Anything, quotationID).Return(quotation, nil)
	invoices.On("Create", mock.Anything, mock.AnythingOfType("service.CreateInvoiceInput")).
		Return(nil, domain.ErrDeviceUnavailable)

	got, err := svc.Convert(context.Background(), quotationID, uuid.New())

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrDeviceUnavailable)
	quotationRepo.AssertNotCalled(t, "MarkConverted", mock.Anything, mock.Anything, mock.Anything)
}
