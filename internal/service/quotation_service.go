package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hearbill/internal/billing"
	"hearbill/internal/config"
	"hearbill/internal/domain"
	"hearbill/internal/port"
)

// defaultQuotationValidity is applied when no expiry is supplied.
const defaultQuotationValidity = 30 * 24 * time.Hour

// CreateQuotationInput is the DTO for issuing a quotation.
type CreateQuotationInput struct {
	PatientID     uuid.UUID            `json:"patient_id" binding:"required"`
	Date          time.Time            `json:"date"`
	ValidUntil    time.Time            `json:"valid_until"`
	Items         []InvoiceItemInput   `json:"items" binding:"required,min=1"`
	DiscountType  domain.DiscountType  `json:"discount_type"`
	DiscountValue float64              `json:"discount_value"`
	PlaceOfSupply domain.PlaceOfSupply `json:"place_of_supply"`
	CreatedBy     uuid.UUID            `json:"-"`
}

// QuotationService defines the quotation contract. A quotation runs the same
// computation as an invoice but holds no stock and owes no tax until it is
// converted.
type QuotationService interface {
	Create(ctx context.Context, input CreateQuotationInput) (*domain.Quotation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error)
	List(ctx context.Context, patientID *uuid.UUID, offset, limit int) ([]domain.Quotation, int, error)
	Convert(ctx context.Context, quotationID, convertedBy uuid.UUID) (*domain.Invoice, error)
}

type quotationService struct {
	quotationRepo port.QuotationRepository
	patientRepo   port.PatientRepository
	deviceRepo    port.DeviceRepository
	counterRepo   port.DocumentCounterRepository
	invoices      InvoiceService
	clinic        config.ClinicConfig
}

// NewQuotationService creates a new QuotationService implementation.
func NewQuotationService(
	quotationRepo port.QuotationRepository,
	patientRepo port.PatientRepository,
	deviceRepo port.DeviceRepository,
	counterRepo port.DocumentCounterRepository,
	invoices InvoiceService,
	clinic config.ClinicConfig,
) QuotationService {
	return &quotationService{
		quotationRepo: quotationRepo,
		patientRepo:   patientRepo,
		deviceRepo:    deviceRepo,
		counterRepo:   counterRepo,
		invoices:      invoices,
		clinic:        clinic,
	}
}

func (s *quotationService) Create(ctx context.Context, input CreateQuotationInput) (*domain.Quotation, error) {
	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	validUntil := input.ValidUntil
	if validUntil.IsZero() {
		validUntil = date.Add(defaultQuotationValidity)
	}
	discountType := input.DiscountType
	if discountType == "" {
		discountType = domain.DiscountFlat
	}
	pos := placeOfSupply(s.clinic, patient, input.PlaceOfSupply)

	devices := make([]*domain.Device, 0, len(input.Items))
	lines := make([]billing.LineInput, 0, len(input.Items))
	for _, it := range input.Items {
		device, err := s.deviceRepo.GetByID(ctx, it.DeviceID)
		if err != nil {
			return nil, err
		}
		devices = append(devices, device)
		lines = append(lines, billing.LineInput{
			UnitPrice:      device.UnitPrice,
			Quantity:       it.Quantity,
			GSTRatePercent: device.GSTRatePercent,
		})
	}

	comp, err := billing.ComputeInvoice(lines, discountType, input.DiscountValue, pos)
	if err != nil {
		return nil, err
	}

	prefix := docPrefix(s.clinic, domain.PrefixQuotation, date)
	seq, err := s.counterRepo.Next(ctx, prefix)
	if err != nil {
		return nil, err
	}

	quotation := &domain.Quotation{
		ID:                uuid.New(),
		DocumentID:        billing.FormatDocumentID(prefix, seq),
		PatientID:         patient.ID,
		PatientName:       patient.FullName,
		Date:              date,
		ValidUntil:        validUntil,
		DiscountType:      discountType,
		DiscountValue:     input.DiscountValue,
		PlaceOfSupply:     pos,
		Subtotal:          comp.Subtotal,
		TotalDiscount:     comp.TotalDiscount,
		TotalTaxableValue: comp.TotalTaxableValue,
		TotalCGST:         comp.TotalCGST,
		TotalSGST:         comp.TotalSGST,
		TotalIGST:         comp.TotalIGST,
		TotalTax:          comp.TotalTax,
		FinalTotal:        comp.FinalTotal,
		CreatedBy:         input.CreatedBy,
	}
	for i, device := range devices {
		line := comp.Items[i]
		quotation.Items = append(quotation.Items, domain.InvoiceItem{
			ID:             uuid.New(),
			DeviceID:       device.ID,
			Brand:          device.Brand,
			Model:          device.Model,
			SerialNumber:   device.SerialNumber,
			HSNCode:        device.HSNCode,
			UnitPrice:      line.UnitPrice,
			Quantity:       line.Quantity,
			GSTRatePercent: line.GSTRatePercent,
			ItemDiscount:   line.ItemDiscount,
			TaxableValue:   line.TaxableValue,
			CGSTAmount:     line.CGSTAmount,
			SGSTAmount:     line.SGSTAmount,
			IGSTAmount:     line.IGSTAmount,
			LineTotal:      line.LineTotal,
		})
	}

	if err := s.quotationRepo.Create(ctx, quotation); err != nil {
		return nil, err
	}
	return quotation, nil
}

func (s *quotationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	return s.quotationRepo.GetByID(ctx, id)
}

func (s *quotationService) List(ctx context.Context, patientID *uuid.UUID, offset, limit int) ([]domain.Quotation, int, error) {
	return s.quotationRepo.List(ctx, patientID, offset, limit)
}

// Convert issues a real invoice from a live quotation. The invoice is
// recomputed against current inventory prices and stock; the quotation is a
// sales document, not a price lock.
func (s *quotationService) Convert(ctx context.Context, quotationID, convertedBy uuid.UUID) (*domain.Invoice, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if quotation.ConvertedInvoice != nil {
		return nil, domain.ErrQuotationConverted
	}
	if time.Now().After(quotation.ValidUntil) {
		return nil, domain.ErrQuotationExpired
	}

	items := make([]InvoiceItemInput, 0, len(quotation.Items))
	for _, it := range quotation.Items {
		items = append(items, InvoiceItemInput{DeviceID: it.DeviceID, Quantity: it.Quantity})
	}

	invoice, err := s.invoices.Create(ctx, CreateInvoiceInput{
		PatientID:     quotation.PatientID,
		Items:         items,
		DiscountType:  quotation.DiscountType,
		DiscountValue: quotation.DiscountValue,
		PlaceOfSupply: quotation.PlaceOfSupply,
		CreatedBy:     convertedBy,
	})
	if err != nil {
		return nil, err
	}

	if err := s.quotationRepo.MarkConverted(ctx, quotation.ID, invoice.ID); err != nil {
		return nil, err
	}
	return invoice, nil
}
