package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"hearbill/internal/billing"
	"hearbill/internal/config"
	"hearbill/internal/domain"
	"hearbill/internal/port"
)

// InvoiceItemInput selects a device for sale. Quantity defaults to 1;
// serialized hearing aids are almost always sold one per line.
type InvoiceItemInput struct {
	DeviceID uuid.UUID `json:"device_id" binding:"required"`
	Quantity float64   `json:"quantity"`
}

// CreateInvoiceInput is the DTO for issuing a tax invoice.
type CreateInvoiceInput struct {
	PatientID     uuid.UUID            `json:"patient_id" binding:"required"`
	Date          time.Time            `json:"date"`
	Items         []InvoiceItemInput   `json:"items" binding:"required,min=1"`
	DiscountType  domain.DiscountType  `json:"discount_type"`
	DiscountValue float64              `json:"discount_value"`
	PlaceOfSupply domain.PlaceOfSupply `json:"place_of_supply"`
	CreatedBy     uuid.UUID            `json:"-"`
}

// RecordPaymentInput is the DTO for appending a payment to an invoice.
type RecordPaymentInput struct {
	Date        time.Time            `json:"date"`
	Amount      float64              `json:"amount" binding:"required"`
	Method      domain.PaymentMethod `json:"method" binding:"required"`
	Note        string               `json:"note"`
	BankDetails string               `json:"bank_details"`
}

// InvoiceService defines the tax invoice contract.
type InvoiceService interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, patientID *uuid.UUID, status domain.PaymentStatus, offset, limit int) ([]domain.Invoice, int, error)
	AddPayment(ctx context.Context, invoiceID uuid.UUID, input RecordPaymentInput) (*domain.Invoice, error)
	RemovePayment(ctx context.Context, invoiceID, paymentID uuid.UUID) (*domain.Invoice, error)
}

type invoiceService struct {
	invoiceRepo port.InvoiceRepository
	patientRepo port.PatientRepository
	deviceRepo  port.DeviceRepository
	counterRepo port.DocumentCounterRepository
	email       port.EmailSender
	clinic      config.ClinicConfig
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	patientRepo port.PatientRepository,
	deviceRepo port.DeviceRepository,
	counterRepo port.DocumentCounterRepository,
	email port.EmailSender,
	clinic config.ClinicConfig,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		patientRepo: patientRepo,
		deviceRepo:  deviceRepo,
		counterRepo: counterRepo,
		email:       email,
		clinic:      clinic,
	}
}

// docPrefix builds the "<KIND>-<PERIOD>-" prefix for a document dated t,
// using financial-year or calendar-year periods per clinic configuration.
func docPrefix(clinic config.ClinicConfig, kind string, t time.Time) string {
	period := billing.CalendarPeriod(t)
	if clinic.FinancialYearNumbering {
		period = billing.FinancialYearPeriod(t)
	}
	return billing.DocumentPrefix(kind, period)
}

// placeOfSupply derives the supply type from the patient's state when the
// caller leaves it unset.
func placeOfSupply(clinic config.ClinicConfig, patient *domain.Patient, requested domain.PlaceOfSupply) domain.PlaceOfSupply {
	if requested != "" {
		return requested
	}
	if patient.StateCode != "" && patient.StateCode != clinic.StateCode {
		return domain.InterState
	}
	return domain.IntraState
}

func (s *invoiceService) Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error) {
	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
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

	// Take each device off the shelf before persisting. Booked units may be
	// sold through their booking; anything else must be available.
	sold := make([]*domain.Device, 0, len(devices))
	revert := func() {
		for _, d := range sold {
			if err := s.deviceRepo.UpdateStatus(ctx, d.ID, domain.DeviceSold, d.Status); err != nil {
				log.Printf("invoiceService.Create: reverting device %s to %s: %v", d.ID, d.Status, err)
			}
		}
	}
	for _, device := range devices {
		switch device.Status {
		case domain.DeviceAvailable, domain.DeviceBooked:
		default:
			revert()
			return nil, domain.ErrDeviceUnavailable
		}
		if err := s.deviceRepo.UpdateStatus(ctx, device.ID, device.Status, domain.DeviceSold); err != nil {
			revert()
			return nil, err
		}
		sold = append(sold, device)
	}

	prefix := docPrefix(s.clinic, domain.PrefixInvoice, date)
	seq, err := s.counterRepo.Next(ctx, prefix)
	if err != nil {
		revert()
		return nil, err
	}

	invoice := &domain.Invoice{
		ID:                uuid.New(),
		DocumentID:        billing.FormatDocumentID(prefix, seq),
		PatientID:         patient.ID,
		PatientName:       patient.FullName,
		Date:              date,
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
		BalanceDue:        comp.FinalTotal,
		PaymentStatus:     domain.PaymentStatusUnpaid,
		CreatedBy:         input.CreatedBy,
	}
	for i, device := range devices {
		line := comp.Items[i]
		invoice.Items = append(invoice.Items, domain.InvoiceItem{
			ID:             uuid.New(),
			InvoiceID:      invoice.ID,
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

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		revert()
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) List(ctx context.Context, patientID *uuid.UUID, status domain.PaymentStatus, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invoiceRepo.List(ctx, patientID, status, offset, limit)
}

func (s *invoiceService) AddPayment(ctx context.Context, invoiceID uuid.UUID, input RecordPaymentInput) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	payment := domain.PaymentRecord{
		ID:          uuid.New(),
		InvoiceID:   invoice.ID,
		Date:        date,
		Amount:      input.Amount,
		Method:      input.Method,
		Note:        input.Note,
		BankDetails: input.BankDetails,
	}

	state, err := billing.ApplyPayment(invoice.FinalTotal, invoice.Payments, payment)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.AddPayment(ctx, &payment); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.UpdateLedger(ctx, invoice.ID, state.BalanceDue, state.Status); err != nil {
		return nil, err
	}

	invoice.Payments = state.Payments
	invoice.BalanceDue = state.BalanceDue
	invoice.PaymentStatus = state.Status

	// Receipt delivery is best effort; a mail failure never fails the payment.
	if patient, perr := s.patientRepo.GetByID(ctx, invoice.PatientID); perr == nil && patient.Email != "" {
		if merr := s.email.SendPaymentReceipt(ctx, port.ReceiptEmail{
			ToEmail:     patient.Email,
			PatientName: patient.FullName,
			DocumentID:  invoice.DocumentID,
			Amount:      payment.Amount,
			BalanceDue:  state.BalanceDue,
		}); merr != nil {
			log.Printf("invoiceService.AddPayment: sending receipt for %s: %v", invoice.DocumentID, merr)
		}
	}

	return invoice, nil
}

func (s *invoiceService) RemovePayment(ctx context.Context, invoiceID, paymentID uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	state, err := billing.RemovePayment(invoice.FinalTotal, invoice.Payments, paymentID)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.RemovePayment(ctx, invoice.ID, paymentID); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.UpdateLedger(ctx, invoice.ID, state.BalanceDue, state.Status); err != nil {
		return nil, err
	}

	invoice.Payments = state.Payments
	invoice.BalanceDue = state.BalanceDue
	invoice.PaymentStatus = state.Status
	return invoice, nil
}
