package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hearbill/internal/domain"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) List(ctx context.Context, patientID *uuid.UUID, status domain.PaymentStatus, offset, limit int) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, patientID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) ListDocumentIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockInvoiceRepo) AddPayment(ctx context.Context, payment *domain.PaymentRecord) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockInvoiceRepo) RemovePayment(ctx context.Context, invoiceID, paymentID uuid.UUID) error {
	args := m.Called(ctx, invoiceID, paymentID)
	return args.Error(0)
}

func (m *MockInvoiceRepo) UpdateLedger(ctx context.Context, invoiceID uuid.UUID, balanceDue float64, status domain.PaymentStatus) error {
	args := m.Called(ctx, invoiceID, balanceDue, status)
	return args.Error(0)
}
