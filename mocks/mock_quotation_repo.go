package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hearbill/internal/domain"
)

// MockQuotationRepo is a mock implementation of port.QuotationRepository.
type MockQuotationRepo struct {
	mock.Mock
}

func (m *MockQuotationRepo) Create(ctx context.Context, quotation *domain.Quotation) error {
	args := m.Called(ctx, quotation)
	return args.Error(0)
}

func (m *MockQuotationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quotation), args.Error(1)
}

func (m *MockQuotationRepo) List(ctx context.Context, patientID *uuid.UUID, offset, limit int) ([]domain.Quotation, int, error) {
	args := m.Called(ctx, patientID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Quotation), args.Int(1), args.Error(2)
}

func (m *MockQuotationRepo) ListDocumentIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockQuotationRepo) MarkConverted(ctx context.Context, quotationID, invoiceID uuid.UUID) error {
	args := m.Called(ctx, quotationID, invoiceID)
	return args.Error(0)
}
