package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hearbill/internal/domain"
)

// MockNoteRepo is a mock implementation of port.NoteRepository.
type MockNoteRepo struct {
	mock.Mock
}

func (m *MockNoteRepo) Create(ctx context.Context, note *domain.FinancialNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FinancialNote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialNote), args.Error(1)
}

func (m *MockNoteRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.FinancialNote, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialNote), args.Error(1)
}

func (m *MockNoteRepo) List(ctx context.Context, noteType domain.NoteType, offset, limit int) ([]domain.FinancialNote, int, error) {
	args := m.Called(ctx, noteType, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.FinancialNote), args.Int(1), args.Error(2)
}

func (m *MockNoteRepo) ListDocumentIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
