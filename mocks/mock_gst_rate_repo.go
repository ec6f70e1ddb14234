package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hearbill/internal/domain"
)

// MockGSTRateRepo is a mock implementation of port.GSTRateRepository.
type MockGSTRateRepo struct {
	mock.Mock
}

func (m *MockGSTRateRepo) GetByHSN(ctx context.Context, hsnCode string) (*domain.GSTRate, error) {
	args := m.Called(ctx, hsnCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GSTRate), args.Error(1)
}

func (m *MockGSTRateRepo) Search(ctx context.Context, query string, limit int) ([]domain.GSTRate, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GSTRate), args.Error(1)
}
