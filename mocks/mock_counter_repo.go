package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCounterRepo is a mock implementation of port.DocumentCounterRepository.
type MockCounterRepo struct {
	mock.Mock
}

func (m *MockCounterRepo) Next(ctx context.Context, prefix string) (int, error) {
	args := m.Called(ctx, prefix)
	return args.Int(0), args.Error(1)
}

func (m *MockCounterRepo) Seed(ctx context.Context, prefix string, seq int) error {
	args := m.Called(ctx, prefix, seq)
	return args.Error(0)
}
