package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hearbill/internal/port"
)

// MockCopywriter is a mock implementation of port.Copywriter.
type MockCopywriter struct {
	mock.Mock
}

func (m *MockCopywriter) PromoCopy(ctx context.Context, product, audience, tone string) (string, error) {
	args := m.Called(ctx, product, audience, tone)
	return args.String(0), args.Error(1)
}

func (m *MockCopywriter) StockTrendSummary(ctx context.Context, lines []port.StockLine) (string, error) {
	args := m.Called(ctx, lines)
	return args.String(0), args.Error(1)
}
