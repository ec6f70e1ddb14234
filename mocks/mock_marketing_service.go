package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hearbill/internal/service"
)

// MockMarketingService is a mock implementation of service.MarketingService.
type MockMarketingService struct {
	mock.Mock
}

func (m *MockMarketingService) PromoCopy(ctx context.Context, input service.PromoCopyInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockMarketingService) StockTrendSummary(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
