package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hearbill/internal/domain"
)

// MockLeadRepo is a mock implementation of port.LeadRepository.
type MockLeadRepo struct {
	mock.Mock
}

func (m *MockLeadRepo) Create(ctx context.Context, lead *domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadRepo) List(ctx context.Context, status domain.LeadStatus, offset, limit int) ([]domain.Lead, int, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Lead), args.Int(1), args.Error(2)
}

func (m *MockLeadRepo) Update(ctx context.Context, lead *domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepo) AddFollowUp(ctx context.Context, followUp *domain.FollowUp) error {
	args := m.Called(ctx, followUp)
	return args.Error(0)
}

func (m *MockLeadRepo) ListFollowUps(ctx context.Context, leadID uuid.UUID) ([]domain.FollowUp, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FollowUp), args.Error(1)
}
