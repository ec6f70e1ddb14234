package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hearbill/internal/domain"
)

// MockDeviceRepo is a mock implementation of port.DeviceRepository.
type MockDeviceRepo struct {
	mock.Mock
}

func (m *MockDeviceRepo) Create(ctx context.Context, device *domain.Device) error {
	args := m.Called(ctx, device)
	return args.Error(0)
}

func (m *MockDeviceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Device, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Device), args.Error(1)
}

func (m *MockDeviceRepo) GetBySerial(ctx context.Context, serial string) (*domain.Device, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Device), args.Error(1)
}

func (m *MockDeviceRepo) List(ctx context.Context, status domain.DeviceStatus, location string, offset, limit int) ([]domain.Device, int, error) {
	args := m.Called(ctx, status, location, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Device), args.Int(1), args.Error(2)
}

func (m *MockDeviceRepo) Update(ctx context.Context, device *domain.Device) error {
	args := m.Called(ctx, device)
	return args.Error(0)
}

func (m *MockDeviceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.DeviceStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockDeviceRepo) SetLocation(ctx context.Context, id uuid.UUID, location string) error {
	args := m.Called(ctx, id, location)
	return args.Error(0)
}

func (m *MockDeviceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeviceRepo) CountByStatus(ctx context.Context) (map[domain.DeviceStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.DeviceStatus]int), args.Error(1)
}
