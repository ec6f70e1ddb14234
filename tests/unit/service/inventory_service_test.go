package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hearbill/internal/domain"
	"hearbill/internal/service"
	"hearbill/mocks"
)

func newInventoryService() (service.InventoryService, *mocks.MockDeviceRepo, *mocks.MockGSTRateRepo) {
	deviceRepo := new(mocks.MockDeviceRepo)
	rateRepo := new(mocks.MockGSTRateRepo)
	svc := service.NewInventoryService(deviceRepo, rateRepo)
	return svc, deviceRepo, rateRepo
}

func TestInventoryService_Create_DefaultsRateFromHSNMaster(t *testing.T) {
	svc, deviceRepo, rateRepo := newInventoryService()

	rateRepo.On("GetByHSN", mock.Anything, "902190").Return(&domain.GSTRate{
		HSNCode:     "902190",
		RatePercent: 18,
	}, nil)
	deviceRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.Device) bool {
		return d.GSTRatePercent == 18 && d.Status == domain.DeviceAvailable
	})).Return(nil)

	device, err := svc.Create(context.Background(), service.CreateDeviceInput{
		Brand:        "Signia",
		Model:        "Pure 312 AX",
		SerialNumber: "SN-1001",
		HSNCode:      "902190",
		UnitPrice:    25000,
	})

	assert.NoError(t, err)
	assert.Equal(t, 18.0, device.GSTRatePercent)
	deviceRepo.AssertExpectations(t)
}

func TestInventoryService_Create_ExplicitRateWins(t *testing.T) {
	svc, deviceRepo, rateRepo := newInventoryService()

	deviceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Device")).Return(nil)

	device, err := svc.Create(context.Background(), service.CreateDeviceInput{
		Brand:          "Phonak",
		Model:          "Audeo L90",
		SerialNumber:   "SN-2002",
		HSNCode:        "902190",
		GSTRatePercent: 12,
		UnitPrice:      180000,
	})

	assert.NoError(t, err)
	assert.Equal(t, 12.0, device.GSTRatePercent)
	rateRepo.AssertNotCalled(t, "GetByHSN", mock.Anything, mock.Anything)
}

func TestInventoryService_Create_UnknownHSNLeavesRateZero(t *testing.T) {
	svc, deviceRepo, rateRepo := newInventoryService()

	rateRepo.On("GetByHSN", mock.Anything, "999999").Return(nil, domain.ErrNotFound)
	deviceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Device")).Return(nil)

	device, err := svc.Create(context.Background(), service.CreateDeviceInput{
		Brand:        "Widex",
		Model:        "Moment 110",
		SerialNumber: "SN-3003",
		HSNCode:      "999999",
		UnitPrice:    55000,
	})

	assert.NoError(t, err)
	assert.Equal(t, 0.0, device.GSTRatePercent)
}

func TestInventoryService_Create_NegativePriceRejected(t *testing.T) {
	svc, deviceRepo, _ := newInventoryService()

	device, err := svc.Create(context.Background(), service.CreateDeviceInput{
		Brand:        "Signia",
		Model:        "Pure 312 AX",
		SerialNumber: "SN-1001",
		UnitPrice:    -1,
	})

	assert.Nil(t, device)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	deviceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInventoryService_Update_NegativeRateRejected(t *testing.T) {
	svc, deviceRepo, _ := newInventoryService()

	deviceID := uuid.New()
	deviceRepo.On("GetByID", mock.Anything, deviceID).Return(&domain.Device{ID: deviceID}, nil)

	rate := -5.0
	device, err := svc.Update(context.Background(), deviceID, service.UpdateDeviceInput{GSTRatePercent: &rate})

	assert.Nil(t, device)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	deviceRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestInventoryService_Delete_SoldDeviceKept(t *testing.T) {
	svc, deviceRepo, _ := newInventoryService()

	deviceID := uuid.New()
	deviceRepo.On("GetByID", mock.Anything, deviceID).Return(&domain.Device{
		ID:     deviceID,
		Status: domain.DeviceSold,
	}, nil)

	err := svc.Delete(context.Background(), deviceID)

	assert.ErrorIs(t, err, domain.ErrDeviceUnavailable)
	deviceRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestInventoryService_Delete_AvailableDevice(t *testing.T) {
	svc, deviceRepo, _ := newInventoryService()

	deviceID := uuid.New()
	deviceRepo.On("GetByID", mock.Anything, deviceID).Return(&domain.Device{
		ID:     deviceID,
		Status: domain.DeviceAvailable,
	}, nil)
	deviceRepo.On("Delete", mock.Anything, deviceID).Return(nil)

	err := svc.Delete(context.Background(), deviceID)

	assert.NoError(t, err)
	deviceRepo.AssertExpectations(t)
}

func TestInventoryService_Summary(t *testing.T) {
	svc, deviceRepo, _ := newInventoryService()

	deviceRepo.On("CountByStatus", mock.Anything).Return(map[domain.DeviceStatus]int{
		domain.DeviceAvailable: 12,
		domain.DeviceBooked:    3,
		domain.DeviceSold:      40,
	}, nil)

	summary, err := svc.Summary(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 12, summary.Available)
	assert.Equal(t, 3, summary.Booked)
	assert.Equal(t, 40, summary.Sold)
	assert.Equal(t, 0, summary.InTransit)
}
