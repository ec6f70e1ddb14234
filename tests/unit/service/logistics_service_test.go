package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hearbill/internal/domain"
	"hearbill/internal/service"
	"hearbill/mocks"
)

func newLogisticsService() (service.LogisticsService, *mocks.MockTransferRepo, *mocks.MockDeviceRepo) {
	transferRepo := new(mocks.MockTransferRepo)
	deviceRepo := new(mocks.MockDeviceRepo)
	svc := service.NewLogisticsService(transferRepo, deviceRepo)
	return svc, transferRepo, deviceRepo
}

func TestLogisticsService_Dispatch_MovesDeviceInTransit(t *testing.T) {
	svc, transferRepo, deviceRepo := newLogisticsService()

	deviceID := uuid.New()
	deviceRepo.On("GetByID", mock.Anything, deviceID).Return(&domain.Device{
		ID:       deviceID,
		Location: "Pune",
		Status:   domain.DeviceAvailable,
	}, nil)
	deviceRepo.On("UpdateStatus", mock.Anything, deviceID, domain.DeviceAvailable, domain.DeviceInTransit).Return(nil)
	transferRepo.On("Create", mock.Anything, mock.MatchedBy(func(tr *domain.Transfer) bool {
		return tr.FromLocation == "Pune" && tr.ToLocation == "Mumbai" && tr.Status == domain.TransferDispatched
	})).Return(nil)

	transfer, err := svc.Dispatch(context.Background(), service.DispatchInput{
		DeviceID:   deviceID,
		ToLocation: "Mumbai",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.TransferDispatched, transfer.Status)
	assert.False(t, transfer.DispatchedAt.IsZero())
	deviceRepo.AssertExpectations(t)
}

func TestLogisticsService_Dispatch_SameLocationRejected(t *testing.T) {
	svc, transferRepo, deviceRepo := newLogisticsService()

	deviceID := uuid.New()
	deviceRepo.On("GetByID", mock.Anything, deviceID).Return(&domain.Device{
		ID:       deviceID,
		Location: "Pune",
	}, nil)

	transfer, err := svc.Dispatch(context.Background(), service.DispatchInput{
		DeviceID:   deviceID,
		ToLocation: "Pune",
	})

	assert.Nil(t, transfer)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	transferRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogisticsService_Dispatch_BookedDeviceRejected(t *testing.T) {
	svc, transferRepo, deviceRepo := newLogisticsService()

	deviceID := uuid.New()
	deviceRepo.On("GetByID", mock.Anything, deviceID).Return(&domain.Device{
		ID:       deviceID,
		Location: "Pune",
		Status:   domain.DeviceBooked,
	}, nil)
	deviceRepo.On("UpdateStatus", mock.Anything, deviceID, domain.DeviceAvailable, domain.DeviceInTransit).
		Return(domain.ErrDeviceUnavailable)

	transfer, err := svc.Dispatch(context.Background(), service.DispatchInput{
		DeviceID:   deviceID,
		ToLocation: "Mumbai",
	})

	assert.Nil(t, transfer)
	assert.ErrorIs(t, err, domain.ErrDeviceUnavailable)
	transferRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogisticsService_Dispatch_PersistFailureReverts(t *testing.T) {
	svc, transferRepo, deviceRepo := newLogisticsService()

	deviceID := uuid.New()
	deviceRepo.On("GetByID", mock.Anything, deviceID).Return(&domain.Device{
		ID:       deviceID,
		Location: "Pune",
		Status:   domain.DeviceAvailable,
	}, nil)
	deviceRepo.On("UpdateStatus", mock.Anything, deviceID, domain.DeviceAvailable, domain.DeviceInTransit).Return(nil)
	transferRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Transfer")).Return(errors.New("insert failed"))
	deviceRepo.On("UpdateStatus", mock.Anything, deviceID, domain.DeviceInTransit, domain.DeviceAvailable).Return(nil)

	transfer, err := svc.Dispatch(context.Background(), service.DispatchInput{
		DeviceID:   deviceID,
		ToLocation: "Mumbai",
	})

	assert.Nil(t, transfer)
	assert.Error(t, err)
	deviceRepo.AssertCalled(t, "UpdateStatus", mock.Anything, deviceID, domain.DeviceInTransit, domain.DeviceAvailable)
}

func TestLogisticsService_Receive_UpdatesLocation(t *testing.T) {
	svc, transferRepo, deviceRepo := newLogisticsService()

	transferID := uuid.New()
	deviceID := uuid.New()
	transferRepo.On("GetByID", mock.Anything, transferID).Return(&domain.Transfer{
		ID:         transferID,
		DeviceID:   deviceID,
		ToLocation: "Mumbai",
		Status:     domain.TransferDispatched,
	}, nil)
	transferRepo.On("Update", mock.Anything, mock.MatchedBy(func(tr *domain.Transfer) bool {
		return tr.Status == domain.TransferReceived && tr.ReceivedAt != nil
	})).Return(nil)
	deviceRepo.On("UpdateStatus", mock.Anything, deviceID, domain.DeviceInTransit, domain.DeviceAvailable).Return(nil)
	deviceRepo.On("SetLocation", mock.Anything, deviceID, "Mumbai").Return(nil)

	transfer, err := svc.Receive(context.Background(), transferID)

	assert.NoError(t, err)
	assert.Equal(t, domain.TransferReceived, transfer.Status)
	deviceRepo.AssertExpectations(t)
}

func TestLogisticsService_Receive_NotDispatched(t *testing.T) {
	svc, transferRepo, deviceRepo := newLogisticsService()

	transferID := uuid.New()
	transferRepo.On("GetByID", mock.Anything, transferID).Return(&domain.Transfer{
		ID:     transferID,
		Status: domain.TransferReceived,
	}, nil)

	transfer, err := svc.Receive(context.Background(), transferID)

	assert.Nil(t, transfer)
	assert.ErrorIs(t, err, domain.ErrDeviceNotInTransit)
	deviceRepo.AssertNotCalled(t, "SetLocation", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogisticsService_Cancel_ReturnsDeviceToOrigin(t *testing.T) {
	svc, transferRepo, deviceRepo := newLogisticsService()

	transferID := uuid.New()
	deviceID := uuid.New()
	transferRepo.On("GetByID", mock.Anything, transferID).Return(&domain.Transfer{
		ID:       transferID,
		DeviceID: deviceID,
		Status:   domain.TransferDispatched,
	}, nil)
	transferRepo.On("Update", mock.Anything, mock.MatchedBy(func(tr *domain.Transfer) bool {
		return tr.Status == domain.TransferCancelled
	})).Return(nil)
	deviceRepo.On("UpdateStatus", mock.Anything, deviceID, domain.DeviceInTransit, domain.DeviceAvailable).Return(nil)

	transfer, err := svc.Cancel(context.Background(), transferID)

	assert.NoError(t, err)
	assert.Equal(t, domain.TransferCancelled, transfer.Status)
	// Location stays the origin; only a receive moves it.
	deviceRepo.AssertNotCalled(t, "SetLocation", mock.Anything, mock.Anything, mock.Anything)
}
