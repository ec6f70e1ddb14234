package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"hearbill/internal/domain"
	"hearbill/internal/port"
)

// DispatchInput is the DTO for dispatching a device to another location.
type DispatchInput struct {
	DeviceID   uuid.UUID `json:"device_id" binding:"required"`
	ToLocation string    `json:"to_location" binding:"required"`
	CreatedBy  uuid.UUID `json:"-"`
}

// LogisticsService moves devices between clinic locations. A dispatched
// device is in transit and cannot be sold or booked until received.
type LogisticsService interface {
	Dispatch(ctx context.Context, input DispatchInput) (*domain.Transfer, error)
	Receive(ctx context.Context, transferID uuid.UUID) (*domain.Transfer, error)
	Cancel(ctx context.Context, transferID uuid.UUID) (*domain.Transfer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transfer, error)
	List(ctx context.Context, status domain.TransferStatus, offset, limit int) ([]domain.Transfer, int, error)
}

type logisticsService struct {
	transferRepo port.TransferRepository
	deviceRepo   port.DeviceRepository
}

// NewLogisticsService creates a new LogisticsService implementation.
func NewLogisticsService(transferRepo port.TransferRepository, deviceRepo port.DeviceRepository) LogisticsService {
	return &logisticsService{
		transferRepo: transferRepo,
		deviceRepo:   deviceRepo,
	}
}

func (s *logisticsService) Dispatch(ctx context.Context, input DispatchInput) (*domain.Transfer, error) {
	device, err := s.deviceRepo.GetByID(ctx, input.DeviceID)
	if err != nil {
		return nil, err
	}
	if device.Location == input.ToLocation {
		return nil, fmt.Errorf("%w: device is already at %s", domain.ErrInvalidArgument, input.ToLocation)
	}

	if err := s.deviceRepo.UpdateStatus(ctx, device.ID, domain.DeviceAvailable, domain.DeviceInTransit); err != nil {
		return nil, err
	}

	transfer := &domain.Transfer{
		DeviceID:     device.ID,
		FromLocation: device.Location,
		ToLocation:   input.ToLocation,
		Status:       domain.TransferDispatched,
		DispatchedAt: time.Now().UTC(),
		CreatedBy:    input.CreatedBy,
	}
	if err := s.transferRepo.Create(ctx, transfer); err != nil {
		if rerr := s.deviceRepo.UpdateStatus(ctx, device.ID, domain.DeviceInTransit, domain.DeviceAvailable); rerr != nil {
			log.Printf("logisticsService.Dispatch: reverting device %s: %v", device.ID, rerr)
		}
		return nil, err
	}
	return transfer, nil
}

func (s *logisticsService) Receive(ctx context.Context, transferID uuid.UUID) (*domain.Transfer, error) {
	transfer, err := s.transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.Status != domain.TransferDispatched {
		return nil, domain.ErrDeviceNotInTransit
	}

	now := time.Now().UTC()
	transfer.Status = domain.TransferReceived
	transfer.ReceivedAt = &now
	if err := s.transferRepo.Update(ctx, transfer); err != nil {
		return nil, err
	}

	if err := s.deviceRepo.UpdateStatus(ctx, transfer.DeviceID, domain.DeviceInTransit, domain.DeviceAvailable); err != nil {
		return nil, err
	}
	if err := s.deviceRepo.SetLocation(ctx, transfer.DeviceID, transfer.ToLocation); err != nil {
		return nil, err
	}
	return transfer, nil
}

// Cancel aborts a dispatched transfer and returns the device to its origin.
func (s *logisticsService) Cancel(ctx context.Context, transferID uuid.UUID) (*domain.Transfer, error) {
	transfer, err := s.transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.Status != domain.TransferDispatched {
		return nil, domain.ErrDeviceNotInTransit
	}

	transfer.Status = domain.TransferCancelled
	if err := s.transferRepo.Update(ctx, transfer); err != nil {
		return nil, err
	}
	if err := s.deviceRepo.UpdateStatus(ctx, transfer.DeviceID, domain.DeviceInTransit, domain.DeviceAvailable); err != nil {
		return nil, err
	}
	return transfer, nil
}

func (s *logisticsService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	return s.transferRepo.GetByID(ctx, id)
}

func (s *logisticsService) List(ctx context.Context, status domain.TransferStatus, offset, limit int) ([]domain.Transfer, int, error) {
	return s.transferRepo.List(ctx, status, offset, limit)
}
