package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"hearbill/internal/domain"
	"hearbill/internal/port"
)

// CreateDeviceInput is the DTO for registering a serialized device.
type CreateDeviceInput struct {
	Brand          string  `json:"brand" binding:"required"`
	Model          string  `json:"model" binding:"required"`
	SerialNumber   string  `json:"serial_number" binding:"required"`
	HSNCode        string  `json:"hsn_code"`
	GSTRatePercent float64 `json:"gst_rate_percent"`
	UnitPrice      float64 `json:"unit_price" binding:"required"`
	Location       string  `json:"location"`
}

// UpdateDeviceInput is the DTO for editing device master data. Status is not
// editable here; it only moves through sale, booking and transfer flows.
type UpdateDeviceInput struct {
	Brand          *string  `json:"brand"`
	Model          *string  `json:"model"`
	HSNCode        *string  `json:"hsn_code"`
	GSTRatePercent *float64 `json:"gst_rate_percent"`
	UnitPrice      *float64 `json:"unit_price"`
	Location       *string  `json:"location"`
}

// StockSummary aggregates inventory counts by lifecycle status.
type StockSummary struct {
	Available int `json:"available"`
	Booked    int `json:"booked"`
	Sold      int `json:"sold"`
	InTransit int `json:"in_transit"`
}

// InventoryService defines the device inventory contract.
type InventoryService interface {
	Create(ctx context.Context, input CreateDeviceInput) (*domain.Device, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Device, error)
	GetBySerial(ctx context.Context, serial string) (*domain.Device, error)
	List(ctx context.Context, status domain.DeviceStatus, location string, offset, limit int) ([]domain.Device, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateDeviceInput) (*domain.Device, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Summary(ctx context.Context) (*StockSummary, error)
}

type inventoryService struct {
	deviceRepo port.DeviceRepository
	rateRepo   port.GSTRateRepository
}

// NewInventoryService creates a new InventoryService implementation.
func NewInventoryService(deviceRepo port.DeviceRepository, rateRepo port.GSTRateRepository) InventoryService {
	return &inventoryService{
		deviceRepo: deviceRepo,
		rateRepo:   rateRepo,
	}
}

func (s *inventoryService) Create(ctx context.Context, input CreateDeviceInput) (*domain.Device, error) {
	if input.UnitPrice < 0 {
		return nil, fmt.Errorf("%w: unit price must not be negative", domain.ErrInvalidArgument)
	}
	if input.GSTRatePercent < 0 {
		return nil, fmt.Errorf("%w: GST rate must not be negative", domain.ErrInvalidArgument)
	}

	device := &domain.Device{
		Brand:          input.Brand,
		Model:          input.Model,
		SerialNumber:   input.SerialNumber,
		HSNCode:        input.HSNCode,
		GSTRatePercent: input.GSTRatePercent,
		UnitPrice:      input.UnitPrice,
		Location:       input.Location,
		Status:         domain.DeviceAvailable,
	}

	// Default the GST rate from the HSN rate master when the caller sets a
	// code but no rate.
	if device.HSNCode != "" && input.GSTRatePercent == 0 {
		rate, err := s.rateRepo.GetByHSN(ctx, device.HSNCode)
		if err == nil {
			device.GSTRatePercent = rate.RatePercent
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	if err := s.deviceRepo.Create(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

func (s *inventoryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Device, error) {
	return s.deviceRepo.GetByID(ctx, id)
}

func (s *inventoryService) GetBySerial(ctx context.Context, serial string) (*domain.Device, error) {
	return s.deviceRepo.GetBySerial(ctx, serial)
}

func (s *inventoryService) List(ctx context.Context, status domain.DeviceStatus, location string, offset, limit int) ([]domain.Device, int, error) {
	return s.deviceRepo.List(ctx, status, location, offset, limit)
}

func (s *inventoryService) Update(ctx context.Context, id uuid.UUID, input UpdateDeviceInput) (*domain.Device, error) {
	device, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Brand != nil {
		device.Brand = *input.Brand
	}
	if input.Model != nil {
		device.Model = *input.Model
	}
	if input.HSNCode != nil {
		device.HSNCode = *input.HSNCode
	}
	if input.GSTRatePercent != nil {
		if *input.GSTRatePercent < 0 {
			return nil, fmt.Errorf("%w: GST rate must not be negative", domain.ErrInvalidArgument)
		}
		device.GSTRatePercent = *input.GSTRatePercent
	}
	if input.UnitPrice != nil {
		if *input.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: unit price must not be negative", domain.ErrInvalidArgument)
		}
		device.UnitPrice = *input.UnitPrice
	}
	if input.Location != nil {
		device.Location = *input.Location
	}

	if err := s.deviceRepo.Update(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

func (s *inventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	device, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// Sold devices are referenced by invoice snapshots and stay on record.
	if device.Status == domain.DeviceSold {
		return domain.ErrDeviceUnavailable
	}
	return s.deviceRepo.Delete(ctx, id)
}

func (s *inventoryService) Summary(ctx context.Context) (*StockSummary, error) {
	counts, err := s.deviceRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &StockSummary{
		Available: counts[domain.DeviceAvailable],
		Booked:    counts[domain.DeviceBooked],
		Sold:      counts[domain.DeviceSold],
		InTransit: counts[domain.DeviceInTransit],
	}, nil
}
