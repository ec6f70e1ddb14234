package port

import (
	"context"

	"github.com/google/uuid"

	"hearbill/internal/domain"
)

// DeviceRepository defines the contract for serialized inventory persistence.
type DeviceRepository interface {
	Create(ctx context.Context, device *domain.Device) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Device, error)
	GetBySerial(ctx context.Context, serial string) (*domain.Device, error)
	List(ctx context.Context, status domain.DeviceStatus, location string, offset, limit int) ([]domain.Device, int, error)
	Update(ctx context.Context, device *domain.Device) error
	// UpdateStatus transitions a device only when it currently holds the
	// expected status, returning domain.ErrDeviceUnavailable otherwise.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.DeviceStatus) error
	SetLocation(ctx context.Context, id uuid.UUID, location string) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[domain.DeviceStatus]int, error)
}

// TransferRepository defines the contract for device transfer persistence.
type TransferRepository interface {
	Create(ctx context.Context, transfer *domain.Transfer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transfer, error)
	List(ctx context.Context, status domain.TransferStatus, offset, limit int) ([]domain.Transfer, int, error)
	Update(ctx context.Context, transfer *domain.Transfer) error
}
