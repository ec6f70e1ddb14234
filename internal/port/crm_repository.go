package port

import (
	"context"

	"github.com/google/uuid"

	"hearbill/internal/domain"
)

// LeadRepository defines the contract for CRM lead persistence.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	List(ctx context.Context, status domain.LeadStatus, offset, limit int) ([]domain.Lead, int, error)
	Update(ctx context.Context, lead *domain.Lead) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddFollowUp(ctx context.Context, followUp *domain.FollowUp) error
	ListFollowUps(ctx context.Context, leadID uuid.UUID) ([]domain.FollowUp, error)
}

// BookingRepository defines the contract for advance booking persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, status domain.BookingStatus, offset, limit int) ([]domain.Booking, int, error)
	Update(ctx context.Context, booking *domain.Booking) error
}
