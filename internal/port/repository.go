package port

import (
	"context"

	"github.com/google/uuid"

	"hearbill/internal/domain"
)

// UserRepository defines the contract for staff user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// PatientRepository defines the contract for patient record persistence.
type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Patient, int, error)
	Update(ctx context.Context, patient *domain.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GSTRateRepository looks up the HSN/SAC rate master.
type GSTRateRepository interface {
	GetByHSN(ctx context.Context, hsnCode string) (*domain.GSTRate, error)
	Search(ctx context.Context, query string, limit int) ([]domain.GSTRate, error)
}
