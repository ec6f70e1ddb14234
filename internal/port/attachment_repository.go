package port

import (
	"context"

	"github.com/google/uuid"

	"hearbill/internal/domain"
)

// AttachmentRepository defines the contract for patient file metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, att *domain.Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, offset, limit int) ([]domain.Attachment, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
