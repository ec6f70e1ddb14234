package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hearbill/internal/domain"
	"hearbill/internal/port"
)

// CreatePatientInput is the DTO for creating a patient record.
type CreatePatientInput struct {
	FullName  string     `json:"full_name" binding:"required"`
	Phone     string     `json:"phone" binding:"required"`
	Email     string     `json:"email" binding:"omitempty,email"`
	Address   string     `json:"address"`
	StateCode string     `json:"state_code"`
	DOB       *time.Time `json:"dob"`
	Notes     string     `json:"notes"`
}

// UpdatePatientInput is the DTO for updating a patient record.
type UpdatePatientInput struct {
	FullName  *string    `json:"full_name"`
	Phone     *string    `json:"phone"`
	Email     *string    `json:"email"`
	Address   *string    `json:"address"`
	StateCode *string    `json:"state_code"`
	DOB       *time.Time `json:"dob"`
	Notes     *string    `json:"notes"`
}

// PatientService defines the patient record management contract.
type PatientService interface {
	Create(ctx context.Context, input CreatePatientInput) (*domain.Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Patient, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePatientInput) (*domain.Patient, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type patientService struct {
	repo port.PatientRepository
}

// NewPatientService creates a new PatientService implementation.
func NewPatientService(repo port.PatientRepository) PatientService {
	return &patientService{repo: repo}
}

func (s *patientService) Create(ctx context.Context, input CreatePatientInput) (*domain.Patient, error) {
	patient := &domain.Patient{
		FullName:  input.FullName,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		StateCode: input.StateCode,
		DOB:       input.DOB,
		Notes:     input.Notes,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *patientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *patientService) List(ctx context.Context, search string, offset, limit int) ([]domain.Patient, int, error) {
	return s.repo.List(ctx, search, offset, limit)
}

func (s *patientService) Update(ctx context.Context, id uuid.UUID, input UpdatePatientInput) (*domain.Patient, error) {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		patient.FullName = *input.FullName
	}
	if input.Phone != nil {
		patient.Phone = *input.Phone
	}
	if input.Email != nil {
		patient.Email = *input.Email
	}
	if input.Address != nil {
		patient.Address = *input.Address
	}
	if input.StateCode != nil {
		patient.StateCode = *input.StateCode
	}
	if input.DOB != nil {
		patient.DOB = input.DOB
	}
	if input.Notes != nil {
		patient.Notes = *input.Notes
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *patientService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
