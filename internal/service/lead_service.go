package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hearbill/internal/domain"
	"hearbill/internal/port"
)

// CreateLeadInput is the DTO for registering a CRM lead.
type CreateLeadInput struct {
	FullName  string    `json:"full_name" binding:"required"`
	Phone     string    `json:"phone" binding:"required"`
	Email     string    `json:"email" binding:"omitempty,email"`
	Source    string    `json:"source"`
	CreatedBy uuid.UUID `json:"-"`
}

// UpdateLeadInput is the DTO for editing a lead.
type UpdateLeadInput struct {
	FullName *string            `json:"full_name"`
	Phone    *string            `json:"phone"`
	Email    *string            `json:"email"`
	Source   *string            `json:"source"`
	Status   *domain.LeadStatus `json:"status"`
}

// AddFollowUpInput is the DTO for logging a follow-up on a lead.
type AddFollowUpInput struct {
	Note      string     `json:"note" binding:"required"`
	DueAt     *time.Time `json:"due_at"`
	CreatedBy uuid.UUID  `json:"-"`
}

// LeadService defines the CRM pipeline contract.
type LeadService interface {
	Create(ctx context.Context, input CreateLeadInput) (*domain.Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	List(ctx context.Context, status domain.LeadStatus, offset, limit int) ([]domain.Lead, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateLeadInput) (*domain.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddFollowUp(ctx context.Context, leadID uuid.UUID, input AddFollowUpInput) (*domain.FollowUp, error)
	ConvertToPatient(ctx context.Context, leadID uuid.UUID) (*domain.Patient, error)
}

type leadService struct {
	leadRepo    port.LeadRepository
	patientRepo port.PatientRepository
}

// NewLeadService creates a new LeadService implementation.
func NewLeadService(leadRepo port.LeadRepository, patientRepo port.PatientRepository) LeadService {
	return &leadService{
		leadRepo:    leadRepo,
		patientRepo: patientRepo,
	}
}

func (s *leadService) Create(ctx context.Context, input CreateLeadInput) (*domain.Lead, error) {
	lead := &domain.Lead{
		FullName:  input.FullName,
		Phone:     input.Phone,
		Email:     input.Email,
		Source:    input.Source,
		Status:    domain.LeadNew,
		CreatedBy: input.CreatedBy,
	}
	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *leadService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	followUps, err := s.leadRepo.ListFollowUps(ctx, id)
	if err != nil {
		return nil, err
	}
	lead.FollowUps = followUps
	return lead, nil
}

func (s *leadService) List(ctx context.Context, status domain.LeadStatus, offset, limit int) ([]domain.Lead, int, error) {
	return s.leadRepo.List(ctx, status, offset, limit)
}

func (s *leadService) Update(ctx context.Context, id uuid.UUID, input UpdateLeadInput) (*domain.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Conversion is one way and only happens through ConvertToPatient.
	if lead.Status == domain.LeadConverted {
		return nil, domain.ErrLeadConverted
	}

	if input.FullName != nil {
		lead.FullName = *input.FullName
	}
	if input.Phone != nil {
		lead.Phone = *input.Phone
	}
	if input.Email != nil {
		lead.Email = *input.Email
	}
	if input.Source != nil {
		lead.Source = *input.Source
	}
	if input.Status != nil {
		switch *input.Status {
		case domain.LeadNew, domain.LeadContacted, domain.LeadTrialScheduled, domain.LeadLost:
			lead.Status = *input.Status
		default:
			return nil, fmt.Errorf("%w: unknown lead status %q", domain.ErrInvalidArgument, *input.Status)
		}
	}

	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *leadService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.leadRepo.Delete(ctx, id)
}

func (s *leadService) AddFollowUp(ctx context.Context, leadID uuid.UUID, input AddFollowUpInput) (*domain.FollowUp, error) {
	if _, err := s.leadRepo.GetByID(ctx, leadID); err != nil {
		return nil, err
	}
	followUp := &domain.FollowUp{
		LeadID:    leadID,
		Note:      input.Note,
		DueAt:     input.DueAt,
		CreatedBy: input.CreatedBy,
	}
	if err := s.leadRepo.AddFollowUp(ctx, followUp); err != nil {
		return nil, err
	}
	return followUp, nil
}

// ConvertToPatient promotes a lead into a patient record and links the two.
func (s *leadService) ConvertToPatient(ctx context.Context, leadID uuid.UUID) (*domain.Patient, error) {
	lead, err := s.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Status == domain.LeadConverted {
		return nil, domain.ErrLeadConverted
	}

	patient := &domain.Patient{
		FullName: lead.FullName,
		Phone:    lead.Phone,
		Email:    lead.Email,
	}
	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}

	lead.Status = domain.LeadConverted
	lead.PatientID = &patient.ID
	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, err
	}
	return patient, nil
}
