package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"hearbill/internal/domain"
	"hearbill/internal/port"
)

// CreateBookingInput is the DTO for booking a device against an advance.
type CreateBookingInput struct {
	PatientID     uuid.UUID `json:"patient_id" binding:"required"`
	DeviceID      uuid.UUID `json:"device_id" binding:"required"`
	AdvanceAmount float64   `json:"advance_amount"`
	Notes         string    `json:"notes"`
	CreatedBy     uuid.UUID `json:"-"`
}

// BookingService defines the advance booking contract. A pending booking
// holds the device so it cannot be sold or transferred out from under the
// patient.
type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, status domain.BookingStatus, offset, limit int) ([]domain.Booking, int, error)
	Confirm(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Cancel(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

type bookingService struct {
	bookingRepo port.BookingRepository
	patientRepo port.PatientRepository
	deviceRepo  port.DeviceRepository
	email       port.EmailSender
}

// NewBookingService creates a new BookingService implementation.
func NewBookingService(
	bookingRepo port.BookingRepository,
	patientRepo port.PatientRepository,
	deviceRepo port.DeviceRepository,
	email port.EmailSender,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		patientRepo: patientRepo,
		deviceRepo:  deviceRepo,
		email:       email,
	}
}

func (s *bookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.AdvanceAmount < 0 {
		return nil, fmt.Errorf("%w: advance amount must not be negative", domain.ErrInvalidArgument)
	}

	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	device, err := s.deviceRepo.GetByID(ctx, input.DeviceID)
	if err != nil {
		return nil, err
	}

	// Hold the device first; the CAS loses cleanly if another booking or a
	// sale got there before us.
	if err := s.deviceRepo.UpdateStatus(ctx, device.ID, domain.DeviceAvailable, domain.DeviceBooked); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		PatientID:     patient.ID,
		PatientName:   patient.FullName,
		DeviceID:      device.ID,
		AdvanceAmount: input.AdvanceAmount,
		Status:        domain.BookingPending,
		Notes:         input.Notes,
		CreatedBy:     input.CreatedBy,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if rerr := s.deviceRepo.UpdateStatus(ctx, device.ID, domain.DeviceBooked, domain.DeviceAvailable); rerr != nil {
			log.Printf("bookingService.Create: releasing device %s: %v", device.ID, rerr)
		}
		return nil, err
	}

	if patient.Email != "" {
		if merr := s.email.SendBookingConfirmation(ctx, port.BookingEmail{
			ToEmail:       patient.Email,
			PatientName:   patient.FullName,
			DeviceLabel:   device.Brand + " " + device.Model,
			AdvanceAmount: booking.AdvanceAmount,
		}); merr != nil {
			log.Printf("bookingService.Create: sending confirmation for booking %s: %v", booking.ID, merr)
		}
	}

	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) List(ctx context.Context, status domain.BookingStatus, offset, limit int) ([]domain.Booking, int, error) {
	return s.bookingRepo.List(ctx, status, offset, limit)
}

// Confirm marks a pending booking as honored. The device stays booked; the
// sale itself is completed by invoicing it, which moves the unit to sold.
func (s *bookingService) Confirm(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingPending {
		return nil, domain.ErrBookingNotPending
	}

	booking.Status = domain.BookingConfirmed
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Cancel releases the held device back to available stock.
func (s *bookingService) Cancel(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch booking.Status {
	case domain.BookingPending, domain.BookingConfirmed:
	default:
		return nil, domain.ErrBookingNotPending
	}

	booking.Status = domain.BookingCancelled
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	// The device may already have been sold through the booking; only a
	// still-booked unit goes back on the shelf.
	if err := s.deviceRepo.UpdateStatus(ctx, booking.DeviceID, domain.DeviceBooked, domain.DeviceAvailable); err != nil {
		log.Printf("bookingService.Cancel: releasing device %s: %v", booking.DeviceID, err)
	}
	return booking, nil
}
