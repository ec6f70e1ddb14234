package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hearbill/internal/domain"
	"hearbill/internal/port"
	"hearbill/internal/service"
	"hearbill/mocks"
)

func newBookingService() (service.BookingService, *mocks.MockBookingRepo, *mocks.MockPatientRepo, *mocks.MockDeviceRepo, *mocks.MockEmailSender) {
	bookingRepo := new(mocks.MockBookingRepo)
	patientRepo := new(mocks.MockPatientRepo)
	deviceRepo := new(mocks.MockDeviceRepo)
	email := new(mocks.MockEmailSender)
	svc := service.NewBookingService(bookingRepo, patientRepo, deviceRepo, email)
	return svc, bookingRepo, patientRepo, deviceRepo, email
}

func TestBookingService_Create_HoldsDevice(t *testing.T) {
	svc, bookingRepo, patientRepo, deviceRepo, email := newBookingService()

	patientID := uuid.New()
	deviceID := uuid.New()
	patient := &domain.Patient{ID: patientID, FullName: "Asha Kulkarni", Email: "asha@example.com"}
	device := &domain.Device{ID: deviceID, Brand: "Signia", Model: "Pure 312 AX", Status: domain.DeviceAvailable}

	patientRepo.On("GetByID", mock.Anything, patientID).Return(patient, nil)
	deviceRepo.On("GetByID", mock.Anything, deviceID).Return(device, nil)
	deviceRepo.On("UpdateStatus", mock.Anything, deviceID, domain.DeviceAvailable, domain.DeviceBooked).Return(nil)
	bookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	email.On("SendBookingConfirmation", mock.Anything, mock.MatchedBy(func(msg port.BookingEmail) bool {
		return msg.ToEmail == "asha@example.com" && msg.DeviceLabel == "Signia Pure 312 AX"
	})).Return(nil)

	booking, err := svc.Create(context.Background(), service.CreateBookingInput{
		PatientID:     patientID,
		DeviceID:      deviceID,
		AdvanceAmount: 5000,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingPending, booking.Status)
	assert.Equal(t, "Asha Kulkarni", booking.PatientName)
	deviceRepo.AssertExpectations(t)
	email.AssertExpectations(t)
}

func TestBookingService_Create_NegativeAdvanceRejected(t *testing.T) {
	svc, bookingRepo, _, deviceRepo, _ := newBookingService()

	booking, err := svc.Create(context.Background(), service.CreateBookingInput{
		PatientID:     uuid.New(),
		DeviceID:      uuid.New(),
		AdvanceAmount: -100,
	})

	assert.Nil(t, booking)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	deviceRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_Create_DeviceAlreadyHeld(t *testing.T) {
	svc, bookingRepo, patientRepo, deviceRepo, _ := newBookingService()

	patientID := uuid.New()
	deviceID := uuid.New()
	patientRepo.On("GetByID", mock.Anything, patientID).Return(&domain.Patient{ID: patientID}, nil)
	deviceRepo.On("GetByID", mock.Anything, deviceID).Return(&domain.Device{ID: deviceID, Status: domain.DeviceBooked}, nil)
	deviceRepo.On("UpdateStatus", mock.Anything, deviceID, domain.DeviceAvailable, domain.DeviceBooked).
		Return(domain.ErrDeviceUnavailable)

	booking, err := svc.Create(context.Background(), service.CreateBookingInput{
		PatientID: patientID,
		DeviceID:  deviceID,
	})

	assert.Nil(t, booking)
	assert.ErrorIs(t, err, domain.ErrDeviceUnavailable)
	bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_Create_PersistFailureReleasesHold(t *testing.T) {
	svc, bookingRepo, patientRepo, deviceRepo, email := newBookingService()

	patientID := uuid.New()
	deviceID := uuid.New()
	patientRepo.On("GetByID", mock.Anything, patientID).Return(&domain.Patient{ID: patientID, Email: "asha@example.com"}, nil)
	deviceRepo.On("GetByID", mock.Anything, deviceID).Return(&domain.Device{ID: deviceID, Status: domain.DeviceAvailable}, nil)
	deviceRepo.On("UpdateStatus", mock.Anything, deviceID, domain.DeviceAvailable, domain.DeviceBooked).Return(nil)
	bookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(errors.New("insert failed"))
	deviceRepo.On("UpdateStatus", mock.Anything, deviceID, domain.DeviceBooked, domain.DeviceAvailable).Return(nil)

	booking, err := svc.Create(context.Background(), service.CreateBookingInput{
		PatientID: patientID,
		DeviceID:  deviceID,
	})

	assert.Nil(t, booking)
	assert.Error(t, err)
	deviceRepo.AssertCalled(t, "UpdateStatus", mock.Anything, deviceID, domain.DeviceBooked, domain.DeviceAvailable)
	email.AssertNotCalled(t, "SendBookingConfirmation", mock.Anything, mock.Anything)
}

func TestBookingService_Create_EmailFailureDoesNotFailBooking(t *testing.T) {
	svc, bookingRepo, patientRepo, deviceRepo, email := newBookingService()

	patientID := uuid.New()
	deviceID := uuid.New()
	patientRepo.On("GetByID", mock.Anything, patientID).Return(&domain.Patient{ID: patientID, Email: "asha@example.com"}, nil)
	deviceRepo.On("GetByID", mock.Anything, deviceID).Return(&domain.Device{ID: deviceID, Status: domain.DeviceAvailable}, nil)
	deviceRepo.On("UpdateStatus", mock.Anything, deviceID, domain.DeviceAvailable, domain.DeviceBooked).Return(nil)
	bookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	email.On("SendBookingConfirmation", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	booking, err := svc.Create(context.Background(), service.CreateBookingInput{
		PatientID: patientID,
		DeviceID:  deviceID,
	})

	assert.NoError(t, err)
	assert.NotNil(t, booking)
}

func TestBookingService_Confirm_Success(t *testing.T) {
	svc, bookingRepo, _, _, _ := newBookingService()

	bookingID := uuid.New()
	bookingRepo.On("GetByID", mock.Anything, bookingID).Return(&domain.Booking{
		ID:     bookingID,
		Status: domain.BookingPending,
	}, nil)
	bookingRepo.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.BookingConfirmed
	})).Return(nil)

	booking, err := svc.Confirm(context.Background(), bookingID)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, booking.Status)
	bookingRepo.AssertExpectations(t)
}

func TestBookingService_Confirm_NotPending(t *testing.T) {
	svc, bookingRepo, _, _, _ := newBookingService()

	bookingID := uuid.New()
	bookingRepo.On("GetByID", mock.Anything, bookingID).Return(&domain.Booking{
		ID:     bookingID,
		Status: domain.BookingCancelled,
	}, nil)

	booking, err := svc.Confirm(context.Background(), bookingID)

	assert.Nil(t, booking)
	assert.ErrorIs(t, err, domain.ErrBookingNotPending)
	bookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestBookingService_Cancel_ReleasesDevice(t *testing.T) {
	svc, bookingRepo, _, deviceRepo, _ := newBookingService()

	bookingID := uuid.New()
	deviceID := uuid.New()
	bookingRepo.On("GetByID", mock.Anything, bookingID).Return(&domain.Booking{
		ID:       bookingID,
		DeviceID: deviceID,
		Status:   domain.BookingConfirmed,
	}, nil)
	bookingRepo.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.BookingCancelled
	})).Return(nil)
	deviceRepo.On("UpdateStatus", mock.Anything, deviceID, domain.DeviceBooked, domain.DeviceAvailable).Return(nil)

	booking, err := svc.Cancel(context.Background(), bookingID)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, booking.Status)
	deviceRepo.AssertExpectations(t)
}

func TestBookingService_Cancel_SoldDeviceStaysSold(t *testing.T) {
	svc, bookingRepo, _, deviceRepo, _ := newBookingService()

	bookingID := uuid.New()
	deviceID := uuid.New()
	bookingRepo.On("GetByID", mock.Anything, bookingID).Return(&domain.Booking{
		ID:       bookingID,
		DeviceID: deviceID,
		Status:   domain.BookingPending,
	}, nil)
	bookingRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	// The unit was invoiced through the booking; the CAS misses and that is fine.
	deviceRepo.On("UpdateStatus", mock.Anything, deviceID, domain.DeviceBooked, domain.DeviceAvailable).
		Return(domain.ErrDeviceUnavailable)

	booking, err := svc.Cancel(context.Background(), bookingID)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, booking.Status)
}

func TestBookingService_Cancel_AlreadyCancelled(t *testing.T) {
	svc, bookingRepo, _, deviceRepo, _ := newBookingService()

	bookingID := uuid.New()
	bookingRepo.On("GetByID", mock.Anything, bookingID).Return(&domain.Booking{
		ID:     bookingID,
		Status: domain.BookingCancelled,
	}, nil)

	booking, err := svc.Cancel(context.Background(), bookingID)

	assert.Nil(t, booking)
	assert.ErrorIs(t, err, domain.ErrBookingNotPending)
	deviceRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
