package noop

import (
	"context"
	"log"

	"hearbill/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs messages to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendBookingConfirmation(_ context.Context, msg port.BookingEmail) error {
	log.Printf("[NOOP EMAIL] Booking confirmation for %s (%s): %s, advance %.2f",
		msg.PatientName, msg.ToEmail, msg.DeviceLabel, msg.AdvanceAmount)
	return nil
}

func (s *noopSender) SendPaymentReceipt(_ context.Context, msg port.ReceiptEmail) error {
	log.Printf("[NOOP EMAIL] Payment receipt for %s (%s): %s, paid %.2f, balance %.2f",
		msg.PatientName, msg.ToEmail, msg.DocumentID, msg.Amount, msg.BalanceDue)
	return nil
}
