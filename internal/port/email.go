package port

import "context"

// BookingEmail carries the fields rendered into a booking confirmation.
type BookingEmail struct {
	ToEmail       string
	PatientName   string
	DeviceLabel   string
	AdvanceAmount float64
}

// ReceiptEmail carries the fields rendered into a payment receipt.
type ReceiptEmail struct {
	ToEmail     string
	PatientName string
	DocumentID  string
	Amount      float64
	BalanceDue  float64
}

// EmailSender delivers transactional clinic emails.
type EmailSender interface {
	SendBookingConfirmation(ctx context.Context, msg BookingEmail) error
	SendPaymentReceipt(ctx context.Context, msg ReceiptEmail) error
}
