package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"hearbill/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	clinicName  string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, clinicName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		clinicName:  clinicName,
	}, nil
}

func (s *sesSender) SendBookingConfirmation(ctx context.Context, msg port.BookingEmail) error {
	subject := fmt.Sprintf("Your booking with %s is confirmed", s.clinicName)
	htmlBody := buildBookingHTML(s.clinicName, msg)
	textBody := fmt.Sprintf(
		"Hi %s,\n\nYour booking for %s has been received. Advance paid: Rs. %.2f.\n\nWe will contact you when the device is ready for fitting.\n\n%s",
		msg.PatientName, msg.DeviceLabel, msg.AdvanceAmount, s.clinicName)

	return s.send(ctx, msg.ToEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendPaymentReceipt(ctx context.Context, msg port.ReceiptEmail) error {
	subject := fmt.Sprintf("Payment received against %s", msg.DocumentID)
	htmlBody := buildReceiptHTML(s.clinicName, msg)
	textBody := fmt.Sprintf(
		"Hi %s,\n\nWe have received your payment of Rs. %.2f against invoice %s.\nRemaining balance: Rs. %.2f.\n\nThank you,\n%s",
		msg.PatientName, msg.Amount, msg.DocumentID, msg.BalanceDue, s.clinicName)

	return s.send(ctx, msg.ToEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildBookingHTML(clinicName string, msg port.BookingEmail) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Booking confirmed</h2>
  <p>Hi %s,</p>
  <p>Your booking for <strong>%s</strong> has been received.</p>
  <p>Advance paid: <strong>&#8377; %.2f</strong></p>
  <p>We will contact you when the device is ready for fitting.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`, msg.PatientName, msg.DeviceLabel, msg.AdvanceAmount, clinicName)
}

func buildReceiptHTML(clinicName string, msg port.ReceiptEmail) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Payment received</h2>
  <p>Hi %s,</p>
  <p>We have received your payment of <strong>&#8377; %.2f</strong> against invoice <strong>%s</strong>.</p>
  <p>Remaining balance: <strong>&#8377; %.2f</strong></p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Thank you for choosing %s.</p>
</body>
</html>`, msg.PatientName, msg.Amount, msg.DocumentID, msg.BalanceDue, clinicName)
}
