package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"jeffika-cabs-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendHireReceipt(ctx context.Context, toEmail, toName string, hire *domain.Hire, pdf []byte) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)

	subject := fmt.Sprintf("Your Car Hire Receipt (Hire #%d)", hire.ID)
	plainText := fmt.Sprintf("Hi %s,\n\nThank you for hiring with Jeffika Cabs. Your receipt for hire #%d (KES %d) is attached.\n\nBest regards,\nJeffika Cabs", toName, hire.ID, hire.TotalAmount)
	htmlContent := fmt.Sprintf("<p>Hi %s,</p><p>Thank you for hiring with <b>Jeffika Cabs</b>! Your receipt for hire #%d (KES %d) is attached.</p>", toName, hire.ID, hire.TotalAmount)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	attachment := mail.NewAttachment()
	attachment.SetContent(base64.StdEncoding.EncodeToString(pdf))
	attachment.SetType("application/pdf")
	attachment.SetFilename(fmt.Sprintf("receipt-%d.pdf", hire.ID))
	attachment.SetDisposition("attachment")
	message.AddAttachment(attachment)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send receipt email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
