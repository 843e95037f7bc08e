// internal/notification/email.go

package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends transactional email
type EmailService interface {
	SendEmail(ctx context.Context, n *EmailNotification) error
}

// SendGridEmailService sends email through SendGrid
type SendGridEmailService struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewSendGridEmailService(apiKey, from, fromName string) (EmailService, error) {
	if apiKey == "" || from == "" {
		return nil, fmt.Errorf("incomplete SendGrid configuration")
	}
	if fromName == "" {
		fromName = "ESMatrimonial"
	}

	return &SendGridEmailService{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
	}, nil
}

func (s *SendGridEmailService) SendEmail(ctx context.Context, n *EmailNotification) error {
	from := mail.NewEmail(s.fromName, s.from)
	to := mail.NewEmail("", n.To)
	message := mail.NewSingleEmail(from, n.Subject, to, n.Body, n.HTML)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		log.Printf("Failed to send email to %s: %v", n.To, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: status %d", n.To, resp.StatusCode)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	return nil
}

// MockEmailService records sent emails for testing
type MockEmailService struct {
	SentEmails []*EmailNotification
}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{SentEmails: make([]*EmailNotification, 0)}
}

func (m *MockEmailService) SendEmail(ctx context.Context, n *EmailNotification) error {
	m.SentEmails = append(m.SentEmails, n)
	return nil
}
