// internal/notification/sms.go

package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSService sends transactional SMS
type SMSService interface {
	SendSMS(ctx context.Context, n *SMSNotification) error
}

// TwilioSMSService sends SMS through Twilio
type TwilioSMSService struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSMSService(accountSID, authToken, from string) (SMSService, error) {
	if accountSID == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("incomplete Twilio configuration")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSMSService{client: client, from: from}, nil
}

func (s *TwilioSMSService) SendSMS(ctx context.Context, n *SMSNotification) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.To)
	params.SetFrom(s.from)
	params.SetBody(n.Message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send SMS to %s: %v", n.To, err)
		return err
	}
	if resp.Sid != nil {
		log.Printf("Sent SMS to %s with SID %s", n.To, *resp.Sid)
	}

	return nil
}

// MockSMSService records sent messages for testing
type MockSMSService struct {
	SentMessages []*SMSNotification
}

func NewMockSMSService() *MockSMSService {
	return &MockSMSService{SentMessages: make([]*SMSNotification, 0)}
}

func (m *MockSMSService) SendSMS(ctx context.Context, n *SMSNotification) error {
	m.SentMessages = append(m.SentMessages, n)
	return nil
}
