// internal/notification/service.go

package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/Ecera-System/ESMatromonial-sub000/internal/profile"
)

const defaultListLimit = 50

type Service interface {
	SendInterestNotification(ctx context.Context, recipientID int64, liker *profile.Profile) error
	ListNotifications(ctx context.Context, userID int64) ([]*Notification, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
	CountUnread(ctx context.Context, userID int64) (int, error)
}

type service struct {
	repo     Repository
	profiles profile.Repository
	email    EmailService // nil disables email delivery
	sms      SMSService   // nil disables SMS delivery
}

func NewService(repo Repository, profiles profile.Repository, email EmailService, sms SMSService) Service {
	return &service{
		repo:     repo,
		profiles: profiles,
		email:    email,
		sms:      sms,
	}
}

// SendInterestNotification persists the in-app notification for the liked
// member. Email and SMS are delivered best effort; only the in-app insert
// can fail the call.
func (s *service) SendInterestNotification(ctx context.Context, recipientID int64, liker *profile.Profile) error {
	link := fmt.Sprintf("/profile/%d", liker.ID)
	n := &Notification{
		UserID:  recipientID,
		Type:    TypeInterest,
		Title:   "New Interest!",
		Message: fmt.Sprintf("%s has shown interest in your profile!", liker.FirstName),
		Link:    &link,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	s.deliverExternal(ctx, recipientID, n)
	return nil
}

func (s *service) ListNotifications(ctx context.Context, userID int64) ([]*Notification, error) {
	return s.repo.ListByUser(ctx, userID, defaultListLimit)
}

func (s *service) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return s.repo.MarkRead(ctx, notificationID, userID)
}

func (s *service) CountUnread(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// deliverExternal mirrors the in-app notification to email and SMS when
// the recipient has the contact details and the channels are configured.
func (s *service) deliverExternal(ctx context.Context, recipientID int64, n *Notification) {
	if s.email == nil && s.sms == nil {
		return
	}

	recipient, err := s.profiles.GetByID(ctx, recipientID)
	if err != nil {
		log.Printf("Failed to load recipient %d for notification delivery: %v", recipientID, err)
		return
	}

	if s.email != nil && recipient.Email != "" {
		err := s.email.SendEmail(ctx, &EmailNotification{
			To:      recipient.Email,
			Subject: n.Title,
			Body:    n.Message,
		})
		if err != nil {
			log.Printf("Failed to email notification to user %d: %v", recipientID, err)
		}
	}

	if s.sms != nil && recipient.Phone != nil && *recipient.Phone != "" {
		err := s.sms.SendSMS(ctx, &SMSNotification{
			To:      *recipient.Phone,
			Message: fmt.Sprintf("%s %s", n.Title, n.Message),
		})
		if err != nil {
			log.Printf("Failed to SMS notification to user %d: %v", recipientID, err)
		}
	}
}
