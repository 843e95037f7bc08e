// internal/notification/models.go

package notification

import "time"

// Notification types
const (
	TypeInterest = "interest"
	TypeSystem   = "system"
)

// Notification is a persisted in-app notification
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Type      string    `json:"type" db:"type"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Link      *string   `json:"link,omitempty" db:"link"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// EmailNotification is an outbound email payload
type EmailNotification struct {
	To      string
	Subject string
	Body    string
	HTML    string
}

// SMSNotification is an outbound SMS payload
type SMSNotification struct {
	To      string
	Message string
}
