package domain

import (
	"errors"
	"time"
)

type NotificationType string

const (
	NotificationTypeGrade    NotificationType = "grade"
	NotificationTypeExam     NotificationType = "exam"
	NotificationTypeAbsence  NotificationType = "absence"
	NotificationTypeGeneral  NotificationType = "general"
	NotificationTypeHomework NotificationType = "homework"
	NotificationTypeEvent    NotificationType = "event"
)

// Channel is a delivery channel hint. Informational only; the server does
// the actual delivery.
type Channel string

const (
	ChannelInApp Channel = "in_app"
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Notification is one message directed at a user. Ids are server-assigned;
// the client only ever forwards them back.
type Notification struct {
	ID        int64                `json:"id"`
	UserID    int64                `json:"user_id"`
	Titre     string               `json:"titre"`
	Message   string               `json:"message"`
	Type      NotificationType     `json:"type"`
	Channels  []Channel            `json:"channels"`
	IsRead    bool                 `json:"is_read"`
	ReadAt    *time.Time           `json:"read_at,omitempty"`
	Metadata  map[string]MetaValue `json:"metadata,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// CreateNotificationDTO is the privileged creation payload.
type CreateNotificationDTO struct {
	UserID   int64                `json:"user_id" validate:"required,gt=0"`
	Titre    string               `json:"titre" validate:"required"`
	Message  string               `json:"message" validate:"required"`
	Type     NotificationType     `json:"type" validate:"required,oneof=grade exam absence general homework event"`
	Channels []Channel            `json:"channels" validate:"required,min=1,dive,oneof=in_app email sms"`
	Metadata map[string]MetaValue `json:"metadata,omitempty"`
}

var (
	ErrInvalidNotificationID = errors.New("ID de notification invalide")
	ErrNotificationNotFound  = errors.New("notification not found")
)
