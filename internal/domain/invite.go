package domain

import (
	"context"
	"fmt"
	"time"
)

// InviteStatus is the lifecycle state of an invitation record.
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
	InviteStatusExpired  InviteStatus = "expired"
)

// Invite is the record created for each entrant selected by a draw.
// It tracks the accept/decline/expire lifecycle alongside the entrant's
// membership in the event's invite list.
// swagger:model Invite
type Invite struct {
	ID             string       `json:"id"`
	EventID        string       `json:"event_id"`
	RecipientEmail string       `json:"recipient_email"`
	EventName      string       `json:"event_name"`
	OrganizerEmail string       `json:"organizer_email"`
	Status         InviteStatus `json:"status"`
	Message        string       `json:"message"`
	ExpiresAt      time.Time    `json:"expires_at"`
	CreatedAt      time.Time    `json:"created_at"`
}

// NewInvite returns a pending Invite for the given recipient.
func NewInvite(eventID, recipientEmail, eventName, organizerEmail string, expiresAt, createdAt time.Time) *Invite {
	return &Invite{
		EventID:        eventID,
		RecipientEmail: NormalizeEmail(recipientEmail),
		EventName:      eventName,
		OrganizerEmail: organizerEmail,
		Status:         InviteStatusPending,
		Message: fmt.Sprintf("Congratulations! You have been selected from the waitlist for %s. "+
			"Please accept or decline this invitation before it expires.", eventName),
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
	}
}

// IsExpired reports whether the invite's response window has closed at now.
func (i *Invite) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// InviteRepository defines storage operations for invitation records.
type InviteRepository interface {
	Create(ctx context.Context, inv *Invite) error
	GetByEventAndRecipient(ctx context.Context, eventID, email string) (*Invite, error)
	UpdateStatus(ctx context.Context, inviteID string, status InviteStatus) error
	// ListPendingExpired returns pending invites whose expiry is before now.
	ListPendingExpired(ctx context.Context, now time.Time) ([]*Invite, error)
}
