package domain

import (
	"context"
	"time"
)

// Event is the aggregate root owning the four entrant lists.
// The lists are populated by the service layer before any lottery or
// response operation runs; a nil list means "not loaded".
// swagger:model Event
type Event struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	OrganizerEmail string `json:"organizer_email"`
	EntrantLimit   int    `json:"entrant_limit"`
	// RegistrationEndDate closes the join window; the lottery only runs
	// after this date has passed. Unset means the lottery never opens.
	RegistrationEndDate *time.Time `json:"registration_end_date,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	Waitlist     *EntrantList `json:"-"`
	InviteList   *EntrantList `json:"-"`
	AcceptedList *EntrantList `json:"-"`
	DeclinedList *EntrantList `json:"-"`
}

// NewEvent returns a new Event with empty lists. ID is typically set by the
// repository on create.
func NewEvent(name, organizerEmail string, entrantLimit int, regEndDate *time.Time, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:                name,
		OrganizerEmail:      organizerEmail,
		EntrantLimit:        entrantLimit,
		RegistrationEndDate: regEndDate,
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
		Waitlist:            NewEntrantList(),
		InviteList:          NewEntrantList(),
		AcceptedList:        NewEntrantList(),
		DeclinedList:        NewEntrantList(),
	}
}

// List returns the named list, or nil if it is not loaded.
func (e *Event) List(name ListName) *EntrantList {
	switch name {
	case ListWaitlist:
		return e.Waitlist
	case ListInvited:
		return e.InviteList
	case ListAccepted:
		return e.AcceptedList
	case ListDeclined:
		return e.DeclinedList
	}
	return nil
}

// AvailableSlots returns how many seats remain before the entrant limit is
// reached, never negative. Requires the accepted list to be loaded.
func (e *Event) AvailableSlots() int {
	accepted := 0
	if e.AcceptedList != nil {
		accepted = e.AcceptedList.Size()
	}
	slots := e.EntrantLimit - accepted
	if slots < 0 {
		return 0
	}
	return slots
}

// EventRepository defines storage operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// UpdateSettings changes the entrant limit and registration end date.
	UpdateSettings(ctx context.Context, id string, entrantLimit int, regEndDate *time.Time) error
}

// EventService exposes event management to the delivery layer.
type EventService interface {
	Create(ctx context.Context, name, organizerEmail string, entrantLimit int, regEndDate *time.Time) (*Event, error)
	Get(ctx context.Context, id string) (*Event, error)
	UpdateSettings(ctx context.Context, id string, entrantLimit int, regEndDate *time.Time) error
}
