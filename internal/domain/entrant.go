package domain

import (
	"context"
	"strings"
)

// Entrant is the identity value moved between an event's lists.
// Identity is the normalized email; the password hash is carried as
// account data and plays no part in lottery logic.
// swagger:model Entrant
type Entrant struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	PasswordHash string `json:"-"`
}

// NewEntrant returns an Entrant with its email normalized.
func NewEntrant(name, email, phone string) Entrant {
	return Entrant{
		Name:  name,
		Email: NormalizeEmail(email),
		Phone: phone,
	}
}

// NormalizeEmail lowercases and trims an email for identity comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ListName identifies one of the four fixed per-event entrant lists.
type ListName string

const (
	ListWaitlist ListName = "waitlist"
	ListInvited  ListName = "inviteList"
	ListAccepted ListName = "acceptedList"
	ListDeclined ListName = "declinedList"
)

// ListNames holds the four list identifiers in their canonical order.
var ListNames = []ListName{ListWaitlist, ListInvited, ListAccepted, ListDeclined}

// ValidListName reports whether name is one of the four fixed identifiers.
func ValidListName(name ListName) bool {
	switch name {
	case ListWaitlist, ListInvited, ListAccepted, ListDeclined:
		return true
	}
	return false
}

// EntrantList is an ordered collection of entrants that is duplicate-free
// by email. Insertion order is preserved and exposed positionally.
type EntrantList struct {
	entrants []Entrant
}

// NewEntrantList returns an empty EntrantList.
func NewEntrantList() *EntrantList {
	return &EntrantList{}
}

// NewEntrantListOf returns an EntrantList seeded with the given entrants,
// dropping duplicates by email.
func NewEntrantListOf(entrants ...Entrant) *EntrantList {
	l := NewEntrantList()
	for _, e := range entrants {
		l.Add(e)
	}
	return l
}

// Add appends the entrant unless an entrant with the same email is already
// present. It reports whether the entrant was added.
func (l *EntrantList) Add(e Entrant) bool {
	email := NormalizeEmail(e.Email)
	if email == "" || l.Contains(email) {
		return false
	}
	e.Email = email
	l.entrants = append(l.entrants, e)
	return true
}

// Remove deletes the entrant with the given email, preserving the order of
// the rest. It reports whether an entrant was removed.
func (l *EntrantList) Remove(email string) bool {
	email = NormalizeEmail(email)
	for i, e := range l.entrants {
		if e.Email == email {
			l.entrants = append(l.entrants[:i], l.entrants[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether an entrant with the given email is present.
func (l *EntrantList) Contains(email string) bool {
	_, ok := l.Get(email)
	return ok
}

// Get returns the entrant with the given email.
func (l *EntrantList) Get(email string) (Entrant, bool) {
	email = NormalizeEmail(email)
	for _, e := range l.entrants {
		if e.Email == email {
			return e, true
		}
	}
	return Entrant{}, false
}

// At returns the entrant at position i.
func (l *EntrantList) At(i int) Entrant {
	return l.entrants[i]
}

// Size returns the number of entrants in the list.
func (l *EntrantList) Size() int {
	return len(l.entrants)
}

// Entrants returns a copy of the list in order.
func (l *EntrantList) Entrants() []Entrant {
	out := make([]Entrant, len(l.entrants))
	copy(out, l.entrants)
	return out
}

// Emails returns the entrant emails in list order.
func (l *EntrantList) Emails() []string {
	out := make([]string, 0, len(l.entrants))
	for _, e := range l.entrants {
		out = append(out, e.Email)
	}
	return out
}

// EmailSet returns the entrant emails as a set.
func (l *EntrantList) EmailSet() map[string]struct{} {
	set := make(map[string]struct{}, len(l.entrants))
	for _, e := range l.entrants {
		set[e.Email] = struct{}{}
	}
	return set
}

// EntrantListRepository defines storage operations for the per-event
// entrant lists. Add and Remove are single-entrant commits and must be
// idempotent so a failed multi-entrant move is safe to retry.
type EntrantListRepository interface {
	Load(ctx context.Context, eventID string, list ListName) (*EntrantList, error)
	Add(ctx context.Context, eventID string, list ListName, entrant Entrant) error
	Remove(ctx context.Context, eventID string, list ListName, email string) error
	// Move relocates one entrant from one list to another.
	Move(ctx context.Context, eventID string, from, to ListName, entrant Entrant) error
}
