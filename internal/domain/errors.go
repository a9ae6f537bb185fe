package domain

import "errors"

// Sentinel errors for expected outcomes. Services wrap these with
// context; the delivery layer dispatches on them with errors.Is.
var (
	// ErrNotFound is returned when an event, entrant, or invite does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned when a required identifier is missing or malformed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotAvailable is returned when the lottery timing gate has not opened yet.
	ErrNotAvailable = errors.New("lottery not available")

	// ErrCapacityExceeded is returned when accepting an invitation would
	// push the accepted list past the event's entrant limit.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrNotInvited is returned when a response arrives for an entrant who is
	// not currently on the invite list (including repeated responses).
	ErrNotInvited = errors.New("entrant not invited")

	// ErrAlreadyListed is returned when an entrant joins a waitlist they are
	// already on (or are already invited/accepted/declined for).
	ErrAlreadyListed = errors.New("entrant already listed")
)
