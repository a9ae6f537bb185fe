package domain

import (
	"context"
	"time"
)

// DrawResult is the outcome of a completed draw (including draws that
// legitimately selected nobody).
// swagger:model DrawResult
type DrawResult struct {
	SelectedCount  int      `json:"selected_count"`
	SelectedEmails []string `json:"selected_emails,omitempty"`
	Message        string   `json:"message"`
}

// LotteryAvailability reports whether a draw can run right now and why.
// swagger:model LotteryAvailability
type LotteryAvailability struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// ResponseResult is the outcome of an entrant's accept/decline response.
// BackfillCount is the number of entrants invited by the decline-triggered
// backfill draw, if any.
// swagger:model ResponseResult
type ResponseResult struct {
	Accepted      bool `json:"accepted"`
	BackfillCount int  `json:"backfill_count"`
}

// LotteryService runs draws and handles invitation responses for events.
// All operations on the same event are serialized internally; operations on
// different events proceed in parallel.
type LotteryService interface {
	// DrawLottery validates timing and capacity, randomly selects eligible
	// waitlisted entrants to fill the open slots, moves them to the invite
	// list, and notifies them.
	DrawLottery(ctx context.Context, eventID string) (*DrawResult, error)

	// ResampleLottery expires all pending invitations, returns those
	// entrants to the waitlist, and redraws for every unconfirmed seat.
	ResampleLottery(ctx context.Context, eventID string) (*DrawResult, error)

	// Respond records an entrant's accept or decline of a pending
	// invitation. A decline may trigger a single-slot backfill draw.
	Respond(ctx context.Context, eventID, entrantEmail string, accepted bool) (*ResponseResult, error)

	// SweepExpiredInvites auto-declines pending invitations whose response
	// window has closed, returning the number processed.
	SweepExpiredInvites(ctx context.Context) (int, error)

	// CheckAvailability reports whether a draw would run for the event and
	// a human-readable reason.
	CheckAvailability(ctx context.Context, eventID string) (*LotteryAvailability, error)

	// IsLotteryAvailable reports whether the registration window has
	// closed. The end date is treated as inclusive: the gate opens at the
	// end of that day.
	IsLotteryAvailable(event *Event) bool

	// TimeUntilAvailable returns how long until the timing gate opens,
	// zero if it is already open or the end date is unset.
	TimeUntilAvailable(event *Event) time.Duration
}

// WaitlistService manages waitlist membership before a draw.
type WaitlistService interface {
	Join(ctx context.Context, eventID string, entrant Entrant) error
	Leave(ctx context.Context, eventID, email string) error
	List(ctx context.Context, eventID string, list ListName) (*EntrantList, error)
}
