package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"eventlottery/internal/domain"

	"github.com/google/uuid"
)

// Default lottery configuration values.
const (
	DefaultInviteTTL = 24 * time.Hour
)

// LotteryConfig tunes the lottery service. The zero value is usable:
// defaults are applied by NewLotteryService.
type LotteryConfig struct {
	// InviteTTL is how long an invitation stays pending before the expiry
	// sweep auto-declines it.
	InviteTTL time.Duration
	// BackfillOnDecline triggers a single-slot redraw when an entrant
	// declines, so the freed seat is re-offered immediately.
	BackfillOnDecline bool
	// Now supplies the current time; tests override it to move the
	// timing gate.
	Now func() time.Time
	// Shuffle permutes n elements; tests inject a seeded source for
	// reproducible draws. The default is the shared math/rand/v2 shuffle.
	Shuffle func(n int, swap func(i, j int))
}

type lotteryService struct {
	eventRepo  domain.EventRepository
	listRepo   domain.EntrantListRepository
	inviteRepo domain.InviteRepository
	notifier   domain.Notifier
	logger     *slog.Logger
	locks      *LockRegistry

	inviteTTL time.Duration
	backfill  bool
	now       func() time.Time
	shuffle   func(n int, swap func(i, j int))
}

// NewLotteryService creates the lottery and invitation-response service.
func NewLotteryService(
	eventRepo domain.EventRepository,
	listRepo domain.EntrantListRepository,
	inviteRepo domain.InviteRepository,
	notifier domain.Notifier,
	logger *slog.Logger,
	locks *LockRegistry,
	cfg LotteryConfig,
) domain.LotteryService {
	if cfg.InviteTTL <= 0 {
		cfg.InviteTTL = DefaultInviteTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Shuffle == nil {
		cfg.Shuffle = rand.Shuffle
	}
	if locks == nil {
		locks = NewLockRegistry()
	}
	return &lotteryService{
		eventRepo:  eventRepo,
		listRepo:   listRepo,
		inviteRepo: inviteRepo,
		notifier:   notifier,
		logger:     logger,
		locks:      locks,
		inviteTTL:  cfg.InviteTTL,
		backfill:   cfg.BackfillOnDecline,
		now:        cfg.Now,
		shuffle:    cfg.Shuffle,
	}
}

// DrawLottery runs the full precondition chain and selection for one event.
func (s *lotteryService) DrawLottery(ctx context.Context, eventID string) (*domain.DrawResult, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrInvalidArgument)
	}

	release := s.locks.Acquire(eventID)
	defer release()

	event, err := s.loadEventWithLists(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !s.IsLotteryAvailable(event) {
		return nil, fmt.Errorf("%w: registration period has not ended", domain.ErrNotAvailable)
	}

	availableSlots := event.AvailableSlots()
	if availableSlots <= 0 {
		return &domain.DrawResult{Message: "no available slots for lottery"}, nil
	}

	eligible := FilterEligible(event.Waitlist, event.InviteList, event.AcceptedList, event.DeclinedList)
	if len(eligible) == 0 {
		return &domain.DrawResult{Message: "no eligible entrants in waitlist"}, nil
	}

	selected := s.selectRandom(eligible, availableSlots)
	s.logger.Info("lottery draw selected entrants",
		"event_id", eventID,
		"eligible", len(eligible),
		"available_slots", availableSlots,
		"selected", len(selected),
	)

	return s.moveToInvitedAndNotify(ctx, event, selected)
}

// ResampleLottery replaces every pending invitation with a fresh draw.
// Pending invitees return to the waitlist first, so they remain eligible
// for re-selection and no entrant leaves the aggregate.
func (s *lotteryService) ResampleLottery(ctx context.Context, eventID string) (*domain.DrawResult, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrInvalidArgument)
	}

	release := s.locks.Acquire(eventID)
	defer release()

	event, err := s.loadEventWithLists(ctx, eventID)
	if err != nil {
		return nil, err
	}

	pending := event.InviteList.Entrants()
	slotsToFill := event.AvailableSlots() + len(pending)
	if slotsToFill <= 0 {
		return &domain.DrawResult{Message: "no slots available for re-sampling"}, nil
	}

	// Expire the invite records of current pending invitees and move them
	// back onto the waitlist before redrawing.
	for _, entrant := range pending {
		s.expirePendingInvite(ctx, eventID, entrant.Email)
		if err := s.listRepo.Move(ctx, eventID, domain.ListInvited, domain.ListWaitlist, entrant); err != nil {
			return nil, fmt.Errorf("return invitee to waitlist: %w", err)
		}
		event.InviteList.Remove(entrant.Email)
		event.Waitlist.Add(entrant)
	}

	eligible := FilterEligible(event.Waitlist, event.InviteList, event.AcceptedList, event.DeclinedList)
	if len(eligible) == 0 {
		return &domain.DrawResult{Message: "no eligible entrants available for re-sampling"}, nil
	}

	selected := s.selectRandom(eligible, slotsToFill)
	s.logger.Info("lottery re-sample",
		"event_id", eventID,
		"returned_invitees", len(pending),
		"slots_to_fill", slotsToFill,
		"selected", len(selected),
	)

	return s.moveToInvitedAndNotify(ctx, event, selected)
}

// CheckAvailability reports whether a draw would proceed for the event.
func (s *lotteryService) CheckAvailability(ctx context.Context, eventID string) (*domain.LotteryAvailability, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrInvalidArgument)
	}

	event, err := s.loadEventWithLists(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !s.IsLotteryAvailable(event) {
		return &domain.LotteryAvailability{Message: "lottery not available - registration period has not ended"}, nil
	}
	availableSlots := event.AvailableSlots()
	if availableSlots <= 0 {
		return &domain.LotteryAvailability{Message: "no available slots for lottery"}, nil
	}
	eligible := FilterEligible(event.Waitlist, event.InviteList, event.AcceptedList, event.DeclinedList)
	if len(eligible) == 0 {
		return &domain.LotteryAvailability{Message: "no eligible entrants in waitlist"}, nil
	}

	return &domain.LotteryAvailability{
		Available: true,
		Message:   fmt.Sprintf("lottery available - %d slots, %d eligible entrants", availableSlots, len(eligible)),
	}, nil
}

// IsLotteryAvailable reports whether the registration window has closed.
// The end date is inclusive: the gate opens once 23:59:59 of that day has
// passed. An unset end date keeps the gate closed.
func (s *lotteryService) IsLotteryAvailable(event *domain.Event) bool {
	if event.RegistrationEndDate == nil {
		return false
	}
	return s.now().After(endOfDay(*event.RegistrationEndDate))
}

// TimeUntilAvailable returns the remaining wait before the gate opens.
func (s *lotteryService) TimeUntilAvailable(event *domain.Event) time.Duration {
	if event.RegistrationEndDate == nil {
		return 0
	}
	remaining := endOfDay(*event.RegistrationEndDate).Sub(s.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// FilterEligible returns the waitlisted entrants not present in the invite,
// accepted, or declined lists, in waitlist order. Nil lists are treated as
// empty. The result is a fresh slice; no input is mutated.
func FilterEligible(waitlist, inviteList, acceptedList, declinedList *domain.EntrantList) []domain.Entrant {
	if waitlist == nil {
		return nil
	}

	excluded := make(map[string]struct{})
	for _, l := range []*domain.EntrantList{inviteList, acceptedList, declinedList} {
		if l == nil {
			continue
		}
		for email := range l.EmailSet() {
			excluded[email] = struct{}{}
		}
	}

	var eligible []domain.Entrant
	for _, e := range waitlist.Entrants() {
		if _, ok := excluded[e.Email]; !ok {
			eligible = append(eligible, e)
		}
	}
	return eligible
}

// selectRandom picks count entrants uniformly at random without
// replacement. When the pool is no larger than count everyone is selected
// and no shuffle runs.
func (s *lotteryService) selectRandom(eligible []domain.Entrant, count int) []domain.Entrant {
	if len(eligible) <= count {
		out := make([]domain.Entrant, len(eligible))
		copy(out, eligible)
		return out
	}

	shuffled := make([]domain.Entrant, len(eligible))
	copy(shuffled, eligible)
	s.shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:count]
}

// moveToInvitedAndNotify commits each selected entrant's move from the
// waitlist to the invite list, records an invite per entrant, and fans out
// one invitation notification. Persistence failure aborts with an error
// (already-moved entrants stay moved; each single move is idempotent).
// Notification failure only downgrades the result message.
func (s *lotteryService) moveToInvitedAndNotify(ctx context.Context, event *domain.Event, selected []domain.Entrant) (*domain.DrawResult, error) {
	now := s.now()
	expiresAt := now.Add(s.inviteTTL)

	emails := make([]string, 0, len(selected))
	for _, entrant := range selected {
		if err := s.listRepo.Move(ctx, event.ID, domain.ListWaitlist, domain.ListInvited, entrant); err != nil {
			return nil, fmt.Errorf("move entrant %s to invite list: %w", entrant.Email, err)
		}
		event.Waitlist.Remove(entrant.Email)
		event.InviteList.Add(entrant)

		inv := domain.NewInvite(event.ID, entrant.Email, event.Name, event.OrganizerEmail, expiresAt, now)
		inv.ID = uuid.NewString()
		if err := s.inviteRepo.Create(ctx, inv); err != nil {
			return nil, fmt.Errorf("create invite for %s: %w", entrant.Email, err)
		}
		emails = append(emails, entrant.Email)
	}

	result := &domain.DrawResult{
		SelectedCount:  len(emails),
		SelectedEmails: emails,
		Message:        fmt.Sprintf("lottery completed, %d entrants invited", len(emails)),
	}

	if err := s.sendInvitationNotifications(ctx, event, emails, expiresAt); err != nil {
		s.logger.Error("invitation notification failed", "event_id", event.ID, "recipients", len(emails), "err", err)
		result.Message = fmt.Sprintf("lottery completed, %d entrants invited, but some notifications failed", len(emails))
	}

	return result, nil
}

// expirePendingInvite marks the entrant's pending invite record expired.
// Best effort: a missing or already-resolved record is not an error.
func (s *lotteryService) expirePendingInvite(ctx context.Context, eventID, email string) {
	inv, err := s.inviteRepo.GetByEventAndRecipient(ctx, eventID, email)
	if err != nil {
		return
	}
	if inv.Status != domain.InviteStatusPending {
		return
	}
	if err := s.inviteRepo.UpdateStatus(ctx, inv.ID, domain.InviteStatusExpired); err != nil {
		s.logger.Warn("failed to expire invite", "invite_id", inv.ID, "err", err)
	}
}

// loadEventWithLists fetches the event row and all four entrant lists.
func (s *lotteryService) loadEventWithLists(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	for _, name := range domain.ListNames {
		list, err := s.listRepo.Load(ctx, eventID, name)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		switch name {
		case domain.ListWaitlist:
			event.Waitlist = list
		case domain.ListInvited:
			event.InviteList = list
		case domain.ListAccepted:
			event.AcceptedList = list
		case domain.ListDeclined:
			event.DeclinedList = list
		}
	}
	return event, nil
}
