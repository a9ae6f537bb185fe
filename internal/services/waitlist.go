package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"eventlottery/internal/domain"
)

type waitlistService struct {
	eventRepo domain.EventRepository
	listRepo  domain.EntrantListRepository
	logger    *slog.Logger
	locks     *LockRegistry
}

// NewWaitlistService creates the waitlist membership service. It shares the
// lock registry with the lottery service so joins and leaves serialize with
// draws on the same event.
func NewWaitlistService(eventRepo domain.EventRepository, listRepo domain.EntrantListRepository, logger *slog.Logger, locks *LockRegistry) domain.WaitlistService {
	if locks == nil {
		locks = NewLockRegistry()
	}
	return &waitlistService{
		eventRepo: eventRepo,
		listRepo:  listRepo,
		logger:    logger,
		locks:     locks,
	}
}

// Join adds the entrant to the event's waitlist. An entrant already present
// in any of the four lists is rejected with ErrAlreadyListed.
func (s *waitlistService) Join(ctx context.Context, eventID string, entrant domain.Entrant) error {
	if strings.TrimSpace(eventID) == "" {
		return fmt.Errorf("%w: event id is required", domain.ErrInvalidArgument)
	}
	entrant.Email = domain.NormalizeEmail(entrant.Email)
	if entrant.Email == "" {
		return fmt.Errorf("%w: entrant email is required", domain.ErrInvalidArgument)
	}

	release := s.locks.Acquire(eventID)
	defer release()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}

	for _, name := range domain.ListNames {
		list, err := s.listRepo.Load(ctx, eventID, name)
		if err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		if list.Contains(entrant.Email) {
			return fmt.Errorf("%w: %s is already on %s", domain.ErrAlreadyListed, entrant.Email, name)
		}
	}

	if err := s.listRepo.Add(ctx, eventID, domain.ListWaitlist, entrant); err != nil {
		return fmt.Errorf("add to waitlist: %w", err)
	}
	s.logger.Info("entrant joined waitlist", "event_id", eventID, "entrant", entrant.Email)
	return nil
}

// Leave removes the entrant from the waitlist. Leaving is only valid while
// still waitlisted; entrants in any other list cannot be removed here.
func (s *waitlistService) Leave(ctx context.Context, eventID, email string) error {
	if strings.TrimSpace(eventID) == "" {
		return fmt.Errorf("%w: event id is required", domain.ErrInvalidArgument)
	}
	email = domain.NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: entrant email is required", domain.ErrInvalidArgument)
	}

	release := s.locks.Acquire(eventID)
	defer release()

	waitlist, err := s.listRepo.Load(ctx, eventID, domain.ListWaitlist)
	if err != nil {
		return fmt.Errorf("load waitlist: %w", err)
	}
	if !waitlist.Contains(email) {
		return fmt.Errorf("%w: %s is not on the waitlist", domain.ErrNotFound, email)
	}

	if err := s.listRepo.Remove(ctx, eventID, domain.ListWaitlist, email); err != nil {
		return fmt.Errorf("remove from waitlist: %w", err)
	}
	s.logger.Info("entrant left waitlist", "event_id", eventID, "entrant", email)
	return nil
}

// List returns the named entrant list for an event.
func (s *waitlistService) List(ctx context.Context, eventID string, list domain.ListName) (*domain.EntrantList, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrInvalidArgument)
	}
	if !domain.ValidListName(list) {
		return nil, fmt.Errorf("%w: unknown list %q", domain.ErrInvalidArgument, list)
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	entrants, err := s.listRepo.Load(ctx, eventID, list)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", list, err)
	}
	return entrants, nil
}
