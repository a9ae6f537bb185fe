package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventlottery/internal/domain"
)

type eventService struct {
	eventRepo domain.EventRepository
	logger    *slog.Logger
	now       func() time.Time
}

// NewEventService creates the event management service.
func NewEventService(eventRepo domain.EventRepository, logger *slog.Logger) domain.EventService {
	return &eventService{
		eventRepo: eventRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// Create stores a new event with empty lists.
func (s *eventService) Create(ctx context.Context, name, organizerEmail string, entrantLimit int, regEndDate *time.Time) (*domain.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: event name is required", domain.ErrInvalidArgument)
	}
	organizerEmail = domain.NormalizeEmail(organizerEmail)
	if organizerEmail == "" {
		return nil, fmt.Errorf("%w: organizer email is required", domain.ErrInvalidArgument)
	}
	if entrantLimit < 0 {
		return nil, fmt.Errorf("%w: entrant limit must not be negative", domain.ErrInvalidArgument)
	}

	now := s.now()
	event := domain.NewEvent(name, organizerEmail, entrantLimit, regEndDate, now, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.logger.Info("event created", "event_id", event.ID, "name", event.Name, "entrant_limit", event.EntrantLimit)
	return event, nil
}

// Get returns the event by id.
func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrInvalidArgument)
	}
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// UpdateSettings changes the entrant limit and registration end date.
// Shrinking the limit below the accepted count is allowed; already accepted
// entrants keep their seats and AvailableSlots clamps at zero.
func (s *eventService) UpdateSettings(ctx context.Context, id string, entrantLimit int, regEndDate *time.Time) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: event id is required", domain.ErrInvalidArgument)
	}
	if entrantLimit < 0 {
		return fmt.Errorf("%w: entrant limit must not be negative", domain.ErrInvalidArgument)
	}
	if err := s.eventRepo.UpdateSettings(ctx, id, entrantLimit, regEndDate); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update event settings: %w", err)
	}
	s.logger.Info("event settings updated", "event_id", id, "entrant_limit", entrantLimit)
	return nil
}
