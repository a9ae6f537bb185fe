package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventlottery/internal/domain"
)

// Respond records an entrant's accept or decline of a pending invitation.
// The entrant must currently be on the invite list; a second response after
// a terminal state fails with ErrNotInvited. Accepting re-checks the
// capacity bound. Declining frees a seat and, when backfill is enabled,
// triggers a single-slot redraw whose failure never fails the decline.
func (s *lotteryService) Respond(ctx context.Context, eventID, entrantEmail string, accepted bool) (*domain.ResponseResult, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrInvalidArgument)
	}
	entrantEmail = domain.NormalizeEmail(entrantEmail)
	if entrantEmail == "" {
		return nil, fmt.Errorf("%w: entrant email is required", domain.ErrInvalidArgument)
	}

	release := s.locks.Acquire(eventID)
	defer release()

	return s.respondLocked(ctx, eventID, entrantEmail, accepted, true)
}

// respondLocked performs the response transition. The caller must hold the
// event lock. updateRecord controls whether the invite record is flipped to
// accepted/declined; the expiry sweep sets it false because it has already
// marked the record expired.
func (s *lotteryService) respondLocked(ctx context.Context, eventID, entrantEmail string, accepted, updateRecord bool) (*domain.ResponseResult, error) {
	event, err := s.loadEventWithLists(ctx, eventID)
	if err != nil {
		return nil, err
	}

	entrant, ok := event.InviteList.Get(entrantEmail)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no pending invitation", domain.ErrNotInvited, entrantEmail)
	}

	if accepted {
		// The draw engine sizes invitations to open slots, but stale or
		// duplicate invites could still overfill; re-check the bound.
		if event.AcceptedList.Size() >= event.EntrantLimit {
			return nil, fmt.Errorf("%w: event is full (%d accepted of %d)",
				domain.ErrCapacityExceeded, event.AcceptedList.Size(), event.EntrantLimit)
		}
		if err := s.listRepo.Move(ctx, eventID, domain.ListInvited, domain.ListAccepted, entrant); err != nil {
			return nil, fmt.Errorf("move entrant to accepted list: %w", err)
		}
		event.InviteList.Remove(entrant.Email)
		event.AcceptedList.Add(entrant)

		if updateRecord {
			s.resolveInviteRecord(ctx, eventID, entrantEmail, domain.InviteStatusAccepted)
		}
		s.sendConfirmationNotification(ctx, event, entrant, true)
		s.logger.Info("invitation accepted", "event_id", eventID, "entrant", entrantEmail)
		return &domain.ResponseResult{Accepted: true}, nil
	}

	if err := s.listRepo.Move(ctx, eventID, domain.ListInvited, domain.ListDeclined, entrant); err != nil {
		return nil, fmt.Errorf("move entrant to declined list: %w", err)
	}
	event.InviteList.Remove(entrant.Email)
	event.DeclinedList.Add(entrant)

	if updateRecord {
		s.resolveInviteRecord(ctx, eventID, entrantEmail, domain.InviteStatusDeclined)
	}
	s.sendConfirmationNotification(ctx, event, entrant, false)
	s.logger.Info("invitation declined", "event_id", eventID, "entrant", entrantEmail)

	result := &domain.ResponseResult{}
	if s.backfill {
		// The decline is already committed; backfill is best effort.
		backfilled, err := s.backfillOne(ctx, event)
		if err != nil {
			s.logger.Error("backfill draw after decline failed", "event_id", eventID, "err", err)
		} else {
			result.BackfillCount = backfilled
		}
	}
	return result, nil
}

// backfillOne redraws a single seat after a decline using the already
// loaded (and updated) event state. The caller must hold the event lock.
func (s *lotteryService) backfillOne(ctx context.Context, event *domain.Event) (int, error) {
	if event.AvailableSlots() <= 0 {
		return 0, nil
	}
	eligible := FilterEligible(event.Waitlist, event.InviteList, event.AcceptedList, event.DeclinedList)
	if len(eligible) == 0 {
		return 0, nil
	}

	selected := s.selectRandom(eligible, 1)
	result, err := s.moveToInvitedAndNotify(ctx, event, selected)
	if err != nil {
		return 0, err
	}
	s.logger.Info("backfill invited replacement", "event_id", event.ID, "selected", result.SelectedEmails)
	return result.SelectedCount, nil
}

// SweepExpiredInvites expires every pending invitation whose response
// window has closed and auto-declines the entrant, which may in turn
// backfill the seat. Returns the number of invites processed.
func (s *lotteryService) SweepExpiredInvites(ctx context.Context) (int, error) {
	expired, err := s.inviteRepo.ListPendingExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("list expired invites: %w", err)
	}

	processed := 0
	for _, inv := range expired {
		if err := s.inviteRepo.UpdateStatus(ctx, inv.ID, domain.InviteStatusExpired); err != nil {
			s.logger.Error("failed to expire invite", "invite_id", inv.ID, "err", err)
			continue
		}

		release := s.locks.Acquire(inv.EventID)
		_, err := s.respondLocked(ctx, inv.EventID, inv.RecipientEmail, false, false)
		release()
		if err != nil {
			if errors.Is(err, domain.ErrNotInvited) {
				// Entrant responded between listing and locking; the record
				// flip above was the only thing left to do.
				processed++
				continue
			}
			s.logger.Error("auto-decline for expired invite failed",
				"event_id", inv.EventID, "entrant", inv.RecipientEmail, "err", err)
			continue
		}

		s.sendExpiryNotification(ctx, inv)
		processed++
	}

	if processed > 0 {
		s.logger.Info("expired invite sweep complete", "processed", processed)
	}
	return processed, nil
}

// resolveInviteRecord flips the entrant's pending invite record to a
// terminal status. Best effort: the list move is the authoritative state.
func (s *lotteryService) resolveInviteRecord(ctx context.Context, eventID, email string, status domain.InviteStatus) {
	inv, err := s.inviteRepo.GetByEventAndRecipient(ctx, eventID, email)
	if err != nil {
		s.logger.Warn("invite record not found for response", "event_id", eventID, "entrant", email)
		return
	}
	if err := s.inviteRepo.UpdateStatus(ctx, inv.ID, status); err != nil {
		s.logger.Warn("failed to update invite record", "invite_id", inv.ID, "status", status, "err", err)
	}
}
