package services

import (
	"context"
	"fmt"
	"time"

	"eventlottery/internal/domain"
)

// sendInvitationNotifications fans out one invitation message to every
// selected entrant as a single batch.
func (s *lotteryService) sendInvitationNotifications(ctx context.Context, event *domain.Event, emails []string, expiresAt time.Time) error {
	if len(emails) == 0 {
		return nil
	}
	title := fmt.Sprintf("You're invited: %s", event.Name)
	body := fmt.Sprintf(
		"Congratulations! You have been selected from the waitlist for %s, organized by %s. "+
			"Please accept or decline your invitation before %s.",
		event.Name, event.OrganizerEmail, expiresAt.Format(time.RFC1123),
	)
	return s.notifier.SendToRecipients(ctx, emails, title, body)
}

// sendConfirmationNotification tells the responding entrant their choice
// was recorded. Failures are logged, never propagated.
func (s *lotteryService) sendConfirmationNotification(ctx context.Context, event *domain.Event, entrant domain.Entrant, accepted bool) {
	var title, body string
	if accepted {
		title = fmt.Sprintf("Registration confirmed: %s", event.Name)
		body = fmt.Sprintf("You have accepted your invitation to %s. Your spot is confirmed.", event.Name)
	} else {
		title = fmt.Sprintf("Invitation declined: %s", event.Name)
		body = fmt.Sprintf("You have declined your invitation to %s. Your spot has been released.", event.Name)
	}
	if err := s.notifier.SendToRecipients(ctx, []string{entrant.Email}, title, body); err != nil {
		s.logger.Warn("confirmation notification failed", "event_id", event.ID, "entrant", entrant.Email, "err", err)
	}
}

// sendExpiryNotification tells an entrant their invitation lapsed.
func (s *lotteryService) sendExpiryNotification(ctx context.Context, inv *domain.Invite) {
	title := fmt.Sprintf("Invitation expired: %s", inv.EventName)
	body := fmt.Sprintf("Your invitation for %s has expired because no response was received in time.", inv.EventName)
	if err := s.notifier.SendToRecipients(ctx, []string{inv.RecipientEmail}, title, body); err != nil {
		s.logger.Warn("expiry notification failed", "event_id", inv.EventID, "entrant", inv.RecipientEmail, "err", err)
	}
}
