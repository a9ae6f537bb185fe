package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventlottery/internal/domain"
)

type inviteRepository struct {
	DB *sql.DB
}

func NewInviteRepository(db *sql.DB) domain.InviteRepository {
	return &inviteRepository{
		DB: db,
	}
}

func (r *inviteRepository) Create(ctx context.Context, inv *domain.Invite) error {
	query := `
		INSERT INTO invites (id, event_id, recipient_email, event_name, organizer_email, status, message, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		inv.ID, inv.EventID, inv.RecipientEmail, inv.EventName, inv.OrganizerEmail,
		string(inv.Status), inv.Message, inv.ExpiresAt, inv.CreatedAt)
	return err
}

// GetByEventAndRecipient returns the most recent invite for the entrant in
// the event. Resamples can leave several records per pair; the latest one
// is the live invitation.
func (r *inviteRepository) GetByEventAndRecipient(ctx context.Context, eventID, email string) (*domain.Invite, error) {
	query := `
		SELECT id, event_id, recipient_email, event_name, organizer_email, status, message, expires_at, created_at
		FROM invites
		WHERE event_id = $1 AND recipient_email = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	inv := &domain.Invite{}
	var status string
	err := r.DB.QueryRowContext(ctx, query, eventID, domain.NormalizeEmail(email)).
		Scan(&inv.ID, &inv.EventID, &inv.RecipientEmail, &inv.EventName, &inv.OrganizerEmail,
			&status, &inv.Message, &inv.ExpiresAt, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	inv.Status = domain.InviteStatus(status)
	return inv, nil
}

func (r *inviteRepository) UpdateStatus(ctx context.Context, inviteID string, status domain.InviteStatus) error {
	query := `
		UPDATE invites
		SET status = $2
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, inviteID, string(status))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *inviteRepository) ListPendingExpired(ctx context.Context, now time.Time) ([]*domain.Invite, error) {
	query := `
		SELECT id, event_id, recipient_email, event_name, organizer_email, status, message, expires_at, created_at
		FROM invites
		WHERE status = 'pending' AND expires_at < $1
		ORDER BY expires_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []*domain.Invite
	for rows.Next() {
		inv := &domain.Invite{}
		var status string
		if err := rows.Scan(&inv.ID, &inv.EventID, &inv.RecipientEmail, &inv.EventName, &inv.OrganizerEmail,
			&status, &inv.Message, &inv.ExpiresAt, &inv.CreatedAt); err != nil {
			return nil, err
		}
		inv.Status = domain.InviteStatus(status)
		invites = append(invites, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if invites == nil {
		invites = []*domain.Invite{}
	}
	return invites, nil
}
