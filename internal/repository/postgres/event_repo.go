package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventlottery/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (name, organizer_email, entrant_limit, registration_end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		event.Name, event.OrganizerEmail, event.EntrantLimit, event.RegistrationEndDate,
		event.CreatedAt, event.UpdatedAt).
		Scan(&event.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, organizer_email, entrant_limit, registration_end_date, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	event := &domain.Event{}
	var regEnd sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&event.ID, &event.Name, &event.OrganizerEmail, &event.EntrantLimit,
			&regEnd, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if regEnd.Valid {
		t := regEnd.Time
		event.RegistrationEndDate = &t
	}
	return event, nil
}

func (r *eventRepository) UpdateSettings(ctx context.Context, id string, entrantLimit int, regEndDate *time.Time) error {
	query := `
		UPDATE events
		SET entrant_limit = $2, registration_end_date = $3, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, id, entrantLimit, regEndDate)
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
