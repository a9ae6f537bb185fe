package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventlottery/internal/domain"
)

// entrantListRepository stores the four per-event entrant lists in one
// table keyed by (event_id, list_name, email). Insertion order is kept via
// an auto-incrementing position column.
type entrantListRepository struct {
	DB *sql.DB
}

func NewEntrantListRepository(db *sql.DB) domain.EntrantListRepository {
	return &entrantListRepository{
		DB: db,
	}
}

func (r *entrantListRepository) Load(ctx context.Context, eventID string, list domain.ListName) (*domain.EntrantList, error) {
	query := `
		SELECT name, email, phone, password_hash
		FROM event_entrants
		WHERE event_id = $1 AND list_name = $2
		ORDER BY position ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, string(list))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := domain.NewEntrantList()
	for rows.Next() {
		var e domain.Entrant
		if err := rows.Scan(&e.Name, &e.Email, &e.Phone, &e.PasswordHash); err != nil {
			return nil, err
		}
		result.Add(e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Add inserts the entrant into the named list. Idempotent: re-adding the
// same email to the same list is a no-op, so a retried move cannot create
// duplicates.
func (r *entrantListRepository) Add(ctx context.Context, eventID string, list domain.ListName, entrant domain.Entrant) error {
	query := `
		INSERT INTO event_entrants (event_id, list_name, email, name, phone, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id, list_name, email) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query,
		eventID, string(list), domain.NormalizeEmail(entrant.Email),
		entrant.Name, entrant.Phone, entrant.PasswordHash)
	return err
}

// Remove deletes the entrant from the named list. Idempotent: removing an
// absent entrant is a no-op.
func (r *entrantListRepository) Remove(ctx context.Context, eventID string, list domain.ListName, email string) error {
	query := `
		DELETE FROM event_entrants
		WHERE event_id = $1 AND list_name = $2 AND email = $3
	`
	_, err := r.DB.ExecContext(ctx, query, eventID, string(list), domain.NormalizeEmail(email))
	return err
}

// Move relocates one entrant between lists in a single transaction, so a
// partially applied multi-entrant draw never strands an entrant in two
// lists or in none.
func (r *entrantListRepository) Move(ctx context.Context, eventID string, from, to domain.ListName, entrant domain.Entrant) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin move: %w", err)
	}
	defer tx.Rollback()

	email := domain.NormalizeEmail(entrant.Email)
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM event_entrants
		WHERE event_id = $1 AND list_name = $2 AND email = $3
	`, eventID, string(from), email); err != nil {
		return fmt.Errorf("remove from %s: %w", from, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO event_entrants (event_id, list_name, email, name, phone, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id, list_name, email) DO NOTHING
	`, eventID, string(to), email, entrant.Name, entrant.Phone, entrant.PasswordHash); err != nil {
		return fmt.Errorf("add to %s: %w", to, err)
	}

	return tx.Commit()
}
