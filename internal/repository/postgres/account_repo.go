package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventlottery/internal/domain"
)

type accountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) domain.AccountRepository {
	return &accountRepository{
		DB: db,
	}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (role, name, email, phone, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		string(account.Role), account.Name, account.Email, account.Phone,
		account.PasswordHash, account.CreatedAt, account.UpdatedAt).
		Scan(&account.ID)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `
		SELECT id, role, name, email, phone, password_hash, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`
	account := &domain.Account{}
	var role string
	err := r.DB.QueryRowContext(ctx, query, domain.NormalizeEmail(email)).
		Scan(&account.ID, &role, &account.Name, &account.Email, &account.Phone,
			&account.PasswordHash, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	account.Role = domain.Role(role)
	return account, nil
}
