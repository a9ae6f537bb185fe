package domain

import (
	"context"
	"time"
)

// Role tags an account as entrant, organizer, or admin. Role-specific
// behavior dispatches on this tag; there is no account subtyping.
type Role string

const (
	RoleEntrant   Role = "entrant"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleEntrant, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// Account is a registered user of any role. Entrant accounts are the
// source of the Entrant identity values moved between event lists.
// swagger:model Account
type Account struct {
	ID           string    `json:"id"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Entrant returns the account's list-membership identity value.
func (a *Account) Entrant() Entrant {
	return Entrant{
		Name:         a.Name,
		Email:        NormalizeEmail(a.Email),
		Phone:        a.Phone,
		PasswordHash: a.PasswordHash,
	}
}

// AccountRepository defines storage operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

// PasswordHasher hashes and verifies account passwords.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
