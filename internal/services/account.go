package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventlottery/internal/domain"
)

// AccountService registers role-tagged accounts.
type AccountService interface {
	Register(ctx context.Context, role domain.Role, name, email, phone, password string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type accountService struct {
	repo   domain.AccountRepository
	hasher domain.PasswordHasher
	logger *slog.Logger
}

// NewAccountService creates an AccountService backed by the given
// repository and password hasher.
func NewAccountService(repo domain.AccountRepository, hasher domain.PasswordHasher, logger *slog.Logger) AccountService {
	return &accountService{repo: repo, hasher: hasher, logger: logger}
}

func (s *accountService) Register(ctx context.Context, role domain.Role, name, email, phone, password string) (*domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidArgument)
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidArgument, role)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: account %s already exists", domain.ErrAlreadyListed, email)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get account: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	account := &domain.Account{
		Role:         role,
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	s.logger.Info("account registered", "email", email, "role", role)
	return account, nil
}

func (s *accountService) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}
