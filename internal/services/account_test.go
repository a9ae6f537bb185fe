package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventlottery/internal/domain"
)

// fakeAccountRepo is an in-memory AccountRepository for tests.
type fakeAccountRepo struct {
	byEmail map[string]*domain.Account
	nextID  int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byEmail: make(map[string]*domain.Account)}
}

func (f *fakeAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	f.nextID++
	a.ID = fmt.Sprintf("acc-%d", f.nextID)
	cp := *a
	f.byEmail[a.Email] = &cp
	return nil
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// fakeHasher prefixes instead of hashing so tests can see through it.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

func TestAccountRegister(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAccountService(repo, fakeHasher{}, testLogger())

	account, err := svc.Register(context.Background(), domain.RoleEntrant, "Ada", "Ada@Example.com", "555-0100", "s3cret")
	require.NoError(t, err)

	require.NotEmpty(t, account.ID)
	assert.Equal(t, "ada@example.com", account.Email)
	assert.Equal(t, domain.RoleEntrant, account.Role)
	assert.Equal(t, "hashed:s3cret", account.PasswordHash)

	entrant := account.Entrant()
	assert.Equal(t, "ada@example.com", entrant.Email)
	assert.Equal(t, "Ada", entrant.Name)
}

func TestAccountRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAccountService(repo, fakeHasher{}, testLogger())

	_, err := svc.Register(context.Background(), domain.RoleEntrant, "Ada", "ada@example.com", "", "pw")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), domain.RoleOrganizer, "Ada Again", "ADA@example.com", "", "pw")
	require.ErrorIs(t, err, domain.ErrAlreadyListed)
}

func TestAccountRegister_Validation(t *testing.T) {
	svc := NewAccountService(newFakeAccountRepo(), fakeHasher{}, testLogger())

	_, err := svc.Register(context.Background(), domain.RoleEntrant, "Ada", "  ", "", "pw")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.Register(context.Background(), "superuser", "Ada", "ada@example.com", "", "pw")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestAccountGetByEmail(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAccountService(repo, fakeHasher{}, testLogger())

	_, err := svc.GetByEmail(context.Background(), "missing@example.com")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Register(context.Background(), domain.RoleAdmin, "Root", "root@example.com", "", "pw")
	require.NoError(t, err)

	account, err := svc.GetByEmail(context.Background(), "ROOT@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, account.Role)
}
