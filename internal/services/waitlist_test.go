package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventlottery/internal/domain"
)

type waitlistFixture struct {
	events *fakeEventRepo
	lists  *fakeListRepo
	svc    domain.WaitlistService
}

func newWaitlistFixture(t *testing.T) *waitlistFixture {
	t.Helper()
	f := &waitlistFixture{
		events: newFakeEventRepo(),
		lists:  newFakeListRepo(),
	}
	f.svc = NewWaitlistService(f.events, f.lists, testLogger(), NewLockRegistry())
	return f
}

func TestWaitlistJoin(t *testing.T) {
	f := newWaitlistFixture(t)
	end := time.Now().AddDate(0, 0, 7)
	eventID := f.events.add("Gala", 5, &end)

	err := f.svc.Join(context.Background(), eventID, domain.NewEntrant("Ada", "Ada@Example.com", "555-0100"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ada@example.com"}, f.lists.emails(eventID, domain.ListWaitlist))
}

func TestWaitlistJoin_AlreadyOnAList(t *testing.T) {
	for _, list := range domain.ListNames {
		t.Run(string(list), func(t *testing.T) {
			f := newWaitlistFixture(t)
			eventID := f.events.add("Gala", 5, nil)
			f.lists.seed(eventID, list, "ada@example.com")

			err := f.svc.Join(context.Background(), eventID, domain.NewEntrant("Ada", "ada@example.com", ""))
			require.ErrorIs(t, err, domain.ErrAlreadyListed)
		})
	}
}

func TestWaitlistJoin_EventNotFound(t *testing.T) {
	f := newWaitlistFixture(t)
	err := f.svc.Join(context.Background(), "missing", domain.NewEntrant("Ada", "ada@example.com", ""))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWaitlistJoin_InvalidArguments(t *testing.T) {
	f := newWaitlistFixture(t)
	eventID := f.events.add("Gala", 5, nil)

	err := f.svc.Join(context.Background(), "", domain.NewEntrant("Ada", "ada@example.com", ""))
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	err = f.svc.Join(context.Background(), eventID, domain.NewEntrant("Ada", "  ", ""))
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestWaitlistJoin_StorageFailure(t *testing.T) {
	f := newWaitlistFixture(t)
	eventID := f.events.add("Gala", 5, nil)
	f.lists.addErr = assert.AnError

	err := f.svc.Join(context.Background(), eventID, domain.NewEntrant("Ada", "ada@example.com", ""))
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, f.lists.count(eventID, domain.ListWaitlist))
}

func TestWaitlistLeave(t *testing.T) {
	f := newWaitlistFixture(t)
	eventID := f.events.add("Gala", 5, nil)
	f.lists.seed(eventID, domain.ListWaitlist, "ada@example.com", "bob@example.com")

	err := f.svc.Leave(context.Background(), eventID, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob@example.com"}, f.lists.emails(eventID, domain.ListWaitlist))
}

func TestWaitlistLeave_NotOnWaitlist(t *testing.T) {
	f := newWaitlistFixture(t)
	eventID := f.events.add("Gala", 5, nil)
	// invited entrants cannot withdraw through the waitlist
	f.lists.seed(eventID, domain.ListInvited, "ada@example.com")

	err := f.svc.Leave(context.Background(), eventID, "ada@example.com")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"ada@example.com"}, f.lists.emails(eventID, domain.ListInvited))
}

func TestWaitlistList(t *testing.T) {
	f := newWaitlistFixture(t)
	eventID := f.events.add("Gala", 5, nil)
	f.lists.seed(eventID, domain.ListAccepted, "a1@example.com", "a2@example.com")

	got, err := f.svc.List(context.Background(), eventID, domain.ListAccepted)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1@example.com", "a2@example.com"}, got.Emails())
}

func TestWaitlistList_UnknownListName(t *testing.T) {
	f := newWaitlistFixture(t)
	eventID := f.events.add("Gala", 5, nil)

	_, err := f.svc.List(context.Background(), eventID, "vipList")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestWaitlistList_EventNotFound(t *testing.T) {
	f := newWaitlistFixture(t)
	_, err := f.svc.List(context.Background(), "missing", domain.ListWaitlist)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
