package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntrantList_AddDeduplicatesByEmail(t *testing.T) {
	l := NewEntrantList()

	require.True(t, l.Add(NewEntrant("Ada", "ada@example.com", "")))
	require.False(t, l.Add(NewEntrant("Ada Again", "ADA@Example.com ", "")))
	require.False(t, l.Add(Entrant{Name: "No Email"}))

	assert.Equal(t, 1, l.Size())
	got, ok := l.Get("ada@example.com")
	require.True(t, ok)
	assert.Equal(t, "Ada", got.Name)
}

func TestEntrantList_OrderAndRemove(t *testing.T) {
	l := NewEntrantListOf(
		NewEntrant("C", "c@x.com", ""),
		NewEntrant("A", "a@x.com", ""),
		NewEntrant("B", "b@x.com", ""),
	)
	assert.Equal(t, []string{"c@x.com", "a@x.com", "b@x.com"}, l.Emails())
	assert.Equal(t, "a@x.com", l.At(1).Email)

	require.True(t, l.Remove("A@x.com"))
	require.False(t, l.Remove("a@x.com"))
	assert.Equal(t, []string{"c@x.com", "b@x.com"}, l.Emails())
}

func TestEntrantList_EntrantsReturnsCopy(t *testing.T) {
	l := NewEntrantListOf(NewEntrant("A", "a@x.com", ""))
	out := l.Entrants()
	out[0].Email = "mutated@x.com"
	assert.True(t, l.Contains("a@x.com"))
}

func TestValidListName(t *testing.T) {
	for _, name := range ListNames {
		assert.True(t, ValidListName(name))
	}
	assert.False(t, ValidListName("vipList"))
}

func TestInviteIsExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	inv := NewInvite("ev-1", "ada@example.com", "Gala", "o@example.com", now.Add(24*time.Hour), now)

	assert.Equal(t, InviteStatusPending, inv.Status)
	assert.False(t, inv.IsExpired(now.Add(23*time.Hour)))
	assert.True(t, inv.IsExpired(now.Add(25*time.Hour)))
}
