package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventlottery/internal/domain"
)

func TestEventCreate(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, testLogger())

	end := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	event, err := svc.Create(context.Background(), "  Gala  ", "Organizer@Example.com", 50, &end)
	require.NoError(t, err)

	require.NotEmpty(t, event.ID)
	assert.Equal(t, "Gala", event.Name)
	assert.Equal(t, "organizer@example.com", event.OrganizerEmail)
	assert.Equal(t, 50, event.EntrantLimit)
	require.NotNil(t, event.RegistrationEndDate)
	assert.False(t, event.CreatedAt.IsZero())
	assert.NotNil(t, event.Waitlist)
	assert.Equal(t, 0, event.Waitlist.Size())
}

func TestEventCreate_Validation(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), testLogger())

	tests := []struct {
		name           string
		eventName      string
		organizerEmail string
		limit          int
	}{
		{name: "missing name", eventName: " ", organizerEmail: "o@example.com", limit: 5},
		{name: "missing organizer", eventName: "Gala", organizerEmail: "", limit: 5},
		{name: "negative limit", eventName: "Gala", organizerEmail: "o@example.com", limit: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.eventName, tt.organizerEmail, tt.limit, nil)
			require.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestEventCreate_StorageFailure(t *testing.T) {
	repo := newFakeEventRepo()
	repo.err = assert.AnError
	svc := NewEventService(repo, testLogger())

	_, err := svc.Create(context.Background(), "Gala", "o@example.com", 5, nil)
	require.ErrorIs(t, err, assert.AnError)
}

func TestEventGet_NotFound(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), testLogger())
	_, err := svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventUpdateSettings(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, testLogger())
	eventID := repo.add("Gala", 50, nil)

	end := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.UpdateSettings(context.Background(), eventID, 30, &end))

	stored, err := repo.GetByID(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, 30, stored.EntrantLimit)
	require.NotNil(t, stored.RegistrationEndDate)
	assert.True(t, stored.RegistrationEndDate.Equal(end))
}

func TestEventUpdateSettings_Errors(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, testLogger())
	eventID := repo.add("Gala", 50, nil)

	err := svc.UpdateSettings(context.Background(), eventID, -5, nil)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	err = svc.UpdateSettings(context.Background(), "missing", 10, nil)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventAvailableSlots(t *testing.T) {
	event := domain.NewEvent("Gala", "o@example.com", 2, nil, time.Now(), time.Now())
	assert.Equal(t, 2, event.AvailableSlots())

	event.AcceptedList.Add(domain.NewEntrant("A", "a@example.com", ""))
	assert.Equal(t, 1, event.AvailableSlots())

	event.AcceptedList.Add(domain.NewEntrant("B", "b@example.com", ""))
	event.AcceptedList.Add(domain.NewEntrant("C", "c@example.com", ""))
	// over-filled lists never report negative capacity
	assert.Equal(t, 0, event.AvailableSlots())
}
