package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"eventlottery/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
	err    error // if set, every call returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	// Return a shallow copy so tests can compare stored state after the
	// service mutates the loaded aggregate.
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) UpdateSettings(ctx context.Context, id string, entrantLimit int, regEndDate *time.Time) error {
	if f.err != nil {
		return f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.EntrantLimit = entrantLimit
	e.RegistrationEndDate = regEndDate
	return nil
}

// add seeds an event and returns its id.
func (f *fakeEventRepo) add(name string, limit int, regEnd *time.Time) string {
	e := domain.NewEvent(name, "organizer@example.com", limit, regEnd, time.Now(), time.Now())
	_ = f.Create(context.Background(), e)
	return e.ID
}

// fakeListRepo is an in-memory EntrantListRepository for tests.
type fakeListRepo struct {
	mu    sync.Mutex
	lists map[string]map[domain.ListName][]domain.Entrant

	loadErr error
	addErr  error
	moveErr error
	// number of Move calls that succeed before moveErr kicks in
	movesBeforeErr int
}

func newFakeListRepo() *fakeListRepo {
	return &fakeListRepo{lists: make(map[string]map[domain.ListName][]domain.Entrant)}
}

func (f *fakeListRepo) Load(ctx context.Context, eventID string, list domain.ListName) (*domain.EntrantList, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.NewEntrantListOf(f.lists[eventID][list]...), nil
}

func (f *fakeListRepo) Add(ctx context.Context, eventID string, list domain.ListName, entrant domain.Entrant) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addLocked(eventID, list, entrant)
	return nil
}

func (f *fakeListRepo) Remove(ctx context.Context, eventID string, list domain.ListName, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeLocked(eventID, list, email)
	return nil
}

func (f *fakeListRepo) Move(ctx context.Context, eventID string, from, to domain.ListName, entrant domain.Entrant) error {
	if f.moveErr != nil {
		if f.movesBeforeErr == 0 {
			return f.moveErr
		}
		f.movesBeforeErr--
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeLocked(eventID, from, entrant.Email)
	f.addLocked(eventID, to, entrant)
	return nil
}

func (f *fakeListRepo) addLocked(eventID string, list domain.ListName, entrant domain.Entrant) {
	for _, e := range f.lists[eventID][list] {
		if e.Email == entrant.Email {
			return
		}
	}
	if f.lists[eventID] == nil {
		f.lists[eventID] = make(map[domain.ListName][]domain.Entrant)
	}
	f.lists[eventID][list] = append(f.lists[eventID][list], entrant)
}

func (f *fakeListRepo) removeLocked(eventID string, list domain.ListName, email string) {
	entries := f.lists[eventID][list]
	for i, e := range entries {
		if e.Email == email {
			f.lists[eventID][list] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// seed puts entrants (by email) onto a list, generating names from emails.
func (f *fakeListRepo) seed(eventID string, list domain.ListName, emails ...string) {
	for _, email := range emails {
		f.addLocked(eventID, list, domain.NewEntrant(email, email, ""))
	}
}

// emails returns the list's member emails in order.
func (f *fakeListRepo) emails(eventID string, list domain.ListName) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.lists[eventID][list]))
	for _, e := range f.lists[eventID][list] {
		out = append(out, e.Email)
	}
	return out
}

// count returns the list's size.
func (f *fakeListRepo) count(eventID string, list domain.ListName) int {
	return len(f.emails(eventID, list))
}

// membership returns which list (if any) holds the email.
func (f *fakeListRepo) membership(eventID, email string) []domain.ListName {
	var out []domain.ListName
	for _, name := range domain.ListNames {
		for _, member := range f.emails(eventID, name) {
			if member == email {
				out = append(out, name)
			}
		}
	}
	return out
}

// fakeInviteRepo is an in-memory InviteRepository for tests.
type fakeInviteRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.Invite
	nextID  int
	created int
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{byID: make(map[string]*domain.Invite)}
}

func (f *fakeInviteRepo) Create(ctx context.Context, inv *domain.Invite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if inv.ID == "" {
		f.nextID++
		inv.ID = fmt.Sprintf("inv-%d", f.nextID)
	}
	cp := *inv
	f.byID[inv.ID] = &cp
	f.created++
	return nil
}

func (f *fakeInviteRepo) GetByEventAndRecipient(ctx context.Context, eventID, email string) (*domain.Invite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *domain.Invite
	for _, inv := range f.byID {
		if inv.EventID != eventID || inv.RecipientEmail != email {
			continue
		}
		if latest == nil || inv.CreatedAt.After(latest.CreatedAt) {
			latest = inv
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeInviteRepo) UpdateStatus(ctx context.Context, inviteID string, status domain.InviteStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.byID[inviteID]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	return nil
}

func (f *fakeInviteRepo) ListPendingExpired(ctx context.Context, now time.Time) ([]*domain.Invite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Invite
	for _, inv := range f.byID {
		if inv.Status == domain.InviteStatusPending && inv.ExpiresAt.Before(now) {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

// statusFor returns the latest invite status for the recipient.
func (f *fakeInviteRepo) statusFor(eventID, email string) (domain.InviteStatus, bool) {
	inv, err := f.GetByEventAndRecipient(context.Background(), eventID, email)
	if err != nil {
		return "", false
	}
	return inv.Status, true
}

// sentMessage captures one Notifier fan-out.
type sentMessage struct {
	Recipients []string
	Title      string
	Body       string
}

// recordingNotifier records every batch; err makes delivery fail.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (n *recordingNotifier) SendToRecipients(ctx context.Context, emails []string, title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{Recipients: emails, Title: title, Body: body})
	return n.err
}

func (n *recordingNotifier) messages() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]sentMessage, len(n.sent))
	copy(out, n.sent)
	return out
}
