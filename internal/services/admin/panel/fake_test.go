package panel

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/louisbranch/adminpanel/internal/services/admin/storage"
	"github.com/louisbranch/adminpanel/internal/services/admin/user"
)

type fakeUpstream struct {
	mu        sync.Mutex
	users     []user.User
	nextID    int
	listErr   error
	createErr error
	updateErr error
	deleteErr error
	location  []byte
	created   []user.Draft
	updated   []user.User
	deleted   []user.ID
	// updateResponse overrides the echoed record when set.
	updateResponse *user.User
}

func newFakeUpstream(users ...user.User) *fakeUpstream {
	return &fakeUpstream{users: users, nextID: len(users) + 1}
}

func (f *fakeUpstream) ListUsers(context.Context) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]user.User(nil), f.users...), nil
}

func (f *fakeUpstream) CreateUser(_ context.Context, draft user.Draft) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, draft)
	if f.createErr != nil {
		return user.User{}, f.createErr
	}
	created := user.User{ID: user.NewID(strconv.Itoa(f.nextID)), Name: draft.Name, Email: draft.Email}
	f.nextID++
	f.users = append(f.users, created)
	return created, nil
}

func (f *fakeUpstream) UpdateUser(_ context.Context, record user.User) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, record)
	if f.updateErr != nil {
		return user.User{}, f.updateErr
	}
	if f.updateResponse != nil {
		return *f.updateResponse, nil
	}
	return record, nil
}

func (f *fakeUpstream) DeleteUser(_ context.Context, id user.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeUpstream) LiveLocation(context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.location, nil
}

func (f *fakeUpstream) ExportURL() string {
	return "http://upstream.test/api/export"
}

type fakeActivity struct {
	mu      sync.Mutex
	entries []storage.Activity
}

func (f *fakeActivity) AppendActivity(_ context.Context, entry storage.Activity) (storage.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeActivity) ListActivity(_ context.Context, sessionID string, limit int) ([]storage.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []storage.Activity
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if sessionID == "" || f.entries[i].SessionID == sessionID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeActivity) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.entries))
	for _, entry := range f.entries {
		out = append(out, entry.Action)
	}
	return out
}

type fakeSessions struct {
	mu  sync.Mutex
	ids []string
}

func (f *fakeSessions) PutPanelSession(_ context.Context, sessionID string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, sessionID)
	return nil
}

func (f *fakeSessions) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ids)
}
