package panel

import (
	"context"
	"sync"

	"github.com/louisbranch/adminpanel/internal/services/admin/user"
)

// UsersAPI is the upstream users resource.
type UsersAPI interface {
	ListUsers(ctx context.Context) ([]user.User, error)
	CreateUser(ctx context.Context, draft user.Draft) (user.User, error)
	UpdateUser(ctx context.Context, record user.User) (user.User, error)
	DeleteUser(ctx context.Context, id user.ID) error
}

// Store is the users list cache. Every change is a server-confirmed action.
type Store struct {
	api UsersAPI

	mu    sync.Mutex
	state State
}

// NewStore returns an empty store backed by api.
func NewStore(api UsersAPI) *Store {
	return &Store{api: api, state: State{Users: []user.User{}}}
}

// Dispatch applies action atomically.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	s.mu.Unlock()
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.state
	snapshot.Users = append([]user.User(nil), s.state.Users...)
	return snapshot
}

// Users returns a copy of the current list.
func (s *Store) Users() []user.User {
	return s.State().Users
}

// Find returns the cached entry identified by id.
func (s *Store) Find(id user.ID) (user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return user.Find(s.state.Users, id)
}

// Load fetches the collection and replaces the list. A failure leaves an
// empty, retryable state carrying the error.
func (s *Store) Load(ctx context.Context) error {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		s.Dispatch(LoadFailed{Err: err})
		return err
	}
	s.Dispatch(Loaded{Users: users})
	return nil
}

// Add creates draft upstream and appends the returned record.
func (s *Store) Add(ctx context.Context, draft user.Draft) (user.User, error) {
	created, err := s.api.CreateUser(ctx, draft)
	if err != nil {
		return user.User{}, err
	}
	s.Dispatch(Appended{User: created})
	return created, nil
}

// Update puts record upstream and replaces the entry with the server's
// version. A response without an identifier keeps record's.
func (s *Store) Update(ctx context.Context, record user.User) (user.User, error) {
	updated, err := s.api.UpdateUser(ctx, record)
	if err != nil {
		return user.User{}, err
	}
	if updated.ID.IsZero() {
		updated.ID = record.ID
	}
	s.Replace(record.ID, updated)
	return updated, nil
}

// Replace swaps the entry identified by id for record.
func (s *Store) Replace(id user.ID, record user.User) {
	s.Dispatch(Replaced{ID: id, User: record})
}

// Remove deletes id upstream and drops it from the list.
func (s *Store) Remove(ctx context.Context, id user.ID) error {
	if err := s.api.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.Dispatch(Removed{ID: id})
	return nil
}
