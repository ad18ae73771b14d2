package panel

import "github.com/louisbranch/adminpanel/internal/services/admin/user"

// LoadStatus tracks the outcome of the last collection load.
type LoadStatus int

const (
	// StatusPending means no load has completed yet.
	StatusPending LoadStatus = iota
	// StatusReady means the list mirrors the last successful load.
	StatusReady
	// StatusFailed means the last load failed; the list is empty and retryable.
	StatusFailed
)

// State is the users list container.
type State struct {
	Users   []user.User
	Status  LoadStatus
	LoadErr error
}

// Action is a confirmed change applied to State.
type Action interface {
	isAction()
}

// Loaded replaces the list with a fresh server copy.
type Loaded struct{ Users []user.User }

// LoadFailed records a failed load.
type LoadFailed struct{ Err error }

// Appended adds a record the server just created.
type Appended struct{ User user.User }

// Replaced swaps the entry identified by ID for User.
type Replaced struct {
	ID   user.ID
	User user.User
}

// Removed drops entries identified by ID.
type Removed struct{ ID user.ID }

func (Loaded) isAction()     {}
func (LoadFailed) isAction() {}
func (Appended) isAction()   {}
func (Replaced) isAction()   {}
func (Removed) isAction()    {}

// Reduce returns the state after applying action. The input is not mutated.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case Loaded:
		users := make([]user.User, len(a.Users))
		copy(users, a.Users)
		return State{Users: users, Status: StatusReady}
	case LoadFailed:
		return State{Users: []user.User{}, Status: StatusFailed, LoadErr: a.Err}
	case Appended:
		state.Users = user.Append(state.Users, a.User)
		return state
	case Replaced:
		id := a.ID
		if id.IsZero() {
			id = a.User.ID
		}
		state.Users = user.ReplaceByID(state.Users, id, a.User)
		return state
	case Removed:
		state.Users = user.Remove(state.Users, a.ID)
		return state
	default:
		return state
	}
}
