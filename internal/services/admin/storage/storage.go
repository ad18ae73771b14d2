package storage

import (
	"context"
	"time"
)

// Activity actions recorded for operator mutations.
const (
	ActionUserCreated     = "user.created"
	ActionUserUpdated     = "user.updated"
	ActionUserDeleted     = "user.deleted"
	ActionExportRequested = "export.requested"
	ActionReplayStarted   = "location.replay_started"
)

// Activity is one audit line for a mutating operator action.
type Activity struct {
	ID        int64
	SessionID string
	Action    string
	Subject   string
	Detail    string
	CreatedAt time.Time
}

// PanelSessionStore persists admin panel session records.
type PanelSessionStore interface {
	PutPanelSession(ctx context.Context, sessionID string, createdAt time.Time) error
}

// ActivityStore persists and lists operator activity.
type ActivityStore interface {
	// AppendActivity stores entry and returns it with its assigned ID.
	AppendActivity(ctx context.Context, entry Activity) (Activity, error)
	// ListActivity returns the newest entries first. An empty sessionID
	// lists every session.
	ListActivity(ctx context.Context, sessionID string, limit int) ([]Activity, error)
}

// Store is a composite interface for admin storage concerns.
type Store interface {
	PanelSessionStore
	ActivityStore
	Close() error
}
