package panel

import (
	"context"
	"log"
	"sync"
	"time"

	apperrors "github.com/louisbranch/adminpanel/internal/platform/errors"
	"github.com/louisbranch/adminpanel/internal/platform/timeouts"
	"github.com/louisbranch/adminpanel/internal/services/admin/location"
	"github.com/louisbranch/adminpanel/internal/services/admin/storage"
	"github.com/louisbranch/adminpanel/internal/services/admin/user"
)

// Upstream is everything a panel needs from the remote API.
type Upstream interface {
	UsersAPI
	location.Source
	ExportURL() string
}

// Options configures a Panel.
type Options struct {
	SessionID string
	API       Upstream
	// Activity records operator mutations. Optional.
	Activity storage.ActivityStore
	// ReplayInterval is the delay between replayed samples.
	ReplayInterval time.Duration
	// StrictForms rejects blank name or email before calling the upstream.
	StrictForms bool
	// OnLoad observes every load outcome. Optional.
	OnLoad func(error)
}

// Panel is one operator's view state.
type Panel struct {
	id       string
	api      Upstream
	store    *Store
	poller   *location.Poller
	activity storage.ActivityStore
	strict   bool
	onLoad   func(error)

	mu        sync.Mutex
	form      DraftForm
	dialog    EditDialog
	actionErr error
	replayErr error
}

// DialogView is the rendered state of the edit dialog.
type DialogView struct {
	Open   bool
	Buffer user.User
	Err    error
}

// View is a consistent snapshot used for rendering.
type View struct {
	SessionID   string
	Users       []user.User
	Status      LoadStatus
	LoadErr     error
	Draft       user.Draft
	DraftErr    error
	Dialog      DialogView
	Location    location.Point
	HasLocation bool
	LocationErr error
	Replaying   bool
	ActionErr   error
}

// New builds a panel with an empty list.
func New(opts Options) *Panel {
	interval := opts.ReplayInterval
	if interval <= 0 {
		interval = timeouts.ReplayInterval
	}
	return &Panel{
		id:       opts.SessionID,
		api:      opts.API,
		store:    NewStore(opts.API),
		poller:   location.NewPoller(opts.API, location.NewFeed(), interval),
		activity: opts.Activity,
		strict:   opts.StrictForms,
		onLoad:   opts.OnLoad,
	}
}

// ID returns the session identifier.
func (p *Panel) ID() string {
	return p.id
}

// Store exposes the users list.
func (p *Panel) Store() *Store {
	return p.store
}

// Feed exposes the marker feed for subscribers.
func (p *Panel) Feed() *location.Feed {
	return p.poller.Feed()
}

// Load fetches the users collection.
func (p *Panel) Load(ctx context.Context) error {
	err := p.store.Load(ctx)
	if err != nil {
		log.Printf("admin panel %s: load users: %v", p.id, err)
	}
	if p.onLoad != nil {
		p.onLoad(err)
	}
	return err
}

// SubmitDraft posts the draft and appends the created record. The draft is
// cleared on success and kept on failure.
func (p *Panel) SubmitDraft(ctx context.Context, name, email string) (user.User, error) {
	p.mu.Lock()
	p.form.Set(name, email)
	draft := p.form.Draft()
	if p.strict {
		if err := draft.Validate(); err != nil {
			p.form.Fail(err)
			p.mu.Unlock()
			return user.User{}, err
		}
	}
	p.mu.Unlock()

	created, err := p.store.Add(ctx, draft)

	p.mu.Lock()
	if err != nil {
		p.form.Fail(err)
	} else {
		p.form.Clear()
	}
	p.mu.Unlock()

	if err != nil {
		log.Printf("admin panel %s: create user: %v", p.id, err)
		return user.User{}, err
	}
	p.record(ctx, storage.ActionUserCreated, created.ID.String(), created.Name)
	return created, nil
}

// OpenEdit opens the dialog on the cached record identified by id.
func (p *Panel) OpenEdit(id user.ID) error {
	record, ok := p.store.Find(id)
	if !ok {
		return apperrors.New(apperrors.CodeUpstreamNotFound, "user "+id.String()+" is not in the list")
	}
	p.mu.Lock()
	p.dialog.Open(record)
	p.mu.Unlock()
	return nil
}

// CancelEdit closes the dialog and discards the buffer.
func (p *Panel) CancelEdit() {
	p.mu.Lock()
	p.dialog.Cancel()
	p.mu.Unlock()
}

// SaveEdit writes name and email into the buffer and puts it upstream. On
// success the list entry is replaced and the dialog closes; on failure the
// dialog stays open with the buffer intact.
func (p *Panel) SaveEdit(ctx context.Context, name, email string) (user.User, error) {
	p.mu.Lock()
	if err := p.dialog.Update(name, email); err != nil {
		p.mu.Unlock()
		return user.User{}, err
	}
	buffer := p.dialog.Buffer()
	if p.strict {
		if err := buffer.Validate(); err != nil {
			p.dialog.Fail(err)
			p.mu.Unlock()
			return user.User{}, err
		}
	}
	p.mu.Unlock()

	updated, err := p.store.Update(ctx, buffer)

	p.mu.Lock()
	editingSame := p.dialog.IsOpen() && p.dialog.Buffer().ID.Equal(buffer.ID)
	if editingSame {
		if err != nil {
			p.dialog.Fail(err)
		} else {
			p.dialog.Close()
		}
	}
	p.mu.Unlock()

	if err != nil {
		log.Printf("admin panel %s: update user %s: %v", p.id, buffer.ID, err)
		return user.User{}, err
	}
	p.record(ctx, storage.ActionUserUpdated, updated.ID.String(), updated.Name)
	return updated, nil
}

// DeleteUser deletes id upstream and drops it from the list.
func (p *Panel) DeleteUser(ctx context.Context, id user.ID) error {
	err := p.store.Remove(ctx, id)
	p.setActionErr(err)
	if err != nil {
		log.Printf("admin panel %s: delete user %s: %v", p.id, id, err)
		return err
	}
	p.record(ctx, storage.ActionUserDeleted, id.String(), "")
	return nil
}

// ReplayLocation fetches the live-location payload and replays it, cancelling
// any replay still running.
func (p *Panel) ReplayLocation(ctx context.Context) (int, error) {
	count, err := p.poller.Trigger(ctx)
	p.mu.Lock()
	p.replayErr = err
	p.mu.Unlock()
	if err != nil {
		log.Printf("admin panel %s: live location: %v", p.id, err)
		return 0, err
	}
	p.record(ctx, storage.ActionReplayStarted, "", "")
	return count, nil
}

// ExportURL records the export request and returns the download target.
func (p *Panel) ExportURL(ctx context.Context) string {
	p.record(ctx, storage.ActionExportRequested, "", "")
	return p.api.ExportURL()
}

// ClearError dismisses the last action error.
func (p *Panel) ClearError() {
	p.setActionErr(nil)
}

// View snapshots the panel for rendering.
func (p *Panel) View() View {
	state := p.store.State()
	feed := p.poller.Feed()
	point, hasPoint := feed.Current()

	p.mu.Lock()
	defer p.mu.Unlock()
	locationErr := p.replayErr
	if locationErr == nil {
		locationErr = feed.LastError()
	}
	return View{
		SessionID: p.id,
		Users:     state.Users,
		Status:    state.Status,
		LoadErr:   state.LoadErr,
		Draft:     p.form.Draft(),
		DraftErr:  p.form.Err(),
		Dialog: DialogView{
			Open:   p.dialog.IsOpen(),
			Buffer: p.dialog.Buffer(),
			Err:    p.dialog.Err(),
		},
		Location:    point,
		HasLocation: hasPoint,
		LocationErr: locationErr,
		Replaying:   p.poller.Replaying(),
		ActionErr:   p.actionErr,
	}
}

// Close cancels any pending replay and disconnects feed subscribers.
func (p *Panel) Close() {
	p.poller.Close()
}

func (p *Panel) setActionErr(err error) {
	p.mu.Lock()
	p.actionErr = err
	p.mu.Unlock()
}

func (p *Panel) record(ctx context.Context, action, subject, detail string) {
	if p.activity == nil {
		return
	}
	_, err := p.activity.AppendActivity(context.WithoutCancel(ctx), storage.Activity{
		SessionID: p.id,
		Action:    action,
		Subject:   subject,
		Detail:    detail,
	})
	if err != nil {
		log.Printf("admin panel %s: record %s: %v", p.id, action, err)
	}
}
