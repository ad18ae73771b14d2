package panel

import (
	apperrors "github.com/louisbranch/adminpanel/internal/platform/errors"
	"github.com/louisbranch/adminpanel/internal/services/admin/user"
)

// DialogState is the edit dialog mode.
type DialogState int

const (
	DialogClosed DialogState = iota
	DialogOpen
)

// EditDialog is the closed/open state machine around an edit buffer.
type EditDialog struct {
	state  DialogState
	buffer user.User
	err    error
}

// Open copies record into the buffer.
func (d *EditDialog) Open(record user.User) {
	d.state = DialogOpen
	d.buffer = record
	d.err = nil
}

// Cancel discards the buffer.
func (d *EditDialog) Cancel() {
	d.state = DialogClosed
	d.buffer = user.User{}
	d.err = nil
}

// Close ends a successful save.
func (d *EditDialog) Close() {
	d.Cancel()
}

// IsOpen reports whether the dialog is open.
func (d *EditDialog) IsOpen() bool {
	return d.state == DialogOpen
}

// State returns the dialog mode.
func (d *EditDialog) State() DialogState {
	return d.state
}

// Buffer returns the record being edited.
func (d *EditDialog) Buffer() user.User {
	return d.buffer
}

// Err returns the last save error.
func (d *EditDialog) Err() error {
	return d.err
}

// Update writes edited fields into the buffer. The identifier never changes.
func (d *EditDialog) Update(name, email string) error {
	if !d.IsOpen() {
		return apperrors.New(apperrors.CodeEditNotOpen, "edit dialog is not open")
	}
	d.buffer.Name = name
	d.buffer.Email = email
	return nil
}

// Fail keeps the dialog open with the buffer intact and records err.
func (d *EditDialog) Fail(err error) {
	d.err = err
}
