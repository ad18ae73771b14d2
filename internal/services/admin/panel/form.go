package panel

import "github.com/louisbranch/adminpanel/internal/services/admin/user"

// DraftForm holds the new-user input between submissions.
type DraftForm struct {
	draft user.Draft
	err   error
}

// Set replaces the draft fields.
func (f *DraftForm) Set(name, email string) {
	f.draft = user.Draft{Name: name, Email: email}
}

// Draft returns the current input.
func (f *DraftForm) Draft() user.Draft {
	return f.draft
}

// Err returns the last submission error.
func (f *DraftForm) Err() error {
	return f.err
}

// Fail keeps the draft and records err.
func (f *DraftForm) Fail(err error) {
	f.err = err
}

// Clear resets the form after a successful submission.
func (f *DraftForm) Clear() {
	f.draft = user.Draft{}
	f.err = nil
}
