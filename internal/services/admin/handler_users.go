package admin

import (
	"net/http"

	apperrors "github.com/louisbranch/adminpanel/internal/platform/errors"
	"github.com/louisbranch/adminpanel/internal/services/admin/i18n"
	"github.com/louisbranch/adminpanel/internal/services/admin/templates"
	"github.com/louisbranch/adminpanel/internal/services/admin/user"
)

// HandleUsersPage loads the users collection and renders the full panel.
func (h *Handler) HandleUsersPage(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	loc, lang := h.localizer(w, r)
	p := h.panelFor(w, r)
	// A failed load is rendered as the retryable empty state.
	_ = p.Load(r.Context())
	h.renderPanelPage(w, r, p, loc, lang)
}

// HandleUsersTable renders the cached users table without refetching.
func (h *Handler) HandleUsersTable(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	loc, _ := h.localizer(w, r)
	p := h.panelFor(w, r)
	renderFragment(w, r, templates.UsersTable(h.usersView(p.View(), loc), loc))
}

// HandleUsersReload retries loading the users collection.
func (h *Handler) HandleUsersReload(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	loc, _ := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	p := h.panelFor(w, r)
	_ = p.Load(r.Context())
	h.finishUsersAction(w, r, p, loc, nil)
}

// HandleUserCreate submits the new-user draft.
func (h *Handler) HandleUserCreate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	loc, _ := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	p := h.panelFor(w, r)
	// Errors are kept on the draft form and rendered there.
	_, _ = p.SubmitDraft(r.Context(), r.FormValue("name"), r.FormValue("email"))
	h.finishUsersAction(w, r, p, loc, nil)
}

// HandleUserEdit opens the edit dialog on a cached user.
func (h *Handler) HandleUserEdit(w http.ResponseWriter, r *http.Request, userID string) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	loc, _ := h.localizer(w, r)
	p := h.panelFor(w, r)
	err := p.OpenEdit(user.NewID(userID))
	if err != nil && !isHTMXRequest(r) {
		http.Error(w, i18n.ErrorMessage(loc, err), apperrors.CodeOf(err).HTTPStatus())
		return
	}
	h.finishUsersAction(w, r, p, loc, err)
}

// HandleUserEditSave puts the edit buffer upstream.
func (h *Handler) HandleUserEditSave(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	loc, _ := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	p := h.panelFor(w, r)
	_, err := p.SaveEdit(r.Context(), r.FormValue("name"), r.FormValue("email"))
	if apperrors.CodeOf(err) == apperrors.CodeEditNotOpen {
		h.finishUsersAction(w, r, p, loc, err)
		return
	}
	// Other failures stay on the open dialog.
	h.finishUsersAction(w, r, p, loc, nil)
}

// HandleUserEditCancel closes the edit dialog.
func (h *Handler) HandleUserEditCancel(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	loc, _ := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	p := h.panelFor(w, r)
	p.CancelEdit()
	h.finishUsersAction(w, r, p, loc, nil)
}

// HandleUserDelete deletes a user upstream and drops it from the list.
func (h *Handler) HandleUserDelete(w http.ResponseWriter, r *http.Request, userID string) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	loc, _ := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	p := h.panelFor(w, r)
	// The panel keeps the failure as its action message.
	_ = p.DeleteUser(r.Context(), user.NewID(userID))
	h.finishUsersAction(w, r, p, loc, nil)
}
