package admin

import (
	"net/http"

	"github.com/louisbranch/adminpanel/internal/services/admin/templates"
	sharedhtmx "github.com/louisbranch/adminpanel/internal/services/shared/htmx"
)

// HandleDashboard renders the panel at the root path.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	h.HandleUsersPage(w, r)
}

// HandleActivity renders the recent activity list.
func (h *Handler) HandleActivity(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	loc, _ := h.localizer(w, r)
	p := h.panelFor(w, r)
	renderFragment(w, r, templates.ActivityList(h.activityView(r.Context(), p.ID(), loc), loc))
}

// HandleExport hands the browser to the upstream spreadsheet export. The
// target is the upstream export path with no query.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	p := h.panelFor(w, r)
	sharedhtmx.Redirect(w, r, p.ExportURL(r.Context()))
}
