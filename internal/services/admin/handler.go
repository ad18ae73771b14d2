package admin

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/adminpanel/internal/services/admin/i18n"
	dashboardmodule "github.com/louisbranch/adminpanel/internal/services/admin/module/dashboard"
	locationmodule "github.com/louisbranch/adminpanel/internal/services/admin/module/location"
	usersmodule "github.com/louisbranch/adminpanel/internal/services/admin/module/users"
	"github.com/louisbranch/adminpanel/internal/services/admin/panel"
	"github.com/louisbranch/adminpanel/internal/services/admin/routepath"
	"github.com/louisbranch/adminpanel/internal/services/admin/static"
	"github.com/louisbranch/adminpanel/internal/services/admin/storage"
	"github.com/louisbranch/adminpanel/internal/services/admin/templates"
	"github.com/louisbranch/adminpanel/internal/services/admin/transport/httpmux"
	sharedhtmx "github.com/louisbranch/adminpanel/internal/services/shared/htmx"
	"golang.org/x/text/message"
)

const (
	// sessionCookieName stores the panel session ID.
	sessionCookieName = "ap_session"
	// activityListLimit caps the number of activity rows shown.
	activityListLimit = 20
	// activityTimeLayout formats activity timestamps.
	activityTimeLayout = "2006-01-02 15:04:05"
	// staticCacheControl is sent with embedded assets.
	staticCacheControl = "public, max-age=300"
)

// HandlerConfig wires the admin handler dependencies.
type HandlerConfig struct {
	// Registry owns one panel per browser session.
	Registry *panel.Registry
	// Activity lists recorded operator actions. Optional.
	Activity storage.ActivityStore
	// MapsAPIKey enables the map widget. Without it positions render as text.
	MapsAPIKey string
}

// Handler routes admin panel requests.
type Handler struct {
	registry   *panel.Registry
	activity   storage.ActivityStore
	mapsAPIKey string
}

// NewHandler builds the HTTP handler for the admin server.
func NewHandler(cfg HandlerConfig) http.Handler {
	handler := &Handler{
		registry:   cfg.Registry,
		activity:   cfg.Activity,
		mapsAPIKey: strings.TrimSpace(cfg.MapsAPIKey),
	}
	return handler.routes()
}

// routes wires the HTTP routes for the admin handler.
func (h *Handler) routes() http.Handler {
	rootMux := http.NewServeMux()
	adminMux := http.NewServeMux()
	dashboardmodule.RegisterRoutes(adminMux, h)
	usersmodule.RegisterRoutes(adminMux, h)
	locationmodule.RegisterRoutes(adminMux, h)

	httpmux.MountStatic(rootMux, static.FS, withStaticCache)
	httpmux.MountAdminRoutes(rootMux, adminMux)
	return rootMux
}

func withStaticCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", staticCacheControl)
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) localizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return i18n.Printer(tag), tag.String()
}

func (h *Handler) pageContext(lang string, loc *message.Printer, r *http.Request) templates.PageContext {
	return templates.PageContext{
		Lang:         lang,
		Loc:          loc,
		CurrentPath:  r.URL.Path,
		CurrentQuery: r.URL.RawQuery,
	}
}

// panelFor returns the caller's panel, starting a new session when the
// cookie is missing or no longer known.
func (h *Handler) panelFor(w http.ResponseWriter, r *http.Request) *panel.Panel {
	p, created := h.registry.Acquire(r.Context(), sessionIDFromRequest(r))
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    p.ID(),
			Path:     "/",
			HttpOnly: true,
			Secure:   isHTTPS(r),
			SameSite: http.SameSiteLaxMode,
		})
	}
	return p
}

// lookupPanel returns the caller's panel without creating one.
func (h *Handler) lookupPanel(r *http.Request) (*panel.Panel, bool) {
	sessionID := sessionIDFromRequest(r)
	if sessionID == "" {
		return nil, false
	}
	return h.registry.Lookup(sessionID)
}

func sessionIDFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

// renderPanelPage renders the whole panel. The action message is shown once.
func (h *Handler) renderPanelPage(w http.ResponseWriter, r *http.Request, p *panel.Panel, loc *message.Printer, lang string) {
	view := p.View()
	p.ClearError()
	body := templates.PanelPage(templates.PanelView{
		Users:    h.usersView(view, loc),
		Location: h.locationView(view, 0, loc),
		Activity: h.activityView(r.Context(), p.ID(), loc),
	}, loc)
	title := loc.Sprintf("app.title")
	full := templates.Layout(h.pageContext(lang, loc, r), title, body)
	sharedhtmx.RenderPage(w, r, body, full, title)
}

// finishUsersAction answers a users mutation: htmx requests get the users
// section, plain form posts are redirected back to the page.
func (h *Handler) finishUsersAction(w http.ResponseWriter, r *http.Request, p *panel.Panel, loc *message.Printer, actionErr error) {
	if !isHTMXRequest(r) {
		http.Redirect(w, r, routepath.Users, http.StatusSeeOther)
		return
	}
	view := h.usersView(p.View(), loc)
	if actionErr != nil && view.Message == "" {
		view.Message = i18n.ErrorMessage(loc, actionErr)
	}
	p.ClearError()
	renderFragment(w, r, templates.UsersSection(view, loc))
}

func (h *Handler) usersView(view panel.View, loc *message.Printer) templates.UsersView {
	rows := make([]templates.UserRow, 0, len(view.Users))
	for _, record := range view.Users {
		id := record.ID.String()
		rows = append(rows, templates.UserRow{
			ID:        id,
			Name:      record.Name,
			Email:     record.Email,
			EditURL:   routepath.UserEdit(id),
			DeleteURL: routepath.UserDelete(id),
		})
	}
	return templates.UsersView{
		Rows:       rows,
		Loaded:     view.Status == panel.StatusReady,
		LoadFailed: view.Status == panel.StatusFailed,
		LoadError:  i18n.ErrorMessage(loc, view.LoadErr),
		Message:    i18n.ErrorMessage(loc, view.ActionErr),
		Draft: templates.DraftView{
			Name:  view.Draft.Name,
			Email: view.Draft.Email,
			Error: i18n.ErrorMessage(loc, view.DraftErr),
		},
		Dialog: templates.DialogView{
			Open:  view.Dialog.Open,
			ID:    view.Dialog.Buffer.ID.String(),
			Name:  view.Dialog.Buffer.Name,
			Email: view.Dialog.Buffer.Email,
			Error: i18n.ErrorMessage(loc, view.Dialog.Err),
		},
	}
}

func (h *Handler) locationView(view panel.View, scheduled int, loc *message.Printer) templates.LocationView {
	result := templates.LocationView{
		MapsAPIKey:  h.mapsAPIKey,
		HasPosition: view.HasLocation,
		Error:       i18n.ErrorMessage(loc, view.LocationErr),
		Replaying:   view.Replaying,
		Scheduled:   scheduled,
		FeedURL:     routepath.LocationFeed,
	}
	if view.HasLocation {
		result.Lat = view.Location.Lat
		result.Lng = view.Location.Lng
		result.Position = view.Location.String()
	}
	return result
}

func (h *Handler) activityView(ctx context.Context, sessionID string, loc *message.Printer) templates.ActivityView {
	if h.activity == nil {
		return templates.ActivityView{}
	}
	entries, err := h.activity.ListActivity(ctx, sessionID, activityListLimit)
	if err != nil {
		log.Printf("admin list activity: %v", err)
		return templates.ActivityView{Error: loc.Sprintf("error.unknown")}
	}
	rows := make([]templates.ActivityRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, templates.ActivityRow{
			Label: activityLabel(loc, entry),
			When:  formatActivityTime(entry.CreatedAt),
		})
	}
	return templates.ActivityView{Rows: rows}
}

func activityLabel(loc *message.Printer, entry storage.Activity) string {
	key := "activity." + entry.Action
	switch entry.Action {
	case storage.ActionUserCreated, storage.ActionUserUpdated, storage.ActionUserDeleted:
		return loc.Sprintf(key, entry.Subject)
	default:
		return loc.Sprintf(key)
	}
}

func formatActivityTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Local().Format(activityTimeLayout)
}

func renderFragment(w http.ResponseWriter, r *http.Request, component templ.Component) {
	templ.Handler(component).ServeHTTP(w, r)
}

// allowMethod answers 405 unless r uses method.
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}

// requireSameOrigin rejects state-changing requests that did not come from
// a page served by this host.
func requireSameOrigin(w http.ResponseWriter, r *http.Request, loc *message.Printer) bool {
	if r == nil {
		http.Error(w, loc.Sprintf("error.csrf_invalid"), http.StatusForbidden)
		return false
	}
	if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
		if !sameOrigin(origin, r) {
			http.Error(w, loc.Sprintf("error.csrf_invalid"), http.StatusForbidden)
			return false
		}
		return true
	}
	if referer := strings.TrimSpace(r.Referer()); referer != "" {
		if !sameOrigin(referer, r) {
			http.Error(w, loc.Sprintf("error.csrf_invalid"), http.StatusForbidden)
			return false
		}
		return true
	}
	http.Error(w, loc.Sprintf("error.csrf_invalid"), http.StatusForbidden)
	return false
}

func sameOrigin(rawURL string, r *http.Request) bool {
	if rawURL == "" || rawURL == "null" || r == nil {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	if !strings.EqualFold(parsed.Host, r.Host) {
		return false
	}
	if parsed.Scheme != "" {
		scheme := strings.ToLower(parsed.Scheme)
		switch scheme {
		case "ws":
			scheme = "http"
		case "wss":
			scheme = "https"
		}
		return scheme == requestScheme(r)
	}
	return true
}

func requestScheme(r *http.Request) string {
	if r == nil {
		return "http"
	}
	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		parts := strings.Split(proto, ",")
		return strings.ToLower(strings.TrimSpace(parts[0]))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func isHTTPS(r *http.Request) bool {
	return requestScheme(r) == "https"
}

func isHTMXRequest(r *http.Request) bool {
	return sharedhtmx.IsHTMXRequest(r)
}
