package users

import (
	"net/http"
	"net/url"
	"strings"

	sharedpath "github.com/louisbranch/adminpanel/internal/services/admin/module/sharedpath"
	routepath "github.com/louisbranch/adminpanel/internal/services/admin/routepath"
	sharedroute "github.com/louisbranch/adminpanel/internal/services/shared/route"
)

// Service defines users route handlers consumed by this route module.
type Service interface {
	HandleUsersPage(w http.ResponseWriter, r *http.Request)
	HandleUsersTable(w http.ResponseWriter, r *http.Request)
	HandleUsersReload(w http.ResponseWriter, r *http.Request)
	HandleUserCreate(w http.ResponseWriter, r *http.Request)
	HandleUserEditSave(w http.ResponseWriter, r *http.Request)
	HandleUserEditCancel(w http.ResponseWriter, r *http.Request)
	HandleUserEdit(w http.ResponseWriter, r *http.Request, userID string)
	HandleUserDelete(w http.ResponseWriter, r *http.Request, userID string)
}

// RegisterRoutes wires user routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Users, service.HandleUsersPage)
	mux.HandleFunc(routepath.UsersTable, service.HandleUsersTable)
	mux.HandleFunc(routepath.UsersReload, service.HandleUsersReload)
	mux.HandleFunc(routepath.UsersCreate, service.HandleUserCreate)
	mux.HandleFunc(routepath.UsersEditSave, service.HandleUserEditSave)
	mux.HandleFunc(routepath.UsersEditCancel, service.HandleUserEditCancel)
	mux.HandleFunc(routepath.UsersPrefix, func(w http.ResponseWriter, r *http.Request) {
		HandleUserPath(w, r, service)
	})
}

// HandleUserPath parses per-user subroutes and dispatches to service handlers.
func HandleUserPath(w http.ResponseWriter, r *http.Request, service Service) {
	if service == nil {
		http.NotFound(w, r)
		return
	}
	if sharedroute.RedirectTrailingSlash(w, r) {
		return
	}

	path := strings.TrimPrefix(r.URL.EscapedPath(), routepath.UsersPrefix)
	parts := sharedpath.SplitPathParts(path)
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}
	userID, err := url.PathUnescape(parts[0])
	if err != nil || strings.TrimSpace(userID) == "" {
		http.NotFound(w, r)
		return
	}
	switch parts[1] {
	case "edit":
		service.HandleUserEdit(w, r, userID)
	case "delete":
		service.HandleUserDelete(w, r, userID)
	default:
		http.NotFound(w, r)
	}
}
