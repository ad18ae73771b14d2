package dashboard

import (
	"net/http"

	routepath "github.com/louisbranch/adminpanel/internal/services/admin/routepath"
)

// Service defines top-level panel route handlers consumed by this route module.
type Service interface {
	HandleDashboard(w http.ResponseWriter, r *http.Request)
	HandleActivity(w http.ResponseWriter, r *http.Request)
	HandleExport(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires the panel root, activity and export routes into mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Root, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != routepath.Root {
			http.NotFound(w, r)
			return
		}
		service.HandleDashboard(w, r)
	})
	mux.HandleFunc(routepath.Activity, service.HandleActivity)
	mux.HandleFunc(routepath.Export, service.HandleExport)
}
