package location

import (
	"net/http"

	routepath "github.com/louisbranch/adminpanel/internal/services/admin/routepath"
)

// Service defines live-location route handlers consumed by this route module.
type Service interface {
	HandleLocationReplay(w http.ResponseWriter, r *http.Request)
	HandleLocationFeed() http.Handler
}

// RegisterRoutes wires the replay trigger and the marker feed into mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.LocationReplay, service.HandleLocationReplay)
	if feed := service.HandleLocationFeed(); feed != nil {
		mux.Handle(routepath.LocationFeed, feed)
	}
}
