package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/louisbranch/adminpanel/internal/services/admin/i18n"
	"github.com/louisbranch/adminpanel/internal/services/admin/location"
	"github.com/louisbranch/adminpanel/internal/services/admin/panel"
	"github.com/louisbranch/adminpanel/internal/services/admin/routepath"
	"github.com/louisbranch/adminpanel/internal/services/admin/templates"
	"golang.org/x/net/websocket"
	"golang.org/x/text/message"
)

const (
	feedFramePosition = "position"
	feedFrameError    = "error"
)

type feedPanelContextKey struct{}

type feedPositionFrame struct {
	Type string  `json:"type"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type feedErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// HandleLocationReplay fetches the live-location payload and starts
// replaying it onto the marker.
func (h *Handler) HandleLocationReplay(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	loc, _ := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	p := h.panelFor(w, r)
	// Failures are kept on the panel and rendered in the location section.
	scheduled, _ := p.ReplayLocation(r.Context())
	if !isHTMXRequest(r) {
		http.Redirect(w, r, routepath.Users, http.StatusSeeOther)
		return
	}
	renderFragment(w, r, templates.LocationPanel(h.locationView(p.View(), scheduled, loc), loc))
}

// HandleLocationFeed streams marker updates of the caller's panel over a
// websocket. Only pages served by this host may connect.
func (h *Handler) HandleLocationFeed() http.Handler {
	wsServer := websocket.Server{
		Handshake: func(config *websocket.Config, r *http.Request) error {
			origin, err := websocket.Origin(config, r)
			if err != nil {
				return err
			}
			config.Origin = origin
			if origin == nil || !sameOrigin(origin.String(), r) {
				return errors.New("websocket origin mismatch")
			}
			return nil
		},
		Handler: func(conn *websocket.Conn) {
			serveLocationFeed(conn)
		},
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodGet) {
			return
		}
		p, ok := h.lookupPanel(r)
		if !ok {
			loc, _ := h.localizer(w, r)
			http.Error(w, loc.Sprintf("error.session_missing"), http.StatusNotFound)
			return
		}
		ctx := context.WithValue(r.Context(), feedPanelContextKey{}, p)
		wsServer.ServeHTTP(w, r.WithContext(ctx))
	})
}

func serveLocationFeed(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	request := conn.Request()
	if request == nil {
		return
	}
	p, ok := request.Context().Value(feedPanelContextKey{}).(*panel.Panel)
	if !ok || p == nil {
		return
	}
	tag, _ := i18n.ResolveTag(request)
	loc := i18n.Printer(tag)

	updates, unsubscribe := p.Feed().Subscribe()
	defer unsubscribe()

	// Inbound frames are ignored; the read loop only detects disconnects.
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		_, _ = io.Copy(io.Discard, conn)
	}()

	encoder := json.NewEncoder(conn)
	for {
		select {
		case <-disconnected:
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if err := encoder.Encode(feedFrame(update, loc)); err != nil {
				log.Printf("admin location feed %s: write frame: %v", p.ID(), err)
				return
			}
		}
	}
}

func feedFrame(update location.Update, loc *message.Printer) any {
	if update.Err != nil {
		return feedErrorFrame{Type: feedFrameError, Message: i18n.ErrorMessage(loc, update.Err)}
	}
	return feedPositionFrame{Type: feedFramePosition, Lat: update.Point.Lat, Lng: update.Point.Lng}
}
