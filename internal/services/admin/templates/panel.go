package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	routepath "github.com/louisbranch/adminpanel/internal/services/admin/routepath"
)

// LocationSectionID is the htmx swap target for the live-location panel.
const LocationSectionID = "location-panel"

// PanelPage renders the panel body: export trigger, users, location and
// activity.
func PanelPage(view PanelView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw("<div class=\"panel\"><div class=\"toolbar\"><a class=\"button\"")
		h.attr("href", routepath.Export)
		h.raw(">")
		h.text(T(loc, "export.button"))
		h.raw("</a></div>")
		h.child(UsersSection(view.Users, loc))
		h.child(LocationPanel(view.Location, loc))
		h.child(ActivityList(view.Activity, loc))
		h.raw("</div>")
		return h.err
	})
}

// LocationPanel renders the map widget and the replay trigger. Without a
// maps key the position is shown as text.
func LocationPanel(view LocationView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		lat, lng := DefaultCenterLat, DefaultCenterLng
		if view.HasPosition {
			lat, lng = view.Lat, view.Lng
		}

		h.raw("<section class=\"location\"")
		h.attr("id", LocationSectionID)
		h.raw("><h2>")
		h.text(T(loc, "location.heading"))
		h.raw("</h2><form method=\"post\"")
		h.attr("action", routepath.LocationReplay)
		h.attr("hx-post", routepath.LocationReplay)
		h.attr("hx-target", "#"+LocationSectionID)
		h.raw(" hx-swap=\"outerHTML\"><button type=\"submit\">")
		h.text(T(loc, "location.replay"))
		h.raw("</button></form>")
		if view.Error != "" {
			h.child(MessageBanner(view.Error, loc))
		}
		if view.Replaying && view.Scheduled > 0 {
			h.raw("<p class=\"status\">")
			h.text(T(loc, "location.replaying", view.Scheduled))
			h.raw("</p>")
		}

		h.raw("<div id=\"location-map\" class=\"map\"")
		h.attr("data-center-lat", formatCoordinate(lat))
		h.attr("data-center-lng", formatCoordinate(lng))
		h.attr("data-has-position", strconv.FormatBool(view.HasPosition))
		h.attr("data-zoom", strconv.Itoa(MapZoom))
		h.attr("data-feed-url", view.FeedURL)
		if view.MapsAPIKey != "" {
			h.attr("data-maps-key", view.MapsAPIKey)
			h.attr("style", "height: "+MapHeight)
		}
		h.raw("></div><p id=\"location-text\" class=\"position\">")
		if view.HasPosition {
			h.text(T(loc, "location.current", view.Position))
		} else {
			h.text(T(loc, "location.none"))
		}
		h.raw("</p></section>")
		return h.err
	})
}

// ActivityList renders recent operator actions.
func ActivityList(view ActivityView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw("<section class=\"activity\" id=\"activity-list\"")
		h.attr("hx-get", routepath.Activity)
		h.raw(" hx-trigger=\"every 10s\" hx-swap=\"outerHTML\"><h2>")
		h.text(T(loc, "activity.heading"))
		h.raw("</h2>")
		if view.Error != "" {
			h.child(MessageBanner(view.Error, loc))
		}
		if len(view.Rows) == 0 {
			h.raw("<p class=\"empty\">")
			h.text(T(loc, "activity.empty"))
			h.raw("</p>")
		} else {
			h.raw("<ul>")
			for _, row := range view.Rows {
				h.raw("<li><time>")
				h.text(row.When)
				h.raw("</time> ")
				h.text(row.Label)
				h.raw("</li>")
			}
			h.raw("</ul>")
		}
		h.raw("</section>")
		return h.err
	})
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
