package templates

// Map defaults used until the first location sample arrives.
const (
	DefaultCenterLat = 37.7749
	DefaultCenterLng = -122.4194
	MapZoom          = 15
	MapHeight        = "300px"
)

// PanelView provides data for the full admin panel page.
type PanelView struct {
	Users    UsersView
	Location LocationView
	Activity ActivityView
}

// UsersView provides data for the users section: list, form and dialog.
type UsersView struct {
	Rows       []UserRow
	Loaded     bool
	LoadFailed bool
	LoadError  string
	Message    string
	Draft      DraftView
	Dialog     DialogView
}

// UserRow represents a row in the users table.
type UserRow struct {
	ID        string
	Name      string
	Email     string
	EditURL   string
	DeleteURL string
}

// DraftView is the new-user form state.
type DraftView struct {
	Name  string
	Email string
	Error string
}

// DialogView is the edit dialog state.
type DialogView struct {
	Open  bool
	ID    string
	Name  string
	Email string
	Error string
}

// LocationView provides data for the live-location panel.
type LocationView struct {
	MapsAPIKey  string
	HasPosition bool
	Lat         float64
	Lng         float64
	Position    string
	Error       string
	Replaying   bool
	Scheduled   int
	FeedURL     string
}

// ActivityView lists recent operator actions.
type ActivityView struct {
	Rows  []ActivityRow
	Error string
}

// ActivityRow is one rendered activity entry.
type ActivityRow struct {
	Label string
	When  string
}
