package routepath

import (
	"net/url"
	"strings"
)

const (
	Root = "/"
)

const (
	StaticPrefix = "/static/"
)

const (
	Users           = "/users"
	UsersTable      = "/users/table"
	UsersReload     = "/users/reload"
	UsersCreate     = "/users/create"
	UsersEditSave   = "/users/edit/save"
	UsersEditCancel = "/users/edit/cancel"
	UsersPrefix     = "/users/"
)

const (
	Export = "/export"
)

const (
	LocationReplay = "/location/replay"
	LocationFeed   = "/location/feed"
)

const (
	Activity = "/activity"
)

func User(userID string) string {
	return Users + "/" + escapeSegment(userID)
}

func UserEdit(userID string) string {
	return User(userID) + "/edit"
}

func UserDelete(userID string) string {
	return User(userID) + "/delete"
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
