// Package admin implements the operator panel for the remote users service.
//
// It translates browser actions into calls against the upstream users API,
// keeps one panel state container per browser session, and renders the
// results as full pages or htmx fragments.
package admin
