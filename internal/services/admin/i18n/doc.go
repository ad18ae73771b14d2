// Package i18n provides localization helpers for the admin UI.
//
// It decouples interface text from handler logic so admin screens can evolve
// language by language without changing route behavior.
package i18n
