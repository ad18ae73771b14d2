// Package static embeds the admin panel stylesheet and browser script.
package static

import "embed"

// FS serves under /static/.
//
//go:embed admin.css admin.js
var FS embed.FS
