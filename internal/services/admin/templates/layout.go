package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	routepath "github.com/louisbranch/adminpanel/internal/services/admin/routepath"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// Layout wraps body in the admin page shell. The body is rendered inside
// <main> so htmx requests can swap it alone.
func Layout(page PageContext, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		lang := page.Lang
		if lang == "" {
			lang = "en"
		}
		h.raw("<!doctype html><html")
		h.attr("lang", lang)
		h.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		h.text(title)
		h.raw("</title><link rel=\"stylesheet\"")
		h.attr("href", routepath.StaticPrefix+"admin.css")
		h.raw("><script")
		h.attr("src", htmxScriptURL)
		h.raw("></script><script defer")
		h.attr("src", routepath.StaticPrefix+"admin.js")
		h.raw("></script></head><body><header class=\"topbar\"><a class=\"brand\"")
		h.attr("href", routepath.Users)
		h.raw(">")
		h.text(T(page.Loc, "app.title"))
		h.raw("</a><nav class=\"languages\">")
		for _, option := range LanguageOptions(page) {
			h.raw("<a")
			h.attr("href", option.URL)
			if option.Active {
				h.raw(" aria-current=\"true\"")
			}
			h.raw(">")
			h.text(option.Label)
			h.raw("</a>")
		}
		h.raw("</nav></header><main id=\"main\">")
		h.child(body)
		h.raw("</main></body></html>")
		return h.err
	})
}
