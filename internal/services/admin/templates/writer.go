package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter writes markup and keeps the first write error.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

// raw writes trusted markup.
func (h *htmlWriter) raw(markup string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, markup)
}

// text writes escaped text content.
func (h *htmlWriter) text(value string) {
	h.raw(templ.EscapeString(value))
}

// attr writes ` name="value"` with the value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

// child renders a nested component in place.
func (h *htmlWriter) child(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}
