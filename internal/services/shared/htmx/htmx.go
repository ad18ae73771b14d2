// Package htmx renders templ components for full-page and htmx partial requests.
package htmx

import (
	"bytes"
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

const (
	// ResponseHeaderKey is the HTMX request header used to detect partial updates.
	ResponseHeaderKey = "HX-Request"
	// RedirectHeaderKey instructs htmx to perform a full browser navigation.
	RedirectHeaderKey = "HX-Redirect"
)

// responseBuffer captures component rendering for HTMX responses.
type responseBuffer struct {
	header      http.Header
	statusCode  int
	body        bytes.Buffer
	headerWrote bool
}

func (w *responseBuffer) Header() http.Header {
	return w.header
}

func (w *responseBuffer) WriteHeader(status int) {
	if w.headerWrote {
		return
	}
	w.headerWrote = true
	w.statusCode = status
}

func (w *responseBuffer) Write(body []byte) (int, error) {
	return w.body.Write(body)
}

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(ResponseHeaderKey), "true")
}

// TitleTag formats an escaped `<title>` element.
func TitleTag(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return "<title>" + html.EscapeString(title) + "</title>"
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{
		header:     make(http.Header),
		statusCode: http.StatusOK,
	}
}

func addHTMXTitleIfMissing(responseBody []byte, title string) []byte {
	bodyLower := strings.ToLower(string(responseBody))
	if strings.Contains(bodyLower, "<title") {
		return responseBody
	}
	if strings.TrimSpace(title) == "" {
		return responseBody
	}
	return append([]byte(title), responseBody...)
}

func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		if strings.EqualFold(key, "Set-Cookie") {
			for _, value := range values {
				dst.Add(key, value)
			}
			continue
		}
		// Single-valued headers should not accumulate duplicates when copied from
		// a temporary response buffer.
		for _, value := range values {
			dst.Set(key, value)
		}
	}
}

// RenderPage renders a page for normal or HTMX requests.
//
// HTMX requests receive fragment; when fragment is nil the `<main>` content
// of full is sent instead. Non-HTMX requests always receive full, falling
// back to fragment when full is nil.
func RenderPage(w http.ResponseWriter, r *http.Request, fragment templ.Component, full templ.Component, htmxTitle string) {
	if IsHTMXRequest(r) {
		target := fragment
		captureFromFull := false
		if target == nil {
			target = full
			captureFromFull = true
		}
		if target == nil {
			return
		}
		capture := newResponseBuffer()
		templ.Handler(target).ServeHTTP(capture, r)

		body := capture.body.Bytes()
		if captureFromFull {
			if mainContent, ok := extractMainContent(body); ok {
				body = mainContent
			}
		}

		body = addHTMXTitleIfMissing(body, htmxTitle)
		copyHeaders(w.Header(), capture.Header())
		if !capture.headerWrote {
			capture.statusCode = http.StatusOK
		}
		if capture.statusCode != http.StatusOK {
			w.WriteHeader(capture.statusCode)
		}
		_, _ = w.Write(body)
		return
	}

	if full == nil {
		full = fragment
	}
	if full == nil {
		return
	}
	templ.Handler(full).ServeHTTP(w, r)
}

// Redirect sends the browser to target. HTMX requests receive HX-Redirect so
// the navigation happens at the top level instead of inside a swap target.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if w == nil || r == nil {
		return
	}
	if IsHTMXRequest(r) {
		w.Header().Set(RedirectHeaderKey, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func extractMainContent(body []byte) ([]byte, bool) {
	start := bytes.Index(body, []byte("<main"))
	if start < 0 {
		return nil, false
	}
	openClose := bytes.Index(body[start:], []byte(">"))
	if openClose < 0 {
		return nil, false
	}
	contentStart := start + openClose + 1
	end := bytes.Index(body[contentStart:], []byte("</main>"))
	if end < 0 {
		return nil, false
	}
	return body[contentStart : contentStart+end], true
}
