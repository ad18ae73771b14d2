package templates

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/text/message"
)

type fakeLocalizer struct{}

func (fakeLocalizer) Sprintf(key message.Reference, args ...any) string {
	keyString, _ := key.(string)
	if len(args) == 0 {
		return keyString
	}
	return keyString + fmt.Sprint(args...)
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, body string, want ...string) {
	t.Helper()
	for _, fragment := range want {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected %q in body:\n%s", fragment, body)
		}
	}
}

func assertNotContains(t *testing.T, body string, unwanted ...string) {
	t.Helper()
	for _, fragment := range unwanted {
		if strings.Contains(body, fragment) {
			t.Fatalf("unexpected %q in body:\n%s", fragment, body)
		}
	}
}

func TestTranslateFallback(t *testing.T) {
	if T(nil, "hello") != "hello" {
		t.Fatal("expected key fallback")
	}
	if T(nil, message.Reference(123)) != "" {
		t.Fatal("expected empty string for non-string key")
	}
}

func TestUsersTableRowsInOrder(t *testing.T) {
	body := render(t, UsersTable(UsersView{
		Loaded: true,
		Rows: []UserRow{
			{ID: "1", Name: "Ada", Email: "ada@example.com", EditURL: "/users/1/edit", DeleteURL: "/users/1/delete"},
			{ID: "2", Name: "Grace", Email: "grace@example.com", EditURL: "/users/2/edit", DeleteURL: "/users/2/delete"},
		},
	}, fakeLocalizer{}))

	assertContains(t, body, `data-user-id="1"`, `hx-get="/users/2/edit"`, `hx-post="/users/1/delete"`)
	if strings.Index(body, "Ada") > strings.Index(body, "Grace") {
		t.Fatal("rows rendered out of order")
	}
	if got := strings.Count(body, "<tr data-user-id"); got != 2 {
		t.Fatalf("rows = %d, want 2", got)
	}
}

func TestUsersTableDeletesWithoutConfirmation(t *testing.T) {
	body := render(t, UsersTable(UsersView{
		Loaded: true,
		Rows:   []UserRow{{ID: "1", Name: "Ada", Email: "ada@example.com", DeleteURL: "/users/1/delete"}},
	}, fakeLocalizer{}))
	assertContains(t, body, `hx-post="/users/1/delete"`)
	assertNotContains(t, body, "hx-confirm", "delete_confirm")
}

func TestUsersTableEscapesValues(t *testing.T) {
	body := render(t, UsersTable(UsersView{
		Rows: []UserRow{{ID: "1", Name: "<script>x</script>", Email: "a\"b@x.com"}},
	}, fakeLocalizer{}))
	assertNotContains(t, body, "<script>x</script>")
	assertContains(t, body, "&lt;script&gt;")
}

func TestUsersTableLoadFailedShowsRetry(t *testing.T) {
	body := render(t, UsersTable(UsersView{LoadFailed: true, LoadError: "unreachable"}, fakeLocalizer{}))
	assertContains(t, body, "users.load_failed", "unreachable", `hx-post="/users/reload"`, "users.retry")
	assertNotContains(t, body, "<table>")
}

func TestUsersTableEmpty(t *testing.T) {
	body := render(t, UsersTable(UsersView{Loaded: true}, fakeLocalizer{}))
	assertContains(t, body, "users.empty")
}

func TestUsersSectionRendersDialogOnlyWhenOpen(t *testing.T) {
	closed := render(t, UsersSection(UsersView{}, fakeLocalizer{}))
	assertContains(t, closed, `id="users-panel"`, `hx-post="/users/create"`)
	assertNotContains(t, closed, "<dialog")

	open := render(t, UsersSection(UsersView{Dialog: DialogView{Open: true, ID: "7", Name: "Ada", Email: "a@x.com", Error: "boom"}}, fakeLocalizer{}))
	assertContains(t, open, "<dialog open", `data-user-id="7"`, `value="Ada"`, "boom", `hx-post="/users/edit/save"`, `hx-post="/users/edit/cancel"`)
}

func TestDraftFormKeepsInputAndError(t *testing.T) {
	body := render(t, DraftForm(DraftView{Name: "A", Email: "", Error: "Email is required."}, fakeLocalizer{}))
	assertContains(t, body, `name="name" value="A"`, "Email is required.")
}

func TestLocationPanelDefaults(t *testing.T) {
	body := render(t, LocationPanel(LocationView{MapsAPIKey: "key-1", FeedURL: "/location/feed"}, fakeLocalizer{}))
	assertContains(t, body,
		`data-center-lat="37.7749"`,
		`data-center-lng="-122.4194"`,
		`data-zoom="15"`,
		`data-maps-key="key-1"`,
		`style="height: 300px"`,
		`data-feed-url="/location/feed"`,
		"location.none",
	)
}

func TestLocationPanelWithPositionAndNoKey(t *testing.T) {
	body := render(t, LocationPanel(LocationView{HasPosition: true, Lat: 1, Lng: 2, Position: "1, 2", Replaying: true, Scheduled: 2}, fakeLocalizer{}))
	assertContains(t, body, `data-center-lat="1"`, `data-has-position="true"`, "location.current1, 2", "location.replaying2")
	assertNotContains(t, body, "data-maps-key", "height: 300px")
}

func TestActivityList(t *testing.T) {
	empty := render(t, ActivityList(ActivityView{}, fakeLocalizer{}))
	assertContains(t, empty, "activity.empty", `hx-get="/activity"`)

	body := render(t, ActivityList(ActivityView{Rows: []ActivityRow{{Label: "Created user 1", When: "10:00"}}}, fakeLocalizer{}))
	assertContains(t, body, "<time>10:00</time> Created user 1")
}

func TestLayoutWrapsBodyInMain(t *testing.T) {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>inner</p>")
		return err
	})
	page := PageContext{Lang: "pt-BR", Loc: fakeLocalizer{}, CurrentPath: "/users", CurrentQuery: "a=1"}
	out := render(t, Layout(page, "Admin <panel>", body))

	assertContains(t, out,
		"<!doctype html>",
		`lang="pt-BR"`,
		"<title>Admin &lt;panel&gt;</title>",
		`<main id="main"><p>inner</p></main>`,
		"/static/admin.js",
		"lang=pt-BR",
	)
}

func TestLanguageURLKeepsQuery(t *testing.T) {
	got := LanguageURL(PageContext{CurrentPath: "/users", CurrentQuery: "x=1&lang=en"}, "pt-BR")
	if got != "/users?lang=pt-BR&x=1" {
		t.Fatalf("LanguageURL = %q", got)
	}
}

func TestLanguageOptionsMarksActive(t *testing.T) {
	options := LanguageOptions(PageContext{Lang: "pt-BR"})
	if len(options) != 2 {
		t.Fatalf("options = %+v", options)
	}
	active := 0
	for _, option := range options {
		if option.Active {
			active++
			if option.Tag != "pt-BR" {
				t.Fatalf("active = %+v", option)
			}
		}
		if option.Label == "" {
			t.Fatalf("missing label for %s", option.Tag)
		}
	}
	if active != 1 {
		t.Fatalf("active options = %d", active)
	}
}
