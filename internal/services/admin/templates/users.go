package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	routepath "github.com/louisbranch/adminpanel/internal/services/admin/routepath"
)

const (
	// UsersSectionID is the htmx swap target for every users interaction.
	UsersSectionID = "users-panel"
	usersTarget    = "#" + UsersSectionID
)

// UsersSection renders the message banner, new-user form, users table and
// edit dialog as one swappable fragment.
func UsersSection(view UsersView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw("<section class=\"users\"")
		h.attr("id", UsersSectionID)
		h.raw("><h2>")
		h.text(T(loc, "users.heading"))
		h.raw("</h2>")
		if view.Message != "" {
			h.child(MessageBanner(view.Message, loc))
		}
		h.child(DraftForm(view.Draft, loc))
		h.child(UsersTable(view, loc))
		if view.Dialog.Open {
			h.child(EditDialog(view.Dialog, loc))
		}
		h.raw("</section>")
		return h.err
	})
}

// MessageBanner renders an inline error message.
func MessageBanner(message string, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw("<p class=\"message error\" role=\"alert\">")
		h.text(message)
		h.raw("</p>")
		return h.err
	})
}

// DraftForm renders the new-user form.
func DraftForm(view DraftView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw("<form class=\"draft\" method=\"post\"")
		h.attr("action", routepath.UsersCreate)
		h.attr("hx-post", routepath.UsersCreate)
		h.attr("hx-target", usersTarget)
		h.raw(" hx-swap=\"outerHTML\"><h3>")
		h.text(T(loc, "form.heading"))
		h.raw("</h3><label>")
		h.text(T(loc, "form.name"))
		h.raw(" <input type=\"text\" name=\"name\"")
		h.attr("value", view.Name)
		h.raw("></label><label>")
		h.text(T(loc, "form.email"))
		h.raw(" <input type=\"email\" name=\"email\"")
		h.attr("value", view.Email)
		h.raw("></label><button type=\"submit\">")
		h.text(T(loc, "form.submit"))
		h.raw("</button>")
		if view.Error != "" {
			h.raw("<p class=\"field-error\" role=\"alert\">")
			h.text(view.Error)
			h.raw("</p>")
		}
		h.raw("</form>")
		return h.err
	})
}

// UsersTable renders the cached list, or the retryable empty state after a
// failed load.
func UsersTable(view UsersView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw("<div id=\"users-table\">")
		switch {
		case view.LoadFailed:
			h.raw("<div class=\"load-failed\"><p role=\"alert\">")
			h.text(T(loc, "users.load_failed"))
			if view.LoadError != "" {
				h.raw(" ")
				h.text(view.LoadError)
			}
			h.raw("</p><form method=\"post\"")
			h.attr("action", routepath.UsersReload)
			h.attr("hx-post", routepath.UsersReload)
			h.attr("hx-target", usersTarget)
			h.raw(" hx-swap=\"outerHTML\"><button type=\"submit\">")
			h.text(T(loc, "users.retry"))
			h.raw("</button></form></div>")
		case len(view.Rows) == 0:
			h.raw("<p class=\"empty\">")
			h.text(T(loc, "users.empty"))
			h.raw("</p>")
		default:
			h.raw("<table><thead><tr><th>")
			h.text(T(loc, "users.col.id"))
			h.raw("</th><th>")
			h.text(T(loc, "users.col.name"))
			h.raw("</th><th>")
			h.text(T(loc, "users.col.email"))
			h.raw("</th><th>")
			h.text(T(loc, "users.col.actions"))
			h.raw("</th></tr></thead><tbody>")
			for _, row := range view.Rows {
				h.child(userRow(row, loc))
			}
			h.raw("</tbody></table>")
		}
		h.raw("</div>")
		return h.err
	})
}

func userRow(row UserRow, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw("<tr")
		h.attr("data-user-id", row.ID)
		h.raw("><td>")
		h.text(row.ID)
		h.raw("</td><td>")
		h.text(row.Name)
		h.raw("</td><td>")
		h.text(row.Email)
		h.raw("</td><td class=\"actions\"><a")
		h.attr("href", row.EditURL)
		h.attr("hx-get", row.EditURL)
		h.attr("hx-target", usersTarget)
		h.raw(" hx-swap=\"outerHTML\">")
		h.text(T(loc, "users.edit"))
		h.raw("</a><form method=\"post\"")
		h.attr("action", row.DeleteURL)
		h.attr("hx-post", row.DeleteURL)
		h.attr("hx-target", usersTarget)
		h.raw(" hx-swap=\"outerHTML\"")
		h.raw("><button type=\"submit\" class=\"danger\">")
		h.text(T(loc, "users.delete"))
		h.raw("</button></form></td></tr>")
		return h.err
	})
}

// EditDialog renders the open edit dialog over the edit buffer.
func EditDialog(view DialogView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw("<dialog open class=\"edit-dialog\"")
		h.attr("data-user-id", view.ID)
		h.raw("><form method=\"post\"")
		h.attr("action", routepath.UsersEditSave)
		h.attr("hx-post", routepath.UsersEditSave)
		h.attr("hx-target", usersTarget)
		h.raw(" hx-swap=\"outerHTML\"><h3>")
		h.text(T(loc, "dialog.heading", view.ID))
		h.raw("</h3><label>")
		h.text(T(loc, "form.name"))
		h.raw(" <input type=\"text\" name=\"name\"")
		h.attr("value", view.Name)
		h.raw("></label><label>")
		h.text(T(loc, "form.email"))
		h.raw(" <input type=\"email\" name=\"email\"")
		h.attr("value", view.Email)
		h.raw("></label>")
		if view.Error != "" {
			h.raw("<p class=\"field-error\" role=\"alert\">")
			h.text(view.Error)
			h.raw("</p>")
		}
		h.raw("<div class=\"dialog-actions\"><button type=\"submit\">")
		h.text(T(loc, "dialog.save"))
		h.raw("</button><button type=\"submit\"")
		h.attr("formaction", routepath.UsersEditCancel)
		h.attr("hx-post", routepath.UsersEditCancel)
		h.attr("hx-target", usersTarget)
		h.raw(" hx-swap=\"outerHTML\">")
		h.text(T(loc, "dialog.cancel"))
		h.raw("</button></div></form></dialog>")
		return h.err
	})
}
