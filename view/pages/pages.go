// Package pages holds the full HTML pages served by relay.
package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/relay/view/layout"
)

// HomeData is the profile summary shown on the home page.
type HomeData struct {
	Name  string
	Email string
	// SignedIn is false when the request carried no cookie.
	SignedIn bool
}

// Home renders the profile summary for data.
func Home(data HomeData) templ.Component {
	if !data.SignedIn {
		return document("relay", layout.Container(element("p", layout.Text("Not signed in."))))
	}
	return document("relay", layout.Container(templ.Join(
		element("h1", layout.Text(data.Name)),
		element("p", layout.Text(data.Email)),
	)))
}

// Error renders an error page for status with message.
func Error(status int, message string) templ.Component {
	title := strconv.Itoa(status)
	return document(title, layout.Container(templ.Join(
		element("h1", layout.Text(title)),
		element("p", layout.Text(message)),
	)))
}

// document renders a minimal HTML5 document around body.
func document(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html><html lang="en"><head><meta charset="utf-8"><title>%s</title></head><body>`,
			templ.EscapeString(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

// element wraps children in a bare tag.
func element(tag string, children templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<"+tag+">"); err != nil {
			return err
		}
		if err := children.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}
