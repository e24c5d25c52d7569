// Package layout provides structural templ components that wrap page content
// without adding markup of their own beyond a single container element.
package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const (
	openTag  = "<div>"
	closeTag = "</div>"
)

// Container renders children inside exactly one attribute-less <div>.
// A nil children component renders an empty container.
// Render errors from children are returned unchanged.
func Container(children templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, openTag); err != nil {
			return err
		}
		if children != nil {
			if err := children.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, closeTag)
		return err
	})
}

// Passthrough is the children-slot form of Container. It wraps whatever was
// attached to the render context with templ.WithChildren.
func Passthrough() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		children := templ.GetChildren(ctx)
		// Children must not leak into nested components that also read the slot.
		ctx = templ.ClearChildren(ctx)
		return Container(children).Render(ctx, w)
	})
}

// Text renders s as HTML-escaped text.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}
