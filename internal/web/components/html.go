// Package components renders the portal pages as templ components.
package components

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// htmlWriter stops writing after the first error so components can be
// written as straight-line code.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="`)
	h.text(value)
	h.raw(`"`)
}

func (h *htmlWriter) href(u string) {
	h.attr("href", string(templ.URL(u)))
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

func (h *htmlWriter) renderAll(cs []templ.Component) {
	for _, c := range cs {
		h.render(c)
	}
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

// Text renders escaped text.
func Text(s string) templ.Component {
	return component(func(h *htmlWriter) { h.text(s) })
}

// Group renders components one after another.
func Group(cs ...templ.Component) templ.Component {
	return component(func(h *htmlWriter) { h.renderAll(cs) })
}

// Section wraps children in a titled card.
func Section(title string, children ...templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section class="card">`)
		if title != "" {
			h.raw("<h2>")
			h.text(title)
			h.raw("</h2>")
		}
		h.renderAll(children)
		h.raw("</section>")
	})
}

// Columns lays children out side by side.
func Columns(children ...templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="columns">`)
		for _, c := range children {
			h.raw(`<div class="column">`)
			h.render(c)
			h.raw("</div>")
		}
		h.raw("</div>")
	})
}

// Details renders a collapsible block.
func Details(summary string, open bool, children ...templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<details")
		if open {
			h.raw(" open")
		}
		h.raw("><summary>")
		h.text(summary)
		h.raw("</summary>")
		h.renderAll(children)
		h.raw("</details>")
	})
}

// Code renders preformatted text.
func Code(s string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<pre><code>")
		h.text(s)
		h.raw("</code></pre>")
	})
}

// Caption renders muted helper text.
func Caption(s string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<p class="caption">`)
		h.text(s)
		h.raw("</p>")
	})
}

// DownloadURL is the session download path of one artifact.
func DownloadURL(set, name string) string {
	return "/downloads/" + url.PathEscape(set) + "/" + url.PathEscape(name)
}

// ZipURL is the session download path of a whole artifact set.
func ZipURL(set string) string {
	return "/downloads/" + url.PathEscape(set) + ".zip"
}

func domID(parts ...string) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte('-')
		}
		for _, r := range p {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
				b.WriteRune(r)
			default:
				b.WriteByte('_')
			}
		}
	}
	return b.String()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
