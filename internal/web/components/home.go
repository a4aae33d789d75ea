package components

import (
	"github.com/a-h/templ"

	"bioportal/internal/core/domain"
)

// Home renders the hero and the tool grid.
func Home(tools []domain.Tool) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<h1>Bioinformatics Portal</h1>")
		h.raw("<p>A unified suite of computational biology tools. No coding required. Drag, drop, and run.</p><hr>")
		h.raw(`<div class="grid">`)
		for _, t := range tools {
			h.render(ToolCard(t))
		}
		h.raw("</div>")
	})
}

// ToolCard links to one tool page.
func ToolCard(t domain.Tool) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="card tool-card"><div class="tool-card-title">`)
		h.text(t.Icon + " " + t.Title)
		h.raw(`</div><div class="tool-card-desc">`)
		h.text(t.Description)
		h.raw("</div>")
		if t.Category != "" {
			h.raw(`<div class="tool-card-category">`)
			h.text(t.Category)
			h.raw("</div>")
		}
		if !t.Available {
			h.raw(` <span class="caption">Coming soon</span>`)
		}
		h.raw("<p><a")
		h.href(t.Path())
		h.raw(">")
		h.text("→ Open " + t.Title)
		h.raw("</a></p></div>")
	})
}

// ToolHeader renders the title, description and reference links of a tool
// page.
func ToolHeader(t domain.Tool) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<h1>")
		h.text(t.Icon + " " + t.Title)
		h.raw("</h1><p>")
		h.text(t.Description)
		if t.Paper != "" {
			h.raw(" <a")
			h.href(t.Paper)
			h.raw(` target="_blank" rel="noopener">Paper</a>`)
		}
		if t.Code != "" {
			h.raw(" | <a")
			h.href(t.Code)
			h.raw(` target="_blank" rel="noopener">Code</a>`)
		}
		h.raw("</p><hr>")
	})
}
