package components

import (
	"strconv"

	"github.com/a-h/templ"

	"bioportal/internal/core/domain"
)

const viewerScript = "https://3Dmol.org/build/3Dmol-min.js"

// PageData is the chrome shared by every page.
type PageData struct {
	Title         string
	Active        string
	AuthEnabled   bool
	Authenticated bool
}

const styles = `
*{box-sizing:border-box}
body{margin:0;font-family:system-ui,-apple-system,"Segoe UI",sans-serif;color:#1a202c;background:#f7fafc}
a{color:#2b6cb0}
.layout{display:flex;min-height:100vh}
nav{width:240px;background:#1a365d;color:#fff;padding:1.25rem 1rem;flex-shrink:0}
nav a{display:block;color:#e2e8f0;text-decoration:none;padding:.4rem .5rem;border-radius:6px}
nav a.active,nav a:hover{background:#2c5282;color:#fff}
nav .brand{font-weight:700;font-size:1.1rem;margin-bottom:1rem}
nav form{margin-top:1.5rem}
main{flex:1;padding:2rem 2.5rem;max-width:1200px}
.card{background:#fff;border:1px solid #e2e8f0;border-radius:12px;padding:1.25rem 1.5rem;margin-bottom:1.25rem;box-shadow:0 1px 3px rgba(0,0,0,.08)}
.grid{display:grid;grid-template-columns:repeat(2,minmax(0,1fr));gap:1rem}
.columns{display:flex;gap:1.5rem;flex-wrap:wrap}.column{flex:1;min-width:280px}
.tool-card-title{font-weight:600;font-size:1.15rem}
.tool-card-desc{color:#4a5568;margin:.5rem 0}
.tool-card-category{display:inline-block;font-size:.75rem;background:#ebf8ff;color:#2b6cb0;border-radius:999px;padding:.1rem .6rem}
.field{margin-bottom:1rem}.field label{display:block;font-weight:600;margin-bottom:.3rem}
.field input[type=text],.field input[type=number],.field input[type=password],.field select,.field textarea{width:100%;padding:.45rem;border:1px solid #cbd5e0;border-radius:6px;font:inherit}
.help,.caption{color:#718096;font-size:.85rem}
button{background:#2b6cb0;color:#fff;border:0;border-radius:6px;padding:.55rem 1.1rem;font:inherit;cursor:pointer}
button.secondary{background:#e2e8f0;color:#1a202c}
button:disabled{opacity:.5;cursor:not-allowed}
.msg{padding:.75rem 1rem;border-radius:8px;margin-bottom:1rem}
.msg-error{background:#fff5f5;color:#c53030}.msg-warning{background:#fffaf0;color:#c05621}
.msg-info{background:#ebf8ff;color:#2b6cb0}.msg-success{background:#f0fff4;color:#2f855a}
table{border-collapse:collapse;width:100%;font-size:.9rem}
th,td{border-bottom:1px solid #e2e8f0;padding:.4rem .6rem;text-align:left}
pre{background:#edf2f7;padding:.75rem;border-radius:6px;overflow:auto}
details{margin-bottom:.75rem}summary{cursor:pointer;font-weight:600}
.viewer{position:relative;border:1px solid #e2e8f0;border-radius:8px;margin:.5rem 0}
.progress{height:10px;background:#e2e8f0;border-radius:999px;overflow:hidden}
.progress>div{height:100%;width:0;background:#3182ce;transition:width .2s}
`

// Page renders the document shell with the navigation sidebar.
func Page(p PageData, body ...templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		title := "Bioinformatics Portal"
		if p.Title != "" {
			title = p.Title + " · " + title
		}

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(title)
		h.raw("</title><style>" + styles + "</style>")
		h.raw(`<script src="` + viewerScript + `"></script></head><body><div class="layout">`)
		h.render(nav(p))
		h.raw("<main>")
		h.renderAll(body)
		h.raw("</main></div></body></html>")
	})
}

func nav(p PageData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<nav><div class="brand">🔬 Bioinformatics Portal</div>`)
		link := func(href, label string, active bool) {
			h.raw("<a")
			h.href(href)
			if active {
				h.raw(` class="active"`)
			}
			h.raw(">")
			h.text(label)
			h.raw("</a>")
		}
		link("/", "🏠 Home", p.Active == "")
		for _, t := range domain.Catalog {
			link(t.Path(), t.Icon+" "+t.Title, p.Active == t.Slug)
		}
		if p.AuthEnabled && p.Authenticated {
			h.raw(`<form method="post" action="/logout"><button class="secondary" type="submit">Log out</button></form>`)
		}
		h.raw("</nav>")
	})
}

// ErrorCard renders the body of an error page.
func ErrorCard(code int, title, msg string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section class="card"><h1>`)
		h.text(strconv.Itoa(code) + " " + title)
		h.raw("</h1><p>")
		h.text(msg)
		h.raw(`</p><a href="/">Back to home</a></section>`)
	})
}
