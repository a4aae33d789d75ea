package components

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/a-h/templ"

	"bioportal/internal/core/domain"
)

// DownloadLink renders an anchor styled as a button.
func DownloadLink(href, label string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<a download")
		h.href(href)
		h.raw(`><button type="button">`)
		h.text(label)
		h.raw("</button></a> ")
	})
}

// DesignResults renders one collapsible panel per structure with a viewer
// and a download link.
func DesignResults(set string, artifacts []domain.Artifact) templ.Component {
	return component(func(h *htmlWriter) {
		if len(artifacts) == 0 {
			return
		}
		h.raw("<h2>Results</h2>")
		for i, a := range artifacts {
			h.render(Details(fmt.Sprintf("Design %d", i+1), i == 0,
				StructureViewer(set+"-"+strconv.Itoa(i), a.Data, DefaultViewer),
				DownloadLink(DownloadURL(set, a.Name), "Download PDB"),
			))
		}
		if len(artifacts) > 1 {
			h.render(DownloadLink(ZipURL(set), "Download all (ZIP)"))
		}
	})
}

// Table renders a header row and data rows.
func Table(columns []string, rows [][]string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<table><thead><tr>")
		for _, c := range columns {
			h.raw("<th>")
			h.text(c)
			h.raw("</th>")
		}
		h.raw("</tr></thead><tbody>")
		for _, row := range rows {
			h.raw("<tr>")
			for _, cell := range row {
				h.raw("<td>")
				h.text(cell)
				h.raw("</td>")
			}
			h.raw("</tr>")
		}
		h.raw("</tbody></table>")
	})
}

// BatchPreview shows the first n rows of a batch file and the row count.
func BatchPreview(t *domain.Table, n int) templ.Component {
	head := t.Head(n)
	rows := make([][]string, len(head))
	for i, rec := range head {
		row := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			row[j] = rec[col]
		}
		rows[i] = row
	}
	return Group(
		Table(t.Columns, rows),
		Caption("Total rows: "+strconv.Itoa(t.Len())),
	)
}

// BatchResults renders the per-row status table.
func BatchResults(outcomes []domain.RowOutcome) templ.Component {
	rows := make([][]string, len(outcomes))
	for i, o := range outcomes {
		names := make([]string, len(o.Artifacts))
		for j, a := range o.Artifacts {
			names[j] = a.Name
		}
		detail := o.Message
		if o.Error != "" {
			detail = o.Error
			if o.Kind != "" {
				detail = string(o.Kind) + ": " + o.Error
			}
		}
		rows[i] = []string{strconv.Itoa(o.Row + 1), string(o.Status), strings.Join(names, ", "), detail}
	}
	return Group(
		component(func(h *htmlWriter) { h.raw("<h2>Batch results</h2>") }),
		Table([]string{"Row", "Status", "Outputs", "Details"}, rows),
	)
}

// Progress renders a bar that follows a batch over the progress websocket
// while the enclosing form is submitted.
func Progress(batchID string) templ.Component {
	return component(func(h *htmlWriter) {
		elID := domID("progress", batchID)
		h.raw(`<div class="field" hidden`)
		h.attr("id", elID)
		h.raw(`><div class="progress"><div></div></div><div class="caption">Processing...</div></div>`)
		h.raw(`<script>(function(){var box=document.getElementById("` + elID + `");`)
		h.raw(`var form=box.closest("form");if(!form)return;`)
		h.raw(`form.addEventListener("submit",function(ev){`)
		h.raw(`if(ev.submitter&&ev.submitter.value!=="run")return;box.hidden=false;`)
		h.raw(`var proto=location.protocol==="https:"?"wss://":"ws://";`)
		h.raw(`var ws=new WebSocket(proto+location.host+"/api/ws?batch=` + domID(batchID) + `");`)
		h.raw(`ws.onmessage=function(m){m.data.split("\n").forEach(function(line){if(!line)return;`)
		h.raw(`var msg=JSON.parse(line);if(msg.type!=="batch_progress")return;var p=msg.payload;`)
		h.raw(`box.querySelector(".progress>div").style.width=(p.fraction*100)+"%";`)
		h.raw(`box.querySelector(".caption").textContent="Processed "+p.completed+" / "+p.total;});};`)
		h.raw(`});})();</script>`)
	})
}

func toValidUTF8(b []byte) []byte {
	if utf8.Valid(b) {
		return b
	}
	return []byte(strings.ToValidUTF8(string(b), "\uFFFD"))
}
