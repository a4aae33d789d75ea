package components

import (
	"encoding/json"
	"strconv"

	"github.com/a-h/templ"
)

// ViewerStyle is a 3Dmol.js representation.
type ViewerStyle string

const (
	StyleCartoon ViewerStyle = "cartoon"
	StyleStick   ViewerStyle = "stick"
	StyleSphere  ViewerStyle = "sphere"
	StyleSurface ViewerStyle = "surface"
)

type ViewerOptions struct {
	Style  ViewerStyle
	Width  int
	Height int
	Spin   bool
}

// DefaultViewer matches the result panels: cartoon, 700x400, no spin.
var DefaultViewer = ViewerOptions{Style: StyleCartoon, Width: 700, Height: 400}

func (o ViewerOptions) normalize() ViewerOptions {
	switch o.Style {
	case StyleCartoon, StyleStick, StyleSphere, StyleSurface:
	default:
		o.Style = StyleCartoon
	}
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 500
	}
	return o
}

// StructureViewer embeds an interactive 3D view of PDB text. The structure
// travels as a JSON string literal, which json.Marshal escapes for script
// context.
func StructureViewer(id string, pdb []byte, opts ViewerOptions) templ.Component {
	return component(func(h *htmlWriter) {
		o := opts.normalize()
		elID := domID("viewer", id)
		payload, err := json.Marshal(string(toValidUTF8(pdb)))
		if err != nil {
			h.err = err
			return
		}

		h.raw(`<div class="viewer"`)
		h.attr("id", elID)
		h.attr("style", "width:"+strconv.Itoa(o.Width)+"px;height:"+strconv.Itoa(o.Height)+"px")
		h.raw("></div><script>(function(){")
		h.raw(`var el=document.getElementById("` + elID + `");`)
		h.raw(`if(!window.$3Dmol){el.textContent="3D viewer unavailable";return;}`)
		h.raw(`var v=$3Dmol.createViewer(el,{backgroundColor:"white"});`)
		h.raw("v.addModel(")
		h.raw(string(payload))
		h.raw(`,"pdb");`)
		if o.Style == StyleSurface {
			h.raw(`v.setStyle({},{cartoon:{}});v.addSurface($3Dmol.SurfaceType.VDW,{opacity:0.85});`)
		} else {
			h.raw(`v.setStyle({},{` + string(o.Style) + `:{}});`)
		}
		h.raw("v.zoomTo();v.render();")
		if o.Spin {
			h.raw(`v.spin("y");`)
		}
		h.raw("})();</script>")
	})
}
