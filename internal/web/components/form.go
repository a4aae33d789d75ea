package components

import (
	"strings"

	"github.com/a-h/templ"
)

// MessageKind selects the colour of an inline message.
type MessageKind string

const (
	MessageError   MessageKind = "error"
	MessageWarning MessageKind = "warning"
	MessageInfo    MessageKind = "info"
	MessageSuccess MessageKind = "success"
)

// Message renders an inline notice. An empty text renders nothing.
func Message(kind MessageKind, text string) templ.Component {
	return component(func(h *htmlWriter) {
		if text == "" {
			return
		}
		h.raw(`<div role="status" class="msg msg-`)
		h.text(string(kind))
		h.raw(`">`)
		h.text(text)
		h.raw("</div>")
	})
}

// Form renders a POST form. Multipart forms carry file uploads.
func Form(action string, multipart bool, children ...templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<form method="post"`)
		h.attr("action", action)
		if multipart {
			h.raw(` enctype="multipart/form-data"`)
		}
		h.raw(">")
		h.renderAll(children)
		h.raw("</form>")
	})
}

// Upload describes a file input with an extension allow-list.
type Upload struct {
	Name  string
	Label string
	Types []string
	Help  string
}

// AcceptedFormats is the default help text for an upload field.
func AcceptedFormats(types []string) string {
	list := "any"
	if len(types) > 0 {
		list = strings.Join(types, ", ")
	}
	return "Accepted formats: " + list + ". Drag and drop or click to browse."
}

func UploadField(u Upload) templ.Component {
	return component(func(h *htmlWriter) {
		help := u.Help
		if help == "" {
			help = AcceptedFormats(u.Types)
		}
		accept := make([]string, len(u.Types))
		for i, t := range u.Types {
			accept[i] = "." + t
		}

		h.raw(`<div class="field"><label`)
		h.attr("for", u.Name)
		h.raw(">")
		h.text(u.Label)
		h.raw(`</label><input type="file"`)
		h.attr("id", u.Name)
		h.attr("name", u.Name)
		if len(accept) > 0 {
			h.attr("accept", strings.Join(accept, ","))
		}
		h.raw(`><div class="help">`)
		h.text(help)
		h.raw("</div></div>")
	})
}

// Input is a single-line text, number or password field.
type Input struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Min         string
	Max         string
	Step        string
	Help        string
	Disabled    bool
}

func InputField(in Input) templ.Component {
	return component(func(h *htmlWriter) {
		typ := in.Type
		if typ == "" {
			typ = "text"
		}
		h.raw(`<div class="field"><label`)
		h.attr("for", in.Name)
		h.raw(">")
		h.text(in.Label)
		h.raw("</label><input")
		h.attr("type", typ)
		h.attr("id", in.Name)
		h.attr("name", in.Name)
		h.attr("value", in.Value)
		for _, kv := range [][2]string{{"placeholder", in.Placeholder}, {"min", in.Min}, {"max", in.Max}, {"step", in.Step}} {
			if kv[1] != "" {
				h.attr(kv[0], kv[1])
			}
		}
		if in.Disabled {
			h.raw(" disabled")
		}
		h.raw(">")
		if in.Help != "" {
			h.raw(`<div class="help">`)
			h.text(in.Help)
			h.raw("</div>")
		}
		h.raw("</div>")
	})
}

func TextArea(name, label, value, help string, rows int) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="field"><label`)
		h.attr("for", name)
		h.raw(">")
		h.text(label)
		h.raw("</label><textarea")
		h.attr("id", name)
		h.attr("name", name)
		if rows > 0 {
			h.attr("rows", itoa(rows))
		}
		h.raw(">")
		h.text(value)
		h.raw("</textarea>")
		if help != "" {
			h.raw(`<div class="help">`)
			h.text(help)
			h.raw("</div>")
		}
		h.raw("</div>")
	})
}

// Select renders a drop-down. Options are shown and submitted verbatim.
func Select(name, label string, options []string, selected string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="field"><label`)
		h.attr("for", name)
		h.raw(">")
		h.text(label)
		h.raw("</label><select")
		h.attr("id", name)
		h.attr("name", name)
		h.raw(">")
		for _, o := range options {
			h.raw("<option")
			h.attr("value", o)
			if o == selected {
				h.raw(" selected")
			}
			h.raw(">")
			h.text(o)
			h.raw("</option>")
		}
		h.raw("</select></div>")
	})
}

// Choices renders a radio group or, when multiple is set, a checkbox group.
func Choices(name, label string, options []string, selected []string, multiple bool) templ.Component {
	return component(func(h *htmlWriter) {
		typ := "radio"
		if multiple {
			typ = "checkbox"
		}
		h.raw(`<div class="field"><label>`)
		h.text(label)
		h.raw("</label>")
		for _, o := range options {
			h.raw(`<label style="font-weight:normal"><input`)
			h.attr("type", typ)
			h.attr("name", name)
			h.attr("value", o)
			for _, s := range selected {
				if s == o {
					h.raw(" checked")
					break
				}
			}
			h.raw("> ")
			h.text(o)
			h.raw("</label>")
		}
		h.raw("</div>")
	})
}

// Hidden renders a hidden form value.
func Hidden(name, value string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<input type="hidden"`)
		h.attr("name", name)
		h.attr("value", value)
		h.raw(">")
	})
}

// Button renders a submit button. A non-empty name submits name=value.
type Button struct {
	Label     string
	Name      string
	Value     string
	Secondary bool
	Disabled  bool
	Title     string
}

func SubmitButton(b Button) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<button type="submit"`)
		if b.Name != "" {
			h.attr("name", b.Name)
			h.attr("value", b.Value)
		}
		if b.Secondary {
			h.raw(` class="secondary"`)
		}
		if b.Title != "" {
			h.attr("title", b.Title)
		}
		if b.Disabled {
			h.raw(" disabled")
		}
		h.raw(">")
		h.text(b.Label)
		h.raw("</button> ")
	})
}

// Login renders the shared-password form.
func Login(next, errMsg string) templ.Component {
	return Section("Sign in",
		Message(MessageError, errMsg),
		Form("/login", false,
			Hidden("next", next),
			InputField(Input{Name: "password", Label: "Password", Type: "password"}),
			SubmitButton(Button{Label: "Login"}),
		),
	)
}
