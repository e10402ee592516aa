package feed

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

var defaultTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Markup renders views with a set of named templates: loading, empty, error,
// populated and card.
type Markup struct {
	tmpl *template.Template
}

func NewMarkup(tmpl *template.Template) *Markup {
	if tmpl == nil {
		tmpl = defaultTemplates
	}
	return &Markup{tmpl: tmpl}
}

func (m *Markup) Loading() (template.HTML, error) {
	return m.execute("loading", nil)
}

func (m *Markup) Card(card Card) (template.HTML, error) {
	return m.execute("card", card)
}

// View renders a terminal view.
func (m *Markup) View(v View) (template.HTML, error) {
	switch v.State {
	case StatePopulated:
		return m.execute("populated", v)
	case StateEmpty:
		return m.execute("empty", nil)
	case StateError:
		return m.Error(v.Error), nil
	}
	return "", fmt.Errorf("cannot render view in state %s", v.State)
}

// Error renders the error fragment. It falls back to an escaped paragraph when
// the template itself fails.
func (m *Markup) Error(message string) template.HTML {
	out, err := m.execute("error", message)
	if err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(message) + "</p>")
	}
	return out
}

func (m *Markup) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
