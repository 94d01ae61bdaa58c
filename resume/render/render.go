package render

import (
	"fmt"
	"strings"

	"resume-forge/resume/ir"
)

// Target identifies the markup language a template renders to.
type Target string

const (
	TargetLaTeX Target = "latex"
	TargetHTML  Target = "html"
)

// Template describes one selectable output template.
type Template struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Target Target `json:"target"`
	Free   bool   `json:"free"`
}

type renderer interface {
	Render(doc ir.Document) (string, error)
}

var templates = []Template{
	{ID: "jake", Name: "Jake", Target: TargetLaTeX, Free: true},
	{ID: "classic", Name: "Classic", Target: TargetLaTeX, Free: true},
	{ID: "web", Name: "Web", Target: TargetHTML, Free: false},
}

var renderers = map[string]renderer{
	"jake":    latexRenderer{style: styleJake},
	"classic": latexRenderer{style: styleClassic},
	"web":     htmlRenderer{},
}

// Templates returns every selectable template.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// Known reports whether templateID names a registered template.
func Known(templateID string) bool {
	_, ok := renderers[normalizeID(templateID)]
	return ok
}

// Free reports whether templateID is available to the free tier.
func Free(templateID string) bool {
	id := normalizeID(templateID)
	for _, t := range templates {
		if t.ID == id {
			return t.Free
		}
	}
	return false
}

// Render maps a document to the markup string of the selected template.
// It is pure: identical input yields byte-identical output. Callers are
// expected to have validated the template id already; an unknown id here
// is still an error, never a silent default.
func Render(doc ir.Document, templateID string) (string, error) {
	r, ok := renderers[normalizeID(templateID)]
	if !ok {
		return "", fmt.Errorf("unknown template %q", templateID)
	}
	if err := doc.Validate(); err != nil {
		return "", err
	}
	return r.Render(doc)
}

func normalizeID(templateID string) string {
	return strings.ToLower(strings.TrimSpace(templateID))
}

// dateRange joins start and end with sep. One-sided ranges render the
// present side alone; fully absent ranges render empty so the layout column
// stays in place.
func dateRange(d ir.Dates, sep string) string {
	start := strings.TrimSpace(d.Start)
	end := strings.TrimSpace(d.End)
	switch {
	case start != "" && end != "":
		return start + sep + end
	case start != "":
		return start
	default:
		return end
	}
}
