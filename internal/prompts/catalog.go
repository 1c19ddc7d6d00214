// Package prompts maps analysis modes to model prompts. Every prompt carries
// the literal JSON shape the model is asked to answer with.
package prompts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/sozercan/prodsight/apimodels"
	"github.com/sozercan/prodsight/internal/helpers"
)

// DefaultSummaryMaxChars caps the prior session summary quoted in a prompt.
const DefaultSummaryMaxChars = 500

// Context is the request data interpolated into a prompt.
type Context struct {
	WindowInfo     *apimodels.WindowInfo
	GoalContext    *apimodels.GoalContext
	Click          *apimodels.Point
	NearbyElements []apimodels.NearbyElement
	GoalOriented   bool
	SessionData    map[string]any
	TextContent    string
	PriorSummary   string
	HasImage       bool
}

type Template struct {
	Mode apimodels.AnalysisMode

	// Schema is the JSON shape embedded in the prompt
	Schema string

	tmpl         *template.Template
	summaryLimit int
}

type Catalog struct {
	templates    map[apimodels.AnalysisMode]*template.Template
	summaryLimit int
}

// New parses every template once. summaryMaxChars <= 0 selects the default.
func New(summaryMaxChars int) *Catalog {
	if summaryMaxChars <= 0 {
		summaryMaxChars = DefaultSummaryMaxChars
	}
	c := &Catalog{
		templates:    make(map[apimodels.AnalysisMode]*template.Template, len(definitions)),
		summaryLimit: summaryMaxChars,
	}
	for mode, def := range definitions {
		c.templates[mode] = template.Must(template.New(string(mode)).Funcs(funcs).Parse(def.body + outputSection))
	}
	return c
}

// For returns the template for mode. Unknown modes get the full template.
func (c *Catalog) For(mode apimodels.AnalysisMode) *Template {
	mode = mode.Resolve()
	return &Template{
		Mode:         mode,
		Schema:       definitions[mode].schema,
		tmpl:         c.templates[mode],
		summaryLimit: c.summaryLimit,
	}
}

type renderData struct {
	Context
	Schema string
}

// Render interpolates ctx into the prompt.
func (t *Template) Render(ctx Context) (string, error) {
	ctx.PriorSummary = helpers.Truncate(strings.TrimSpace(ctx.PriorSummary), t.summaryLimit)

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, renderData{Context: ctx, Schema: t.Schema}); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", t.Mode, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

var funcs = template.FuncMap{
	"json": func(v any) string {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "{}"
		}
		return string(b)
	},
	"texts": func(elems []apimodels.NearbyElement) string {
		texts := make([]string, 0, len(elems))
		for _, e := range elems {
			if e.Text != "" {
				texts = append(texts, fmt.Sprintf("%q", e.Text))
			}
		}
		return strings.Join(texts, ", ")
	},
	"activities": func() string {
		return strings.Join(apimodels.Activities, ", ")
	},
}
