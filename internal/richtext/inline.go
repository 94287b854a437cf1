package richtext

import (
	"strings"

	"github.com/dastrobu/doc-html-mcp/internal/doctree"
)

// RenderRun renders one style run. Wrappers are applied innermost first:
// strong (only when the run is not a link), then em, then the anchor.
func (c *Converter) RenderRun(run StyleRun) string {
	segment := EscapeHTML(run.Text)

	if run.Bold && run.LinkURL == "" {
		segment = "<strong>" + segment + "</strong>"
	}
	if run.Italic {
		segment = "<em>" + segment + "</em>"
	}
	if run.LinkURL != "" {
		segment = `<a href="` + EscapeHTML(run.LinkURL) + `"` + c.config.anchorAttributes + ">" + segment + "</a>"
	}

	return segment
}

// RenderSpan renders every run of a span in order.
func (c *Converter) RenderSpan(span Span) string {
	var sb strings.Builder
	for run := range Runs(span) {
		sb.WriteString(c.RenderRun(run))
	}
	return sb.String()
}

// RenderInline renders the text children of a paragraph or list item.
// Inline elements without text are skipped.
func (c *Converter) RenderInline(children []doctree.Inline) string {
	var sb strings.Builder
	for _, child := range children {
		if text, ok := child.(*doctree.Text); ok {
			sb.WriteString(c.RenderSpan(newTextSpan(text)))
		}
	}
	return sb.String()
}
