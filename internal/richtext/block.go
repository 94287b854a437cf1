package richtext

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dastrobu/doc-html-mcp/internal/doctree"
)

// Category is the rendering category of a paragraph.
type Category int

const (
	CategoryPlain Category = iota
	CategoryH1
	CategoryH2
	CategoryH3
	CategoryH4
	CategoryInferredHeading
)

// String returns a readable category name.
func (c Category) String() string {
	switch c {
	case CategoryH1:
		return "h1"
	case CategoryH2:
		return "h2"
	case CategoryH3:
		return "h3"
	case CategoryH4:
		return "h4"
	case CategoryInferredHeading:
		return "inferred_heading"
	default:
		return "plain"
	}
}

// Classify decides how a paragraph renders. Explicit heading levels 1-4 win;
// otherwise a short paragraph whose first text child starts bold is an
// inferred heading.
func (c *Converter) Classify(p *doctree.Paragraph) Category {
	switch p.Heading.Level() {
	case 1:
		return CategoryH1
	case 2:
		return CategoryH2
	case 3:
		return CategoryH3
	case 4:
		return CategoryH4
	}

	if c.inferHeading(p) {
		return CategoryInferredHeading
	}
	return CategoryPlain
}

func (c *Converter) inferHeading(p *doctree.Paragraph) bool {
	if !c.config.InferHeadings || len(p.Children) == 0 {
		return false
	}
	first, ok := p.Children[0].(*doctree.Text)
	if !ok || first.Content == "" || !first.AttrsAt(0).Bold {
		return false
	}
	text := strings.TrimSpace(p.Text())
	return utf8.RuneCountInString(text) < c.config.InferMaxLength
}

// tag returns the element name for a category.
func (c *Converter) tag(cat Category) string {
	switch cat {
	case CategoryH1:
		return "h1"
	case CategoryH2:
		return "h2"
	case CategoryH3:
		return "h3"
	case CategoryH4:
		return "h4"
	case CategoryInferredHeading:
		return "h" + strconv.Itoa(c.config.InferLevel)
	default:
		return "p"
	}
}

// RenderParagraph renders a paragraph followed by a newline. A paragraph
// whose trimmed text is empty renders as the empty string.
func (c *Converter) RenderParagraph(p *doctree.Paragraph) string {
	if strings.TrimSpace(p.Text()) == "" {
		return ""
	}
	tag := c.tag(c.Classify(p))
	return "<" + tag + ">" + c.RenderInline(p.Children) + "</" + tag + ">\n"
}

// RenderListItem renders a list item followed by a newline. The enclosing
// list element is written by Convert.
func (c *Converter) RenderListItem(li *doctree.ListItem) string {
	return c.config.ListItemIndent + "<li>" + c.RenderInline(li.Children) + "</li>\n"
}
