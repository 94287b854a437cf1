// Package richtext converts a document tree into HTML markup.
//
// Conversion is a pure function of the block sequence: runs of list items
// are grouped into <ul>/<ol> elements, paragraphs are classified into
// headings or <p>, and inline formatting is rendered as <strong>, <em> and
// <a>. Blocks the converter does not know are skipped.
package richtext

import (
	"strings"

	"github.com/dastrobu/doc-html-mcp/internal/doctree"
)

// Converter renders blocks with a prepared configuration.
// A Converter holds no per-call state and may be shared between goroutines.
type Converter struct {
	config *PreparedConfig
}

// NewConverter returns a converter using config, or the embedded default
// configuration if config is nil.
func NewConverter(config *PreparedConfig) *Converter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Converter{config: config}
}

// Convert renders blocks with the default configuration.
func Convert(blocks []doctree.Block) string {
	return NewConverter(nil).Convert(blocks)
}

// listTag is the element wrapping a run of list items; the empty value
// means no list is open.
type listTag string

const (
	noOpenList listTag = ""
	listTagUL  listTag = "ul"
	listTagOL  listTag = "ol"
)

func tagForGlyph(g doctree.Glyph) listTag {
	if g.Ordered() {
		return listTagOL
	}
	return listTagUL
}

// listState tracks the open list while walking the block sequence.
type listState struct {
	out  *strings.Builder
	open listTag
}

// close writes the end tag of the open list, if any.
func (s *listState) close() {
	if s.open == noOpenList {
		return
	}
	s.out.WriteString("</" + string(s.open) + ">\n")
	s.open = noOpenList
}

// enter makes want the open list, closing a list of the other kind first.
func (s *listState) enter(want listTag) {
	if s.open == want {
		return
	}
	s.close()
	s.out.WriteString("<" + string(want) + ">\n")
	s.open = want
}

// Convert renders the block sequence as newline-separated HTML fragments.
// Text must be valid UTF-8 and style ranges must not overlap, as checked by
// doctree.Document.Validate; unsorted ranges are ordered before rendering.
func (c *Converter) Convert(blocks []doctree.Block) string {
	var sb strings.Builder
	state := listState{out: &sb}

	for _, block := range blocks {
		switch b := block.(type) {
		case *doctree.Paragraph:
			state.close()
			sb.WriteString(c.RenderParagraph(b))
		case *doctree.HorizontalRule:
			state.close()
			sb.WriteString("<hr>\n")
		case *doctree.ListItem:
			state.enter(tagForGlyph(b.Glyph))
			sb.WriteString(c.RenderListItem(b))
		default:
			// unsupported blocks produce no output and leave lists open
		}
	}
	state.close()

	return sb.String()
}

// ConvertDocument renders a whole document.
func (c *Converter) ConvertDocument(doc *doctree.Document) string {
	if doc == nil {
		return ""
	}
	return c.Convert(doc.Blocks)
}
