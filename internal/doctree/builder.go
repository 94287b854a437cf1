package doctree

import (
	"strings"
	"unicode/utf8"
)

// InlineBuilder assembles the inline children of a block from formatted
// fragments. Consecutive fragments with equal formatting share one style
// range. The zero value is ready to use.
type InlineBuilder struct {
	children []Inline
	buf      strings.Builder
	pos      int
	styles   []StyleRange
}

// WriteText appends s with the given formatting to the current text element.
func (b *InlineBuilder) WriteText(s string, attrs Attrs) {
	if s == "" {
		return
	}
	n := utf8.RuneCountInString(s)
	b.buf.WriteString(s)
	if attrs != (Attrs{}) {
		last := len(b.styles) - 1
		if last >= 0 && b.styles[last].End == b.pos && b.styles[last].Attrs() == attrs {
			b.styles[last].End += n
		} else {
			b.styles = append(b.styles, StyleRange{
				Start:   b.pos,
				End:     b.pos + n,
				Bold:    attrs.Bold,
				Italic:  attrs.Italic,
				LinkURL: attrs.LinkURL,
			})
		}
	}
	b.pos += n
}

// WriteOther ends the current text element and appends a non-text inline.
func (b *InlineBuilder) WriteOther(typ string) {
	b.flush()
	b.children = append(b.children, &InlineOther{Type: typ})
}

// Inlines ends the current text element and returns all children.
func (b *InlineBuilder) Inlines() []Inline {
	b.flush()
	return b.children
}

func (b *InlineBuilder) flush() {
	if b.pos == 0 {
		return
	}
	b.children = append(b.children, &Text{Content: b.buf.String(), Styles: b.styles})
	b.buf.Reset()
	b.pos = 0
	b.styles = nil
}
