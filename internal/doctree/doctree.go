// Package doctree models a rich-text document as an ordered sequence of
// block elements. It is the input of the HTML converter and the output of
// the document importers.
package doctree

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// BlockKind discriminates the block variants.
type BlockKind int

const (
	KindOther BlockKind = iota
	KindParagraph
	KindListItem
	KindHorizontalRule
)

// String returns the wire name of the kind.
func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return BlockTypeParagraph
	case KindListItem:
		return BlockTypeListItem
	case KindHorizontalRule:
		return BlockTypeHorizontalRule
	default:
		return "other"
	}
}

// Block is a top-level structural unit of a document.
// The set of implementations is closed: *Paragraph, *ListItem,
// *HorizontalRule and *Other.
type Block interface {
	Kind() BlockKind
	block()
}

// Inline is a child of a text-bearing block: *Text or *InlineOther.
type Inline interface {
	inline()
}

// Document is an identified, titled sequence of blocks.
type Document struct {
	ID     string
	Title  string
	Blocks []Block
}

// Paragraph is a text-bearing block with an optional heading level.
type Paragraph struct {
	Heading  Heading
	Children []Inline
}

// ListItem is a text-bearing block rendered inside a list.
type ListItem struct {
	Glyph    Glyph
	Children []Inline
}

// HorizontalRule separates sections.
type HorizontalRule struct{}

// Other is any block the converter does not render (tables, images, ...).
type Other struct {
	Type string
}

func (*Paragraph) Kind() BlockKind      { return KindParagraph }
func (*ListItem) Kind() BlockKind       { return KindListItem }
func (*HorizontalRule) Kind() BlockKind { return KindHorizontalRule }
func (*Other) Kind() BlockKind          { return KindOther }

func (*Paragraph) block()      {}
func (*ListItem) block()       {}
func (*HorizontalRule) block() {}
func (*Other) block()          {}

// Text returns the concatenated content of the paragraph's text children.
func (p *Paragraph) Text() string { return childrenText(p.Children) }

// Text returns the concatenated content of the list item's text children.
func (l *ListItem) Text() string { return childrenText(l.Children) }

func childrenText(children []Inline) string {
	var sb strings.Builder
	for _, c := range children {
		if t, ok := c.(*Text); ok {
			sb.WriteString(t.Content)
		}
	}
	return sb.String()
}

// Attrs is the inline formatting of a single character.
type Attrs struct {
	Bold    bool
	Italic  bool
	LinkURL string
}

// StyleRange applies formatting to the rune offsets [Start, End).
type StyleRange struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Bold    bool   `json:"bold,omitempty"`
	Italic  bool   `json:"italic,omitempty"`
	LinkURL string `json:"link_url,omitempty"`
}

// Attrs returns the formatting carried by the range.
func (r StyleRange) Attrs() Attrs {
	return Attrs{Bold: r.Bold, Italic: r.Italic, LinkURL: r.LinkURL}
}

// Text is a contiguous run of characters. Formatting is stored run-length
// encoded: Styles are sorted, non-overlapping rune ranges and every offset
// not covered by a range is plain.
type Text struct {
	Content string
	Styles  []StyleRange
}

// InlineOther is an inline element that carries no renderable text,
// such as an inline image or a footnote reference.
type InlineOther struct {
	Type string
}

func (*Text) inline()        {}
func (*InlineOther) inline() {}

// Len returns the number of characters (runes) in the text.
func (t *Text) Len() int { return utf8.RuneCountInString(t.Content) }

// AttrsAt returns the formatting of the character at rune offset i.
func (t *Text) AttrsAt(i int) Attrs {
	// first range ending after i
	n := sort.Search(len(t.Styles), func(k int) bool { return t.Styles[k].End > i })
	if n < len(t.Styles) && t.Styles[n].Start <= i {
		return t.Styles[n].Attrs()
	}
	return Attrs{}
}

// Validate checks that the content is valid UTF-8 and that style ranges
// are inside the content, sorted and non-overlapping.
func (t *Text) Validate() error {
	if !utf8.ValidString(t.Content) {
		return fmt.Errorf("text is not valid UTF-8: %q", t.Content)
	}
	length := t.Len()
	prevEnd := 0
	for i, r := range t.Styles {
		if r.Start < 0 || r.End > length || r.Start >= r.End {
			return fmt.Errorf("style %d: range [%d,%d) outside text of length %d", i, r.Start, r.End, length)
		}
		if r.Start < prevEnd {
			return fmt.Errorf("style %d: range [%d,%d) overlaps or precedes previous range", i, r.Start, r.End)
		}
		prevEnd = r.End
	}
	return nil
}

// Validate checks every text element of the document.
func (d *Document) Validate() error {
	for i, b := range d.Blocks {
		var children []Inline
		switch v := b.(type) {
		case *Paragraph:
			children = v.Children
		case *ListItem:
			children = v.Children
		}
		for j, c := range children {
			t, ok := c.(*Text)
			if !ok {
				continue
			}
			if err := t.Validate(); err != nil {
				return fmt.Errorf("block %d, child %d: %w", i, j, err)
			}
		}
	}
	return nil
}
