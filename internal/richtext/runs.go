package richtext

import (
	"cmp"
	"iter"
	"slices"

	"github.com/dastrobu/doc-html-mcp/internal/doctree"
)

// Span is a text element whose formatting can be queried per character.
// *doctree.Text implements it.
type Span interface {
	// Text returns the raw character content.
	Text() string
	// AttrsAt returns the formatting of the character at rune offset i.
	AttrsAt(i int) doctree.Attrs
}

// StyleRun is a maximal substring of a span over which the formatting is
// constant. Start and End are rune offsets into the span.
type StyleRun struct {
	Text  string
	Start int
	End   int
	doctree.Attrs
}

// textSpan adapts *doctree.Text to Span.
type textSpan struct{ t *doctree.Text }

// newTextSpan adapts t, ordering its style ranges by start offset when they
// are not already. Overlapping ranges are not resolved.
func newTextSpan(t *doctree.Text) textSpan {
	byStart := func(a, b doctree.StyleRange) int { return cmp.Compare(a.Start, b.Start) }
	if slices.IsSortedFunc(t.Styles, byStart) {
		return textSpan{t}
	}
	sorted := *t
	sorted.Styles = slices.Clone(t.Styles)
	slices.SortStableFunc(sorted.Styles, byStart)
	return textSpan{&sorted}
}

func (s textSpan) Text() string                { return s.t.Content }
func (s textSpan) AttrsAt(i int) doctree.Attrs { return s.t.AttrsAt(i) }

// Runs partitions the span into style runs, left to right. Adjacent runs
// always differ in at least one attribute. An empty span yields nothing.
// The text must be valid UTF-8; invalid bytes come out as U+FFFD.
func Runs(span Span) iter.Seq[StyleRun] {
	return func(yield func(StyleRun) bool) {
		chars := []rune(span.Text())
		i := 0
		for i < len(chars) {
			start := i
			attrs := span.AttrsAt(i)
			for i < len(chars) && span.AttrsAt(i) == attrs {
				i++
			}
			run := StyleRun{
				Text:  string(chars[start:i]),
				Start: start,
				End:   i,
				Attrs: attrs,
			}
			if !yield(run) {
				return
			}
		}
	}
}
