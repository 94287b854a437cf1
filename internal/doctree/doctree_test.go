package doctree

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestText_AttrsAt(t *testing.T) {
	text := &Text{
		Content: "plain bold link",
		Styles: []StyleRange{
			{Start: 6, End: 10, Bold: true},
			{Start: 11, End: 15, LinkURL: "https://example.com"},
		},
	}

	tests := []struct {
		name  string
		index int
		want  Attrs
	}{
		{name: "before first range", index: 0, want: Attrs{}},
		{name: "start of bold range", index: 6, want: Attrs{Bold: true}},
		{name: "end of bold range", index: 9, want: Attrs{Bold: true}},
		{name: "gap between ranges", index: 10, want: Attrs{}},
		{name: "inside link", index: 12, want: Attrs{LinkURL: "https://example.com"}},
		{name: "past end", index: 20, want: Attrs{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.AttrsAt(tt.index); got != tt.want {
				t.Errorf("AttrsAt(%d) = %+v, want %+v", tt.index, got, tt.want)
			}
		})
	}
}

func TestText_Validate(t *testing.T) {
	tests := []struct {
		name    string
		text    Text
		wantErr bool
	}{
		{name: "no styles", text: Text{Content: "abc"}},
		{name: "covering range", text: Text{Content: "abc", Styles: []StyleRange{{Start: 0, End: 3, Bold: true}}}},
		{name: "multibyte runes", text: Text{Content: "héllo", Styles: []StyleRange{{Start: 0, End: 5, Italic: true}}}},
		{name: "end past content", text: Text{Content: "abc", Styles: []StyleRange{{Start: 0, End: 4}}}, wantErr: true},
		{name: "empty range", text: Text{Content: "abc", Styles: []StyleRange{{Start: 1, End: 1}}}, wantErr: true},
		{name: "negative start", text: Text{Content: "abc", Styles: []StyleRange{{Start: -1, End: 1}}}, wantErr: true},
		{name: "overlap", text: Text{Content: "abcdef", Styles: []StyleRange{{Start: 0, End: 3}, {Start: 2, End: 4}}}, wantErr: true},
		{name: "unsorted", text: Text{Content: "abcdef", Styles: []StyleRange{{Start: 3, End: 4}, {Start: 0, End: 1}}}, wantErr: true},
		{name: "invalid utf-8", text: Text{Content: "a\xffb"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.text.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGlyph_Ordered(t *testing.T) {
	ordered := []Glyph{GlyphNumber, GlyphLatinUpper, GlyphLatinLower, GlyphRomanUpper, GlyphRomanLower}
	for _, g := range ordered {
		if !g.Ordered() {
			t.Errorf("%s.Ordered() = false, want true", g)
		}
	}
	unordered := []Glyph{GlyphBullet, GlyphHollowBullet, GlyphSquareBullet, "", "STAR"}
	for _, g := range unordered {
		if g.Ordered() {
			t.Errorf("%q.Ordered() = true, want false", g)
		}
	}
}

func TestHeading_Level(t *testing.T) {
	for n := 1; n <= 6; n++ {
		if got := HeadingForLevel(n).Level(); got != n {
			t.Errorf("HeadingForLevel(%d).Level() = %d", n, got)
		}
	}
	if HeadingForLevel(7) != HeadingNormal {
		t.Errorf("HeadingForLevel(7) = %s, want NORMAL", HeadingForLevel(7))
	}
	if HeadingTitle.Level() != 0 {
		t.Errorf("TITLE.Level() = %d, want 0", HeadingTitle.Level())
	}
}

func TestParse(t *testing.T) {
	input := `{
  "id": "doc1",
  "title": "Sample",
  "blocks": [
    {"type": "paragraph", "heading": "heading1", "children": [{"type": "text", "text": "Title"}]},
    {"type": "list_item", "glyph": "number", "children": [
      {"type": "text", "text": "bold", "styles": [{"start": 0, "end": 4, "bold": true}]},
      {"type": "inline_image"}
    ]},
    {"type": "horizontal_rule"},
    {"type": "table"},
    {"type": "paragraph", "children": [{"type": "text", "text": "body"}]}
  ]
}`

	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.ID != "doc1" || doc.Title != "Sample" {
		t.Errorf("unexpected id/title: %q/%q", doc.ID, doc.Title)
	}
	if len(doc.Blocks) != 5 {
		t.Fatalf("expected 5 blocks, got %d", len(doc.Blocks))
	}

	wantKinds := []BlockKind{KindParagraph, KindListItem, KindHorizontalRule, KindOther, KindParagraph}
	for i, want := range wantKinds {
		if got := doc.Blocks[i].Kind(); got != want {
			t.Errorf("block %d kind = %s, want %s", i, got, want)
		}
	}

	p := doc.Blocks[0].(*Paragraph)
	if p.Heading != Heading1 {
		t.Errorf("expected HEADING1, got %s", p.Heading)
	}
	li := doc.Blocks[1].(*ListItem)
	if li.Glyph != GlyphNumber {
		t.Errorf("expected NUMBER glyph, got %s", li.Glyph)
	}
	if _, ok := li.Children[1].(*InlineOther); !ok {
		t.Errorf("expected InlineOther, got %T", li.Children[1])
	}
	if other := doc.Blocks[3].(*Other); other.Type != "table" {
		t.Errorf("expected other type table, got %q", other.Type)
	}
	if last := doc.Blocks[4].(*Paragraph); last.Heading != HeadingNormal {
		t.Errorf("expected missing heading to default to NORMAL, got %s", last.Heading)
	}
}

func TestParse_InvalidStyles(t *testing.T) {
	input := `{"blocks":[{"type":"paragraph","children":[{"type":"text","text":"ab","styles":[{"start":0,"end":5,"bold":true}]}]}]}`
	_, err := Parse([]byte(input))
	if err == nil {
		t.Fatal("expected error for out-of-range style")
	}
	if !strings.Contains(err.Error(), "invalid document") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDocument_MarshalJSON(t *testing.T) {
	doc := Document{
		ID: "x",
		Blocks: []Block{
			&Paragraph{Heading: Heading2, Children: []Inline{&Text{Content: "hi", Styles: []StyleRange{{Start: 0, End: 2, Italic: true}}}}},
			&HorizontalRule{},
		},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	p, ok := back.Blocks[0].(*Paragraph)
	if !ok || p.Heading != Heading2 || p.Text() != "hi" {
		t.Errorf("unexpected first block after round trip: %#v", back.Blocks[0])
	}
	if !p.Children[0].(*Text).AttrsAt(1).Italic {
		t.Error("expected italic style to survive round trip")
	}
}
