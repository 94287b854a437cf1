package doctree

import (
	"encoding/json"
	"fmt"
)

// Block and inline type names used on the wire.
const (
	BlockTypeParagraph      = "paragraph"
	BlockTypeListItem       = "list_item"
	BlockTypeHorizontalRule = "horizontal_rule"
	InlineTypeText          = "text"
)

// wireDocument is the JSON shape of a Document.
type wireDocument struct {
	ID     string      `json:"id,omitempty"`
	Title  string      `json:"title,omitempty"`
	Blocks []wireBlock `json:"blocks"`
}

type wireBlock struct {
	Type     string       `json:"type"`
	Heading  Heading      `json:"heading,omitempty"`
	Glyph    Glyph        `json:"glyph,omitempty"`
	Children []wireInline `json:"children,omitempty"`
}

type wireInline struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Styles []StyleRange `json:"styles,omitempty"`
}

// Parse decodes a JSON document and validates it.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return &doc, nil
}

// UnmarshalJSON decodes the wire format. Unknown block and inline types
// decode to Other and InlineOther.
func (d *Document) UnmarshalJSON(data []byte) error {
	var w wireDocument
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	d.ID = w.ID
	d.Title = w.Title
	d.Blocks = make([]Block, 0, len(w.Blocks))
	for _, wb := range w.Blocks {
		d.Blocks = append(d.Blocks, wb.toBlock())
	}
	return nil
}

// MarshalJSON encodes the document in the wire format.
func (d Document) MarshalJSON() ([]byte, error) {
	w := wireDocument{ID: d.ID, Title: d.Title, Blocks: make([]wireBlock, 0, len(d.Blocks))}
	for _, b := range d.Blocks {
		w.Blocks = append(w.Blocks, fromBlock(b))
	}
	return json.Marshal(w)
}

func (wb wireBlock) toBlock() Block {
	switch wb.Type {
	case BlockTypeParagraph:
		heading := wb.Heading
		if heading == "" {
			heading = HeadingNormal
		}
		return &Paragraph{Heading: heading, Children: toInlines(wb.Children)}
	case BlockTypeListItem:
		return &ListItem{Glyph: wb.Glyph, Children: toInlines(wb.Children)}
	case BlockTypeHorizontalRule:
		return &HorizontalRule{}
	default:
		return &Other{Type: wb.Type}
	}
}

func toInlines(ws []wireInline) []Inline {
	out := make([]Inline, 0, len(ws))
	for _, w := range ws {
		if w.Type == InlineTypeText {
			out = append(out, &Text{Content: w.Text, Styles: w.Styles})
			continue
		}
		out = append(out, &InlineOther{Type: w.Type})
	}
	return out
}

func fromBlock(b Block) wireBlock {
	switch v := b.(type) {
	case *Paragraph:
		return wireBlock{Type: BlockTypeParagraph, Heading: v.Heading, Children: fromInlines(v.Children)}
	case *ListItem:
		return wireBlock{Type: BlockTypeListItem, Glyph: v.Glyph, Children: fromInlines(v.Children)}
	case *HorizontalRule:
		return wireBlock{Type: BlockTypeHorizontalRule}
	case *Other:
		return wireBlock{Type: v.Type}
	default:
		return wireBlock{Type: "unknown"}
	}
}

func fromInlines(children []Inline) []wireInline {
	out := make([]wireInline, 0, len(children))
	for _, c := range children {
		switch v := c.(type) {
		case *Text:
			out = append(out, wireInline{Type: InlineTypeText, Text: v.Content, Styles: v.Styles})
		case *InlineOther:
			out = append(out, wireInline{Type: v.Type})
		}
	}
	return out
}
