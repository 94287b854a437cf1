// Package md imports Markdown into a document tree using goldmark.
package md

import (
	"fmt"
	"strings"

	"github.com/dastrobu/doc-html-mcp/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Other block types produced for Markdown constructs the converter skips.
const (
	BlockTypeCodeBlock = "code_block"
	BlockTypeHTMLBlock = "html_block"
	BlockTypeTable     = "table"
	InlineTypeImage    = "inline_image"
)

var parser = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
	),
).Parser()

// Parse converts Markdown source to a document. Nested lists are flattened
// into a single sequence of list items in document order.
func Parse(id string, source []byte) (*doctree.Document, error) {
	root := parser.Parse(text.NewReader(source))
	doc := &doctree.Document{ID: id}

	// Walk the AST
	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		// Only process nodes when entering (not when leaving)
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			children := inlines(source, n)
			if doc.Title == "" {
				doc.Title = strings.TrimSpace(plainText(children))
			}
			doc.Blocks = append(doc.Blocks, &doctree.Paragraph{
				Heading:  doctree.HeadingForLevel(n.Level),
				Children: children,
			})
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph, *ast.TextBlock:
			// Text directly inside a list item belongs to the item
			if _, ok := node.Parent().(*ast.ListItem); ok {
				return ast.WalkSkipChildren, nil
			}
			doc.Blocks = append(doc.Blocks, &doctree.Paragraph{
				Heading:  doctree.HeadingNormal,
				Children: inlines(source, n),
			})
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			glyph := doctree.GlyphBullet
			if list, ok := n.Parent().(*ast.List); ok && list.IsOrdered() {
				glyph = doctree.GlyphNumber
			}
			doc.Blocks = append(doc.Blocks, &doctree.ListItem{
				Glyph:    glyph,
				Children: listItemInlines(source, n),
			})
			// Continue into nested lists
			return ast.WalkContinue, nil

		case *ast.ThematicBreak:
			doc.Blocks = append(doc.Blocks, &doctree.HorizontalRule{})
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock, *ast.FencedCodeBlock:
			doc.Blocks = append(doc.Blocks, &doctree.Other{Type: BlockTypeCodeBlock})
			return ast.WalkSkipChildren, nil

		case *ast.HTMLBlock:
			doc.Blocks = append(doc.Blocks, &doctree.Other{Type: BlockTypeHTMLBlock})
			return ast.WalkSkipChildren, nil

		case *extast.Table:
			doc.Blocks = append(doc.Blocks, &doctree.Other{Type: BlockTypeTable})
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk AST: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("imported document is invalid: %w", err)
	}

	return doc, nil
}

// inlineBuilder walks inline nodes into a doctree.InlineBuilder.
type inlineBuilder struct {
	source []byte
	doctree.InlineBuilder
}

func (b *inlineBuilder) write(s string, attrs doctree.Attrs) {
	b.WriteText(s, attrs)
}

func (b *inlineBuilder) walk(node ast.Node, attrs doctree.Attrs) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			b.write(string(n.Segment.Value(b.source)), attrs)
			if n.HardLineBreak() {
				b.write("\n", attrs)
			} else if n.SoftLineBreak() {
				b.write(" ", attrs)
			}

		case *ast.String:
			b.write(string(n.Value), attrs)

		case *ast.Emphasis:
			nested := attrs
			if n.Level >= 2 {
				nested.Bold = true
			} else {
				nested.Italic = true
			}
			b.walk(n, nested)

		case *ast.Link:
			nested := attrs
			nested.LinkURL = string(n.Destination)
			b.walk(n, nested)

		case *ast.AutoLink:
			nested := attrs
			nested.LinkURL = string(n.URL(b.source))
			b.write(string(n.Label(b.source)), nested)

		case *ast.RawHTML:
			for i := 0; i < n.Segments.Len(); i++ {
				segment := n.Segments.At(i)
				b.write(string(segment.Value(b.source)), attrs)
			}

		case *ast.Image:
			b.WriteOther(InlineTypeImage)

		case *extast.Strikethrough, *ast.CodeSpan:
			b.walk(n, attrs)

		default:
			b.walk(n, attrs)
		}
	}
}

func inlines(source []byte, node ast.Node) []doctree.Inline {
	b := &inlineBuilder{source: source}
	b.walk(node, doctree.Attrs{})
	return b.Inlines()
}

// listItemInlines joins the paragraphs directly inside a list item,
// separated by a space.
func listItemInlines(source []byte, item *ast.ListItem) []doctree.Inline {
	b := &inlineBuilder{source: source}
	first := true
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			if !first {
				b.write(" ", doctree.Attrs{})
			}
			b.walk(child, doctree.Attrs{})
			first = false
		}
	}
	return b.Inlines()
}

func plainText(children []doctree.Inline) string {
	var sb strings.Builder
	for _, c := range children {
		if t, ok := c.(*doctree.Text); ok {
			sb.WriteString(t.Content)
		}
	}
	return sb.String()
}
