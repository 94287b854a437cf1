// Package docx imports WordprocessingML (.docx) documents into a document
// tree.
//
// Only the parts the HTML converter can use are read: paragraph headings,
// list numbering formats, bold/italic run properties and hyperlinks.
// Elements are matched by local name so that documents written with
// non-standard namespace prefixes still import.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/dastrobu/doc-html-mcp/internal/doctree"
)

// Package part names
const (
	partDocument  = "word/document.xml"
	partNumbering = "word/numbering.xml"
	partRels      = "word/_rels/document.xml.rels"
	partCore      = "docProps/core.xml"
)

// Other block types produced for WordprocessingML elements
const (
	BlockTypeTable    = "table"
	InlineTypeDrawing = "drawing"
)

// maxPartSize bounds the decompressed size of a single package part.
const maxPartSize = 64 << 20

var (
	exprBody       = xpath.MustCompile(`//*[local-name()='body']`)
	exprAbstract   = xpath.MustCompile(`//*[local-name()='abstractNum']`)
	exprNum        = xpath.MustCompile(`//*[local-name()='num']`)
	exprLevel      = xpath.MustCompile(`*[local-name()='lvl']`)
	exprRelation   = xpath.MustCompile(`//*[local-name()='Relationship']`)
	exprTitle      = xpath.MustCompile(`//*[local-name()='title']`)
	exprPStyle     = xpath.MustCompile(`*[local-name()='pPr']/*[local-name()='pStyle']`)
	exprNumPr      = xpath.MustCompile(`*[local-name()='pPr']/*[local-name()='numPr']`)
	exprBottomBdr  = xpath.MustCompile(`*[local-name()='pPr']/*[local-name()='pBdr']/*[local-name()='bottom']`)
	exprNumID      = xpath.MustCompile(`*[local-name()='numId']`)
	exprIlvl       = xpath.MustCompile(`*[local-name()='ilvl']`)
	exprAbstractID = xpath.MustCompile(`*[local-name()='abstractNumId']`)
	exprNumFmt     = xpath.MustCompile(`*[local-name()='numFmt']`)
	exprRunProps   = xpath.MustCompile(`*[local-name()='rPr']`)
	exprBold       = xpath.MustCompile(`*[local-name()='b']`)
	exprItalic     = xpath.MustCompile(`*[local-name()='i']`)
)

// Parse reads a .docx package.
func Parse(id string, data []byte) (*doctree.Document, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open docx archive: %w", err)
	}

	parts := map[string]*xmlquery.Node{}
	for _, name := range []string{partDocument, partNumbering, partRels, partCore} {
		node, err := readPart(archive, name)
		if err != nil {
			return nil, err
		}
		if node != nil {
			parts[name] = node
		}
	}

	root, ok := parts[partDocument]
	if !ok {
		return nil, fmt.Errorf("docx archive has no %s", partDocument)
	}
	body := xmlquery.QuerySelector(root, exprBody)
	if body == nil {
		return nil, fmt.Errorf("%s has no body element", partDocument)
	}

	im := &importer{
		formats: numberingFormats(parts[partNumbering]),
		links:   relationships(parts[partRels]),
	}

	doc := &doctree.Document{ID: id, Title: coreTitle(parts[partCore])}
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		switch child.Data {
		case "p":
			doc.Blocks = append(doc.Blocks, im.paragraph(child))
		case "tbl":
			doc.Blocks = append(doc.Blocks, &doctree.Other{Type: BlockTypeTable})
		case "sectPr", "bookmarkStart", "bookmarkEnd":
			// section properties and bookmarks are not content
		default:
			doc.Blocks = append(doc.Blocks, &doctree.Other{Type: child.Data})
		}
	}

	if doc.Title == "" {
		doc.Title = firstHeading(doc)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("imported document is invalid: %w", err)
	}
	return doc, nil
}

// readPart parses one XML part. A missing part yields nil without error.
func readPart(archive *zip.Reader, name string) (*xmlquery.Node, error) {
	f, err := archive.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxPartSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) > maxPartSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", name, maxPartSize)
	}
	node, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return node, nil
}

// attr returns the value of the attribute with the given local name.
func attr(n *xmlquery.Node, local string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// numberingFormats maps numId -> ilvl -> numFmt.
func numberingFormats(root *xmlquery.Node) map[string]map[string]string {
	formats := map[string]map[string]string{}
	if root == nil {
		return formats
	}

	abstract := map[string]map[string]string{}
	for _, an := range xmlquery.QuerySelectorAll(root, exprAbstract) {
		levels := map[string]string{}
		for _, lvl := range xmlquery.QuerySelectorAll(an, exprLevel) {
			levels[attr(lvl, "ilvl")] = attr(xmlquery.QuerySelector(lvl, exprNumFmt), "val")
		}
		abstract[attr(an, "abstractNumId")] = levels
	}
	for _, num := range xmlquery.QuerySelectorAll(root, exprNum) {
		ref := attr(xmlquery.QuerySelector(num, exprAbstractID), "val")
		if levels, ok := abstract[ref]; ok {
			formats[attr(num, "numId")] = levels
		}
	}
	return formats
}

// relationships maps relationship ids to external targets.
func relationships(root *xmlquery.Node) map[string]string {
	links := map[string]string{}
	if root == nil {
		return links
	}
	for _, rel := range xmlquery.QuerySelectorAll(root, exprRelation) {
		links[attr(rel, "Id")] = attr(rel, "Target")
	}
	return links
}

func coreTitle(root *xmlquery.Node) string {
	if root == nil {
		return ""
	}
	if n := xmlquery.QuerySelector(root, exprTitle); n != nil {
		return strings.TrimSpace(n.InnerText())
	}
	return ""
}

func firstHeading(doc *doctree.Document) string {
	for _, b := range doc.Blocks {
		if p, ok := b.(*doctree.Paragraph); ok && p.Heading != doctree.HeadingNormal {
			if title := strings.TrimSpace(p.Text()); title != "" {
				return title
			}
		}
	}
	return ""
}

// glyphForFormat maps a WordprocessingML numFmt to a list glyph.
func glyphForFormat(numFmt string) doctree.Glyph {
	switch numFmt {
	case "decimal", "decimalZero":
		return doctree.GlyphNumber
	case "upperLetter":
		return doctree.GlyphLatinUpper
	case "lowerLetter":
		return doctree.GlyphLatinLower
	case "upperRoman":
		return doctree.GlyphRomanUpper
	case "lowerRoman":
		return doctree.GlyphRomanLower
	default:
		return doctree.GlyphBullet
	}
}

// headingForStyle maps built-in paragraph style ids to headings.
func headingForStyle(styleID string) doctree.Heading {
	s := strings.ToLower(strings.ReplaceAll(styleID, " ", ""))
	switch {
	case s == "title":
		return doctree.HeadingTitle
	case s == "subtitle":
		return doctree.HeadingSubtitle
	case strings.HasPrefix(s, "heading") && len(s) == len("heading")+1:
		level := int(s[len(s)-1] - '0')
		return doctree.HeadingForLevel(level)
	default:
		return doctree.HeadingNormal
	}
}
