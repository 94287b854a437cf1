package docx

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/dastrobu/doc-html-mcp/internal/doctree"
)

// importer converts body elements using the package-level lookup tables.
type importer struct {
	formats map[string]map[string]string
	links   map[string]string
}

// paragraph converts a w:p element into a paragraph, list item or
// horizontal rule.
func (im *importer) paragraph(p *xmlquery.Node) doctree.Block {
	b := &doctree.InlineBuilder{}
	im.collect(p, b, "")
	children := b.Inlines()

	if numPr := xmlquery.QuerySelector(p, exprNumPr); numPr != nil {
		numID := attr(xmlquery.QuerySelector(numPr, exprNumID), "val")
		// numId 0 removes numbering inherited from the style
		if numID != "" && numID != "0" {
			ilvl := attr(xmlquery.QuerySelector(numPr, exprIlvl), "val")
			if ilvl == "" {
				ilvl = "0"
			}
			return &doctree.ListItem{
				Glyph:    glyphForFormat(im.formats[numID][ilvl]),
				Children: children,
			}
		}
	}

	if len(children) == 0 && xmlquery.QuerySelector(p, exprBottomBdr) != nil {
		return &doctree.HorizontalRule{}
	}

	heading := doctree.HeadingNormal
	if style := xmlquery.QuerySelector(p, exprPStyle); style != nil {
		heading = headingForStyle(attr(style, "val"))
	}
	return &doctree.Paragraph{Heading: heading, Children: children}
}

// collect walks the paragraph content. link is the target of the enclosing
// hyperlink, if any.
func (im *importer) collect(n *xmlquery.Node, b *doctree.InlineBuilder, link string) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		switch child.Data {
		case "r":
			im.run(child, b, link)
		case "hyperlink":
			target := link
			if rid := attr(child, "id"); rid != "" {
				target = im.links[rid]
			}
			if anchor := attr(child, "anchor"); target == "" && anchor != "" {
				target = "#" + anchor
			}
			im.collect(child, b, target)
		case "ins", "smartTag", "sdt", "sdtContent", "customXml", "fldSimple":
			im.collect(child, b, link)
		}
	}
}

// run converts a w:r element.
func (im *importer) run(r *xmlquery.Node, b *doctree.InlineBuilder, link string) {
	attrs := doctree.Attrs{LinkURL: link}
	if rPr := xmlquery.QuerySelector(r, exprRunProps); rPr != nil {
		attrs.Bold = toggled(xmlquery.QuerySelector(rPr, exprBold))
		attrs.Italic = toggled(xmlquery.QuerySelector(rPr, exprItalic))
	}

	for child := r.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		switch child.Data {
		case "t":
			b.WriteText(child.InnerText(), attrs)
		case "tab":
			b.WriteText("\t", attrs)
		case "br", "cr":
			b.WriteText("\n", attrs)
		case "noBreakHyphen":
			b.WriteText("‑", attrs)
		case "drawing", "pict", "object":
			b.WriteOther(InlineTypeDrawing)
		}
	}
}

// toggled reports whether an on/off property such as w:b is set.
func toggled(n *xmlquery.Node) bool {
	if n == nil {
		return false
	}
	switch strings.ToLower(attr(n, "val")) {
	case "0", "false", "off", "none":
		return false
	default:
		return true
	}
}
