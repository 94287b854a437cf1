package tools

import (
	"fmt"
	"strings"

	"github.com/dastrobu/doc-html-mcp/internal/doctree"
)

// ContentFormat constants for inline content
const (
	ContentFormatPlain    = "plain"
	ContentFormatMarkdown = "markdown"
	// ContentFormatDefault is the default content format
	ContentFormatDefault = ContentFormatMarkdown
)

// ValidateAndNormalizeContentFormat checks if the provided format is valid and returns the normalized version.
// If the input is nil or empty, it returns the default format.
func ValidateAndNormalizeContentFormat(format *string) (string, error) {
	if format == nil {
		return ContentFormatDefault, nil
	}

	normalized := strings.ToLower(strings.TrimSpace(*format))
	if normalized == "" {
		return ContentFormatDefault, nil
	}

	if !IsValidContentFormat(normalized) {
		return "", fmt.Errorf("invalid content_format: %s", normalized)
	}
	return normalized, nil
}

// IsValidContentFormat returns true if the format is supported.
func IsValidContentFormat(format string) bool {
	switch format {
	case ContentFormatPlain, ContentFormatMarkdown:
		return true
	default:
		return false
	}
}

// PlainDocument turns plain text into unstyled paragraphs, one per block of
// lines separated by a blank line. Line breaks inside a block are kept.
func PlainDocument(text string) *doctree.Document {
	doc := &doctree.Document{}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for block := range strings.SplitSeq(text, "\n\n") {
		block = strings.Trim(block, "\n")
		if strings.TrimSpace(block) == "" {
			continue
		}
		doc.Blocks = append(doc.Blocks, &doctree.Paragraph{
			Heading:  doctree.HeadingNormal,
			Children: []doctree.Inline{&doctree.Text{Content: block}},
		})
	}
	return doc
}
