// Package docsource resolves document identifiers to document trees.
//
// Two sources are provided: Dir reads documents from files in a directory
// and Store keeps them in a SQLite database. Both support the same formats:
// the JSON document tree, Markdown and WordprocessingML (.docx).
package docsource

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dastrobu/doc-html-mcp/internal/doctree"
	"github.com/dastrobu/doc-html-mcp/internal/docx"
	"github.com/dastrobu/doc-html-mcp/internal/md"
)

// Document formats
const (
	FormatJSON     = "json"
	FormatMarkdown = "md"
	FormatDocx     = "docx"
)

// Formats lists the supported formats in lookup order.
var Formats = []string{FormatJSON, FormatMarkdown, FormatDocx}

var (
	// ErrInvalidID is returned for identifiers outside the allowed alphabet.
	ErrInvalidID = errors.New("invalid document id")
	// ErrNotFound is returned when no document has the requested id.
	ErrNotFound = errors.New("document not found")
	// ErrAccessDenied is returned when the document exists but cannot be read.
	ErrAccessDenied = errors.New("access denied")
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// Source resolves document identifiers.
type Source interface {
	Open(ctx context.Context, id string) (*doctree.Document, error)
	List(ctx context.Context) ([]Info, error)
}

// Info describes a document without loading it.
type Info struct {
	ID     string `json:"id" jsonschema:"Document identifier"`
	Title  string `json:"title" jsonschema:"Document title, empty when unknown"`
	Format string `json:"format" jsonschema:"Storage format (json, md or docx)"`
}

// ValidateID checks that id is a well-formed document identifier.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// Decode parses data in the given format into a document with the given id.
// A document tree that carries no id of its own takes id.
func Decode(id, format string, data []byte) (*doctree.Document, error) {
	var (
		doc *doctree.Document
		err error
	)
	switch format {
	case FormatJSON:
		doc, err = doctree.Parse(data)
		if err == nil && doc.ID == "" {
			doc.ID = id
		}
	case FormatMarkdown:
		doc, err = md.Parse(id, data)
	case FormatDocx:
		doc, err = docx.Parse(id, data)
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s document %s: %w", format, id, err)
	}
	return doc, nil
}

// FormatForPath returns the format implied by a file extension.
func FormatForPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "docx":
		return FormatDocx, nil
	default:
		return "", fmt.Errorf("unsupported file extension %q", filepath.Ext(path))
	}
}

// IDForPath derives a document id from a file name by dropping the
// directory and extension.
func IDForPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
