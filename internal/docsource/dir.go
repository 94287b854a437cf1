package docsource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dastrobu/doc-html-mcp/internal/doctree"
)

// maxFileSize bounds the size of a document file.
const maxFileSize = 64 << 20

// Dir serves documents stored as <id>.<format> files in a directory.
type Dir struct {
	root string
}

// NewDir returns a source for the documents in root.
func NewDir(root string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open documents directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("documents path %s is not a directory", root)
	}
	return &Dir{root: root}, nil
}

// Root returns the directory the source reads from.
func (d *Dir) Root() string {
	return d.root
}

// Open reads and decodes the document with the given id. The first format
// in Formats with an existing file wins.
func (d *Dir) Open(ctx context.Context, id string) (*doctree.Document, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	for _, format := range Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(d.root, id+"."+format)
		data, err := readFile(path)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return Decode(id, format, data)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// List returns the documents in the directory sorted by id. Titles are not
// loaded.
func (d *Dir) List(ctx context.Context) ([]Info, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, mapFSError(err)
	}
	seen := map[string]bool{}
	var out []Info
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		format, err := FormatForPath(e.Name())
		if err != nil {
			continue
		}
		id := IDForPath(e.Name())
		if ValidateID(id) != nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, Info{ID: id, Format: format})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, mapFSError(err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", path, maxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mapFSError(err)
	}
	return data, nil
}

// mapFSError translates file system errors into source errors.
func mapFSError(err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	default:
		return err
	}
}
