package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dastrobu/doc-html-mcp/internal/docsource"
	"github.com/dastrobu/doc-html-mcp/internal/doctree"
	"github.com/dastrobu/doc-html-mcp/internal/richtext"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// memorySource serves documents from a map.
type memorySource map[string]*doctree.Document

func (m memorySource) Open(_ context.Context, id string) (*doctree.Document, error) {
	if doc, ok := m[id]; ok {
		return doc, nil
	}
	return nil, fmt.Errorf("%w: %s", docsource.ErrNotFound, id)
}

func (m memorySource) List(context.Context) ([]docsource.Info, error) {
	var out []docsource.Info
	for id, doc := range m {
		out = append(out, docsource.Info{ID: id, Title: doc.Title, Format: docsource.FormatJSON})
	}
	return out, nil
}

func testSource() memorySource {
	return memorySource{
		"doc1": {
			ID:    "doc1",
			Title: "Plan",
			Blocks: []doctree.Block{
				&doctree.Paragraph{Heading: doctree.Heading1, Children: []doctree.Inline{&doctree.Text{Content: "Plan"}}},
				&doctree.ListItem{Glyph: doctree.GlyphNumber, Children: []doctree.Inline{&doctree.Text{Content: "first"}}},
			},
		},
	}
}

func TestHandleConvertDocument(t *testing.T) {
	converter := richtext.NewConverter(nil)
	ctx := context.Background()

	_, out, err := HandleConvertDocument(ctx, &mcp.CallToolRequest{}, ConvertDocumentInput{DocumentID: "doc1"}, testSource(), converter)
	if err != nil {
		t.Fatalf("HandleConvertDocument() error = %v", err)
	}
	result, ok := out.(ConvertDocumentOutput)
	if !ok {
		t.Fatalf("Expected ConvertDocumentOutput, got %T", out)
	}
	want := ConvertDocumentOutput{
		DocumentID: "doc1",
		Title:      "Plan",
		HTML:       "<h1>Plan</h1>\n<ol>\n  <li>first</li>\n</ol>\n",
	}
	if result != want {
		t.Errorf("Expected %+v, got %+v", want, result)
	}

	_, _, err = HandleConvertDocument(ctx, &mcp.CallToolRequest{}, ConvertDocumentInput{DocumentID: "missing"}, testSource(), converter)
	if !errors.Is(err, docsource.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	_, _, err = HandleConvertDocument(ctx, &mcp.CallToolRequest{}, ConvertDocumentInput{}, testSource(), converter)
	if err == nil || !strings.Contains(err.Error(), "document_id is required") {
		t.Errorf("Expected missing id error, got %v", err)
	}

	_, _, err = HandleConvertDocument(ctx, &mcp.CallToolRequest{}, ConvertDocumentInput{DocumentID: "doc1"}, nil, converter)
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("Expected ErrNoSource, got %v", err)
	}
}

func TestHandleConvertDocumentTree(t *testing.T) {
	converter := richtext.NewConverter(nil)
	tests := []struct {
		name     string
		document string
		want     string
		wantErr  string
	}{
		{
			name:     "styled text",
			document: `{"blocks":[{"type":"paragraph","heading":"NORMAL","children":[{"type":"text","text":"Hello world","styles":[{"start":6,"end":11,"bold":true}]}]}]}`,
			want:     "<p>Hello <strong>world</strong></p>\n",
		},
		{
			name:     "unknown types skipped",
			document: `{"blocks":[{"type":"table"},{"type":"horizontal_rule"}]}`,
			want:     "<hr>\n",
		},
		{
			name:    "empty",
			wantErr: "document is required",
		},
		{
			name:     "overlapping styles",
			document: `{"blocks":[{"type":"paragraph","children":[{"type":"text","text":"abc","styles":[{"start":0,"end":2,"bold":true},{"start":1,"end":3,"italic":true}]}]}]}`,
			wantErr:  "invalid document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := HandleConvertDocumentTree(context.Background(), &mcp.CallToolRequest{}, ConvertDocumentTreeInput{Document: tt.document}, converter)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got := out.(ConvertDocumentTreeOutput).HTML; got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestHandleConvertMarkdown(t *testing.T) {
	converter := richtext.NewConverter(nil)
	plain := "plain"
	invalid := "html"

	tests := []struct {
		name      string
		input     ConvertMarkdownInput
		wantTitle string
		wantHTML  string
		wantErr   bool
	}{
		{
			name:      "markdown default",
			input:     ConvertMarkdownInput{Markdown: "# Title\n\n- *a*\n- b\n"},
			wantTitle: "Title",
			wantHTML:  "<h1>Title</h1>\n<ul>\n  <li><em>a</em></li>\n  <li>b</li>\n</ul>\n",
		},
		{
			name:     "plain",
			input:    ConvertMarkdownInput{Markdown: "a *b*\n\n<c>", ContentFormat: &plain},
			wantHTML: "<p>a *b*</p>\n<p>&lt;c&gt;</p>\n",
		},
		{
			name:    "invalid format",
			input:   ConvertMarkdownInput{Markdown: "x", ContentFormat: &invalid},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := HandleConvertMarkdown(context.Background(), &mcp.CallToolRequest{}, tt.input, converter)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			result := out.(ConvertMarkdownOutput)
			if result.Title != tt.wantTitle {
				t.Errorf("Expected title %q, got %q", tt.wantTitle, result.Title)
			}
			if result.HTML != tt.wantHTML {
				t.Errorf("Expected %q, got %q", tt.wantHTML, result.HTML)
			}
		})
	}
}

func TestHandleListDocuments(t *testing.T) {
	_, out, err := HandleListDocuments(context.Background(), &mcp.CallToolRequest{}, ListDocumentsInput{}, testSource())
	if err != nil {
		t.Fatalf("HandleListDocuments() error = %v", err)
	}
	docs := out.(ListDocumentsOutput).Documents
	if len(docs) != 1 || docs[0].ID != "doc1" || docs[0].Title != "Plan" {
		t.Errorf("Unexpected documents %+v", docs)
	}

	_, out, err = HandleListDocuments(context.Background(), &mcp.CallToolRequest{}, ListDocumentsInput{}, memorySource{})
	if err != nil {
		t.Fatal(err)
	}
	if docs := out.(ListDocumentsOutput).Documents; docs == nil || len(docs) != 0 {
		t.Errorf("Expected empty non-nil list, got %#v", docs)
	}

	if _, _, err := HandleListDocuments(context.Background(), &mcp.CallToolRequest{}, ListDocumentsInput{}, nil); !errors.Is(err, ErrNoSource) {
		t.Errorf("Expected ErrNoSource, got %v", err)
	}
}

func TestValidateAndNormalizeContentFormat(t *testing.T) {
	str := func(s string) *string { return &s }
	tests := []struct {
		in      *string
		want    string
		wantErr bool
	}{
		{nil, ContentFormatMarkdown, false},
		{str(""), ContentFormatMarkdown, false},
		{str(" Plain "), ContentFormatPlain, false},
		{str("MARKDOWN"), ContentFormatMarkdown, false},
		{str("rtf"), "", true},
	}
	for _, tt := range tests {
		got, err := ValidateAndNormalizeContentFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ValidateAndNormalizeContentFormat(%v) = %q, %v", tt.in, got, err)
		}
	}
}

func TestPlainDocument(t *testing.T) {
	doc := PlainDocument("one\r\ntwo\r\n\r\n\n\n  \n\nthree\n")
	if len(doc.Blocks) != 2 {
		t.Fatalf("Expected 2 paragraphs, got %d", len(doc.Blocks))
	}
	if got := doc.Blocks[0].(*doctree.Paragraph).Text(); got != "one\ntwo" {
		t.Errorf("Unexpected first paragraph %q", got)
	}
	if got := doc.Blocks[1].(*doctree.Paragraph).Text(); got != "three" {
		t.Errorf("Unexpected second paragraph %q", got)
	}
}

func TestRegisterAll(t *testing.T) {
	srv := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0.0.0"}, nil)
	// registering must not panic on schema generation
	RegisterAll(srv, testSource(), richtext.NewConverter(nil))
}
