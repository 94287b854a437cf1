package tools

import (
	"context"
	"fmt"

	"github.com/dastrobu/doc-html-mcp/internal/doctree"
	"github.com/dastrobu/doc-html-mcp/internal/md"
	"github.com/dastrobu/doc-html-mcp/internal/richtext"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ConvertMarkdownInput defines input parameters for convert_markdown tool
type ConvertMarkdownInput struct {
	Markdown      string  `json:"markdown" jsonschema:"Content to convert" long:"markdown" description:"Content to convert"`
	ContentFormat *string `json:"content_format,omitempty" jsonschema:"Content format: 'plain' or 'markdown'. Default is 'markdown'." long:"content-format" description:"Content format: 'plain' or 'markdown'. Default is 'markdown'."`
}

// ConvertMarkdownOutput is the result of convert_markdown
type ConvertMarkdownOutput struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// RegisterConvertMarkdown registers the convert_markdown tool with the MCP server
func RegisterConvertMarkdown(srv *mcp.Server, converter *richtext.Converter) {
	mcp.AddTool(srv,
		&mcp.Tool{
			Name:        "convert_markdown",
			Description: "Converts Markdown (or plain text) to an HTML fragment using the same rules as convert_document. Nested lists are flattened; code blocks, tables and images are skipped. The title is the text of the first heading.",
			InputSchema: GenerateSchema[ConvertMarkdownInput](),
			Annotations: &mcp.ToolAnnotations{
				Title:           "Convert Markdown",
				ReadOnlyHint:    true,
				IdempotentHint:  true,
				DestructiveHint: new(false),
				OpenWorldHint:   new(false),
			},
		},
		func(ctx context.Context, request *mcp.CallToolRequest, input ConvertMarkdownInput) (*mcp.CallToolResult, any, error) {
			return HandleConvertMarkdown(ctx, request, input, converter)
		},
	)
}

func HandleConvertMarkdown(ctx context.Context, request *mcp.CallToolRequest, input ConvertMarkdownInput, converter *richtext.Converter) (*mcp.CallToolResult, any, error) {
	contentFormat, err := ValidateAndNormalizeContentFormat(input.ContentFormat)
	if err != nil {
		return nil, nil, err
	}

	var doc *doctree.Document
	switch contentFormat {
	case ContentFormatPlain:
		doc = PlainDocument(input.Markdown)
	default:
		doc, err = md.Parse("", []byte(input.Markdown))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse markdown: %w", err)
		}
	}

	return nil, ConvertMarkdownOutput{
		Title: doc.Title,
		HTML:  converter.ConvertDocument(doc),
	}, nil
}
