package tools

import (
	"context"
	"fmt"

	"github.com/dastrobu/doc-html-mcp/internal/doctree"
	"github.com/dastrobu/doc-html-mcp/internal/richtext"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ConvertDocumentTreeInput defines input parameters for convert_document_tree tool
type ConvertDocumentTreeInput struct {
	Document string `json:"document" jsonschema:"Document tree as a JSON string: {\"blocks\":[{\"type\":\"paragraph\",\"heading\":\"HEADING1\",\"children\":[{\"type\":\"text\",\"text\":\"...\",\"styles\":[{\"start\":0,\"end\":3,\"bold\":true}]}]},{\"type\":\"list_item\",\"glyph\":\"BULLET\",\"children\":[...]},{\"type\":\"horizontal_rule\"}]}" long:"document" description:"Document tree as a JSON string"`
}

// ConvertDocumentTreeOutput is the result of convert_document_tree
type ConvertDocumentTreeOutput struct {
	HTML string `json:"html"`
}

// RegisterConvertDocumentTree registers the convert_document_tree tool with the MCP server
func RegisterConvertDocumentTree(srv *mcp.Server, converter *richtext.Converter) {
	mcp.AddTool(srv,
		&mcp.Tool{
			Name:        "convert_document_tree",
			Description: "Converts a document tree given as JSON to an HTML fragment. Style ranges use character offsets and must be sorted and non-overlapping. Unknown block and inline types are accepted and skipped.",
			InputSchema: GenerateSchema[ConvertDocumentTreeInput](),
			Annotations: &mcp.ToolAnnotations{
				Title:           "Convert Document Tree",
				ReadOnlyHint:    true,
				IdempotentHint:  true,
				DestructiveHint: new(false),
				OpenWorldHint:   new(false),
			},
		},
		func(ctx context.Context, request *mcp.CallToolRequest, input ConvertDocumentTreeInput) (*mcp.CallToolResult, any, error) {
			return HandleConvertDocumentTree(ctx, request, input, converter)
		},
	)
}

func HandleConvertDocumentTree(ctx context.Context, request *mcp.CallToolRequest, input ConvertDocumentTreeInput, converter *richtext.Converter) (*mcp.CallToolResult, any, error) {
	if input.Document == "" {
		return nil, nil, fmt.Errorf("document is required")
	}

	doc, err := doctree.Parse([]byte(input.Document))
	if err != nil {
		return nil, nil, err
	}

	return nil, ConvertDocumentTreeOutput{HTML: converter.ConvertDocument(doc)}, nil
}
