package tools

import (
	"context"
	"fmt"

	"github.com/dastrobu/doc-html-mcp/internal/docsource"
	"github.com/dastrobu/doc-html-mcp/internal/log"
	"github.com/dastrobu/doc-html-mcp/internal/richtext"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ConvertDocumentInput defines input parameters for convert_document tool
type ConvertDocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"Identifier of the document to convert (letters, digits, '_' and '-')" long:"document-id" description:"Identifier of the document to convert"`
}

// ConvertDocumentOutput is the result of convert_document
type ConvertDocumentOutput struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	HTML       string `json:"html"`
}

// RegisterConvertDocument registers the convert_document tool with the MCP server
func RegisterConvertDocument(srv *mcp.Server, source docsource.Source, converter *richtext.Converter) {
	mcp.AddTool(srv,
		&mcp.Tool{
			Name:        "convert_document",
			Description: "Loads a document by its ID from the configured document source and converts it to an HTML fragment. Headings, paragraphs, bulleted and numbered lists, horizontal rules, bold, italic and links are preserved; tables, images and other content are skipped.",
			InputSchema: GenerateSchema[ConvertDocumentInput](),
			Annotations: &mcp.ToolAnnotations{
				Title:           "Convert Document",
				ReadOnlyHint:    true,
				IdempotentHint:  true,
				DestructiveHint: new(false),
				OpenWorldHint:   new(false),
			},
		},
		func(ctx context.Context, request *mcp.CallToolRequest, input ConvertDocumentInput) (*mcp.CallToolResult, any, error) {
			return HandleConvertDocument(ctx, request, input, source, converter)
		},
	)
}

func HandleConvertDocument(ctx context.Context, request *mcp.CallToolRequest, input ConvertDocumentInput, source docsource.Source, converter *richtext.Converter) (*mcp.CallToolResult, any, error) {
	if source == nil {
		return nil, nil, ErrNoSource
	}
	if input.DocumentID == "" {
		return nil, nil, fmt.Errorf("document_id is required")
	}

	doc, err := source.Open(ctx, input.DocumentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	html := converter.ConvertDocument(doc)
	log.FromContext(ctx).Debugf("convert_document %s: %d blocks, %d bytes", input.DocumentID, len(doc.Blocks), len(html))

	return nil, ConvertDocumentOutput{
		DocumentID: input.DocumentID,
		Title:      doc.Title,
		HTML:       html,
	}, nil
}
