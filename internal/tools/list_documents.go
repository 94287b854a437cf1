package tools

import (
	"context"
	"fmt"

	"github.com/dastrobu/doc-html-mcp/internal/docsource"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListDocumentsInput defines input parameters for list_documents tool
type ListDocumentsInput struct{}

// ListDocumentsOutput is the result of list_documents
type ListDocumentsOutput struct {
	Documents []docsource.Info `json:"documents"`
}

// RegisterListDocuments registers the list_documents tool with the MCP server
func RegisterListDocuments(srv *mcp.Server, source docsource.Source) {
	mcp.AddTool(srv,
		&mcp.Tool{
			Name:        "list_documents",
			Description: "Lists the documents available from the configured document source with their IDs, titles and storage formats. Use the ID with convert_document.",
			InputSchema: GenerateSchema[ListDocumentsInput](),
			Annotations: &mcp.ToolAnnotations{
				Title:           "List Documents",
				ReadOnlyHint:    true,
				IdempotentHint:  true,
				DestructiveHint: new(false),
				OpenWorldHint:   new(false),
			},
		},
		func(ctx context.Context, request *mcp.CallToolRequest, input ListDocumentsInput) (*mcp.CallToolResult, any, error) {
			return HandleListDocuments(ctx, request, input, source)
		},
	)
}

func HandleListDocuments(ctx context.Context, request *mcp.CallToolRequest, input ListDocumentsInput, source docsource.Source) (*mcp.CallToolResult, any, error) {
	if source == nil {
		return nil, nil, ErrNoSource
	}

	infos, err := source.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if infos == nil {
		infos = []docsource.Info{}
	}

	return nil, ListDocumentsOutput{Documents: infos}, nil
}
