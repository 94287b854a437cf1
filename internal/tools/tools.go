// Package tools implements the MCP tools that form the core functionality of
// the server: converting documents to HTML fragments and listing the
// documents a source provides.
package tools

import (
	"errors"

	"github.com/dastrobu/doc-html-mcp/internal/docsource"
	"github.com/dastrobu/doc-html-mcp/internal/richtext"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrNoSource is returned by tools that need a document source when the
// server was started without one.
var ErrNoSource = errors.New("no document source configured (use --documents-dir or --documents-db)")

// RegisterAll registers all available tools with the MCP server. source may
// be nil, in which case only the tools converting inline content work.
func RegisterAll(srv *mcp.Server, source docsource.Source, converter *richtext.Converter) {
	RegisterConvertDocument(srv, source, converter)
	RegisterConvertDocumentTree(srv, converter)
	RegisterConvertMarkdown(srv, converter)
	RegisterListDocuments(srv, source)
}
