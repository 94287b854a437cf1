package opts

import (
	"fmt"
	"os"
	"time"

	"github.com/dastrobu/doc-html-mcp/internal/opts/typed_flags"
	"github.com/dastrobu/doc-html-mcp/internal/tools"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Options defines the command-line options for the MCP server
type Options struct {
	Version bool `long:"version" short:"v" description:"Show version information and exit"`

	Run        RunCmd        `command:"run" description:"Run the server"`
	Import     ImportCmd     `command:"import" description:"Import document files into the SQLite document store"`
	Launchd    LaunchdCmd    `command:"launchd" description:"Manage launchd service"`
	Completion CompletionCmd `command:"completion" description:"Generate completion scripts"`
	Tool       ToolCmd       `command:"tool" description:"Execute a tool directly"`
}

// SourceOptions select where documents are read from. The database takes
// precedence when both are set.
type SourceOptions struct {
	DocumentsDir string `long:"documents-dir" env:"DOC_HTML_MCP_DOCUMENTS_DIR" description:"Directory containing <id>.json, <id>.md and <id>.docx documents"`
	DocumentsDB  string `long:"documents-db" env:"DOC_HTML_MCP_DOCUMENTS_DB" description:"Path to a SQLite document store (see 'import')"`
}

// RenderingOptions configure the HTML output.
type RenderingOptions struct {
	RenderingConfig string `long:"rendering-config" env:"DOC_HTML_MCP_RENDERING_CONFIG" description:"Path to custom rendering configuration YAML file (uses embedded default if not specified)"`
}

// RunCmd defines the 'run' command
type RunCmd struct {
	Transport      typed_flags.Transport `long:"transport" env:"DOC_HTML_MCP_TRANSPORT" description:"Transport type: stdio or http" default:"stdio"`
	Port           int                   `long:"port" env:"DOC_HTML_MCP_PORT" description:"HTTP port (only used with --transport=http)" default:"8787"`
	Host           string                `long:"host" env:"DOC_HTML_MCP_HOST" description:"HTTP host (only used with --transport=http)" default:"localhost"`
	Debug          bool                  `long:"debug" env:"DOC_HTML_MCP_DEBUG" description:"Enable debug logging of tool calls and results to stderr"`
	RequestTimeout time.Duration         `long:"request-timeout" env:"DOC_HTML_MCP_REQUEST_TIMEOUT" description:"Timeout for loading a document over HTTP" default:"30s"`
	SourceOptions
	RenderingOptions

	Handler func() error
}

// Validate checks option combinations the flags library cannot express
func (c *RunCmd) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request timeout %s: must be positive", c.RequestTimeout)
	}
	return nil
}

// Execute runs the run command
func (c *RunCmd) Execute(args []string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Handler != nil {
		return c.Handler()
	}
	return nil
}

// ImportCmd represents the 'import' command
type ImportCmd struct {
	DocumentsDB string `long:"documents-db" env:"DOC_HTML_MCP_DOCUMENTS_DB" description:"Path to the SQLite document store"`
	Debug       bool   `long:"debug" env:"DOC_HTML_MCP_DEBUG" description:"Enable debug logging to stderr"`

	Args struct {
		Files []flags.Filename `positional-arg-name:"FILE" required:"1" description:"Document files (.json, .md, .docx); the file name without extension becomes the document id"`
	} `positional-args:"yes" required:"yes"`

	Handler func(files []string) error
}

// Execute runs the import command
func (c *ImportCmd) Execute(args []string) error {
	if c.DocumentsDB == "" {
		return fmt.Errorf("--documents-db is required")
	}
	if len(c.Args.Files) == 0 {
		return fmt.Errorf("at least one FILE is required")
	}
	if c.Handler != nil {
		files := make([]string, len(c.Args.Files))
		for i, f := range c.Args.Files {
			files[i] = string(f)
		}
		return c.Handler(files)
	}
	return nil
}

// CompletionCmd holds completion subcommands
type CompletionCmd struct {
	Bash CompletionBashCmd `command:"bash" description:"Generate bash completion script"`
}

// CompletionBashCmd represents the 'completion bash' command
type CompletionBashCmd struct {
	Handler func() error
}

// Execute runs the completion bash command
func (c *CompletionBashCmd) Execute(args []string) error {
	if c.Handler != nil {
		return c.Handler()
	}
	return nil
}

// LaunchdCmd holds launchd subcommands
type LaunchdCmd struct {
	Create  LaunchdCreateCmd  `command:"create" description:"Set up launchd service for automatic startup"`
	Remove  LaunchdRemoveCmd  `command:"remove" description:"Remove launchd service"`
	Restart LaunchdRestartCmd `command:"restart" description:"Restart the launchd service"`
}

// LaunchdCreateCmd represents the 'launchd create' command
type LaunchdCreateCmd struct {
	DisableRunAtLoad bool `long:"disable-run-at-load" description:"Disable automatic startup on login (service must be started manually)"`

	// Configuration for the service
	Port  int    `long:"port" description:"HTTP port for the service" default:"8787"`
	Host  string `long:"host" description:"HTTP host for the service" default:"localhost"`
	Debug bool   `long:"debug" description:"Enable debug logging for the service"`
	SourceOptions
	RenderingOptions

	Handler func() error
}

// Execute runs the launchd create command
func (c *LaunchdCreateCmd) Execute(args []string) error {
	if c.Handler != nil {
		return c.Handler()
	}
	return nil
}

// LaunchdRemoveCmd represents the 'launchd remove' command
type LaunchdRemoveCmd struct {
	Handler func() error
}

// Execute runs the launchd remove command
func (c *LaunchdRemoveCmd) Execute(args []string) error {
	if c.Handler != nil {
		return c.Handler()
	}
	return nil
}

// LaunchdRestartCmd defines the 'restart' subcommand for launchd
type LaunchdRestartCmd struct {
	Handler func() error
}

// Execute runs the launchd restart command
func (c *LaunchdRestartCmd) Execute(args []string) error {
	if c.Handler != nil {
		return c.Handler()
	}
	return nil
}

// ToolCmd holds tool subcommands. The source and rendering options apply to
// all tools.
type ToolCmd struct {
	SourceOptions
	RenderingOptions

	ConvertDocument     ConvertDocumentCmd     `command:"convert_document" description:"Converts a document from the document source to HTML"`
	ConvertDocumentTree ConvertDocumentTreeCmd `command:"convert_document_tree" description:"Converts a JSON document tree to HTML"`
	ConvertMarkdown     ConvertMarkdownCmd     `command:"convert_markdown" description:"Converts Markdown to HTML"`
	ListDocuments       ListDocumentsCmd       `command:"list_documents" description:"Lists the documents in the document source"`
}

// ConvertDocumentCmd represents the 'tool convert_document' command
type ConvertDocumentCmd struct {
	tools.ConvertDocumentInput
	Handler func(tools.ConvertDocumentInput) error
}

// Execute runs the convert_document tool command
func (c *ConvertDocumentCmd) Execute(args []string) error {
	if c.Handler != nil {
		return c.Handler(c.ConvertDocumentInput)
	}
	return nil
}

// ConvertDocumentTreeCmd represents the 'tool convert_document_tree' command
type ConvertDocumentTreeCmd struct {
	tools.ConvertDocumentTreeInput
	Handler func(tools.ConvertDocumentTreeInput) error
}

// Execute runs the convert_document_tree tool command
func (c *ConvertDocumentTreeCmd) Execute(args []string) error {
	if c.Handler != nil {
		return c.Handler(c.ConvertDocumentTreeInput)
	}
	return nil
}

// ConvertMarkdownCmd represents the 'tool convert_markdown' command
type ConvertMarkdownCmd struct {
	tools.ConvertMarkdownInput
	Handler func(tools.ConvertMarkdownInput) error
}

// Execute runs the convert_markdown tool command
func (c *ConvertMarkdownCmd) Execute(args []string) error {
	if c.Handler != nil {
		return c.Handler(c.ConvertMarkdownInput)
	}
	return nil
}

// ListDocumentsCmd represents the 'tool list_documents' command
type ListDocumentsCmd struct {
	Handler func() error
}

// Execute runs the list_documents tool command
func (c *ListDocumentsCmd) Execute(args []string) error {
	if c.Handler != nil {
		return c.Handler()
	}
	return nil
}

var GlobalOpts = Options{}

// Parse parses command-line arguments and environment variables
// It also loads .env file if present (but doesn't fail if missing)
func Parse() (*flags.Parser, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	parser := flags.NewParser(&GlobalOpts, flags.HelpFlag|flags.PassDoubleDash)

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			switch flagsErr.Type {
			case flags.ErrHelp:
				parser.WriteHelp(os.Stdout)
				os.Exit(0)
			case flags.ErrCommandRequired:
				// No command specified (e.g. only --version)
				return parser, nil
			}
		}
		return nil, fmt.Errorf("failed to parse options: %w", err)
	}

	return parser, nil
}
