package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dastrobu/doc-html-mcp/internal/completion"
	"github.com/dastrobu/doc-html-mcp/internal/docsource"
	"github.com/dastrobu/doc-html-mcp/internal/httpapi"
	"github.com/dastrobu/doc-html-mcp/internal/launchd"
	"github.com/dastrobu/doc-html-mcp/internal/log"
	"github.com/dastrobu/doc-html-mcp/internal/opts"
	"github.com/dastrobu/doc-html-mcp/internal/richtext"
	"github.com/dastrobu/doc-html-mcp/internal/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "doc-html"
	serverVersion = "0.1.0"
)

func main() {
	opts.GlobalOpts.Run.Handler = func() error {
		return run(&opts.GlobalOpts.Run)
	}
	opts.GlobalOpts.Import.Handler = func(files []string) error {
		return importFiles(&opts.GlobalOpts.Import, files)
	}
	opts.GlobalOpts.Launchd.Create.Handler = func() error {
		return launchdCreate(&opts.GlobalOpts.Launchd.Create)
	}
	opts.GlobalOpts.Launchd.Remove.Handler = launchd.Remove
	opts.GlobalOpts.Launchd.Restart.Handler = launchd.Restart
	opts.GlobalOpts.Completion.Bash.Handler = func() error {
		completion.GenerateBash()
		return nil
	}
	wireToolCommands(&opts.GlobalOpts.Tool)

	parser, err := opts.Parse()
	if err != nil {
		log.Default().Fatalf("%v", err)
	}

	if opts.GlobalOpts.Version {
		fmt.Printf("%s version %s\n", launchd.BinaryName, serverVersion)
		return
	}

	// No command given
	if parser.Active == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}
}

// debugMiddleware logs all MCP requests and responses when debug is enabled
func debugMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		logger := log.FromContext(ctx)

		if req != nil {
			j, _ := json.MarshalIndent(req.GetParams(), "", "  ")
			logger.Debugf("MCP Request: %s\nParams: %s", method, j)
		} else {
			logger.Debugf("MCP Request: %s", method)
		}

		result, err := next(ctx, method, req)

		switch {
		case err != nil:
			logger.Debugf("MCP Response: %s\nError: %v", method, err)
		case result != nil:
			j, _ := json.MarshalIndent(result, "", "  ")
			logger.Debugf("MCP Response: %s\nResult: %s", method, j)
		default:
			logger.Debugf("MCP Response: %s", method)
		}

		return result, err
	}
}

// createServer creates and configures a new MCP server instance
func createServer(debug bool, source docsource.Source, converter *richtext.Converter) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	if debug {
		srv.AddReceivingMiddleware(debugMiddleware)
	}

	tools.RegisterAll(srv, source, converter)

	return srv
}

// openSource builds the document source selected by the options. It returns
// a nil source when none is configured; the returned close function is never
// nil.
func openSource(ctx context.Context, o opts.SourceOptions) (docsource.Source, func() error, error) {
	noop := func() error { return nil }
	switch {
	case o.DocumentsDB != "":
		store, err := docsource.OpenStore(ctx, o.DocumentsDB)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case o.DocumentsDir != "":
		dir, err := docsource.NewDir(o.DocumentsDir)
		if err != nil {
			return nil, noop, err
		}
		return dir, noop, nil
	default:
		return nil, noop, nil
	}
}

// loadConverter loads the rendering configuration at path, or the embedded
// default when path is empty.
func loadConverter(path string) (*richtext.Converter, error) {
	config, err := richtext.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return richtext.NewConverter(config), nil
}

func run(options *opts.RunCmd) error {
	// Log to stderr (stdout is used for MCP communication in stdio mode)
	logger := log.New(os.Stderr, "", options.Debug)
	log.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.WithLogger(ctx, logger)

	converter, err := loadConverter(options.RenderingConfig)
	if err != nil {
		return err
	}

	source, closeSource, err := openSource(ctx, options.SourceOptions)
	if err != nil {
		return err
	}
	defer closeSource()
	if source == nil {
		logger.Println("No document source configured; convert_document and list_documents are unavailable")
	}

	logger.Printf("Document HTML MCP Server v%s initialized\n", serverVersion)

	srv := createServer(options.Debug, source, converter)

	switch options.Transport {
	case "stdio":
		logger.Println("Using STDIO transport")
		return srv.Run(ctx, &mcp.StdioTransport{})
	case "http":
		addr := fmt.Sprintf("%s:%d", options.Host, options.Port)

		mux := http.NewServeMux()
		mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(
			func(r *http.Request) *mcp.Server {
				// since we are stateless, we can return the same server instance
				return srv
			},
			&mcp.StreamableHTTPOptions{
				Stateless: true,
			},
		))
		mux.Handle("/doc", httpapi.NewHandler(source, converter, options.RequestTimeout))

		httpServer := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return ctx },
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpServer.Shutdown(shutdownCtx)
		}()

		logger.Printf("HTTP server listening on http://%s (MCP at /mcp, documents at /doc?id=<id>)\n", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported transport: %s", options.Transport)
	}
}

func importFiles(options *opts.ImportCmd, files []string) error {
	logger := log.New(os.Stderr, "", options.Debug)
	log.SetDefault(logger)
	ctx := log.WithLogger(context.Background(), logger)

	store, err := docsource.OpenStore(ctx, options.DocumentsDB)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, file := range files {
		info, err := store.Import(ctx, file)
		if err != nil {
			return err
		}
		fmt.Printf("✅ Imported %s as %q (%s): %s\n", file, info.ID, info.Format, info.Title)
	}
	return nil
}

func launchdCreate(options *opts.LaunchdCreateCmd) error {
	cfg, err := launchd.DefaultConfig()
	if err != nil {
		return err
	}
	cfg.Port = options.Port
	cfg.Host = options.Host
	cfg.Debug = options.Debug
	cfg.RunAtLoad = !options.DisableRunAtLoad
	cfg.DocumentsDir = options.DocumentsDir
	cfg.DocumentsDB = options.DocumentsDB
	cfg.RenderingConfig = options.RenderingConfig
	return launchd.Create(cfg)
}

// toolEnv holds what a tool invoked from the command line runs against.
type toolEnv struct {
	ctx       context.Context
	source    docsource.Source
	converter *richtext.Converter
	close     func() error
}

func newToolEnv(options *opts.ToolCmd) (*toolEnv, error) {
	ctx := context.Background()
	converter, err := loadConverter(options.RenderingConfig)
	if err != nil {
		return nil, err
	}
	source, closeSource, err := openSource(ctx, options.SourceOptions)
	if err != nil {
		return nil, err
	}
	return &toolEnv{ctx: ctx, source: source, converter: converter, close: closeSource}, nil
}

// withToolEnv runs fn against a fresh tool environment and prints its
// structured output as JSON.
func withToolEnv(options *opts.ToolCmd, fn func(env *toolEnv) (any, error)) error {
	env, err := newToolEnv(options)
	if err != nil {
		return err
	}
	defer env.close()

	out, err := fn(env)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, out)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func wireToolCommands(cmd *opts.ToolCmd) {
	cmd.ConvertDocument.Handler = func(input tools.ConvertDocumentInput) error {
		return withToolEnv(cmd, func(env *toolEnv) (any, error) {
			_, out, err := tools.HandleConvertDocument(env.ctx, &mcp.CallToolRequest{}, input, env.source, env.converter)
			return out, err
		})
	}
	cmd.ConvertDocumentTree.Handler = func(input tools.ConvertDocumentTreeInput) error {
		return withToolEnv(cmd, func(env *toolEnv) (any, error) {
			_, out, err := tools.HandleConvertDocumentTree(env.ctx, &mcp.CallToolRequest{}, input, env.converter)
			return out, err
		})
	}
	cmd.ConvertMarkdown.Handler = func(input tools.ConvertMarkdownInput) error {
		return withToolEnv(cmd, func(env *toolEnv) (any, error) {
			_, out, err := tools.HandleConvertMarkdown(env.ctx, &mcp.CallToolRequest{}, input, env.converter)
			return out, err
		})
	}
	cmd.ListDocuments.Handler = func() error {
		return withToolEnv(cmd, func(env *toolEnv) (any, error) {
			_, out, err := tools.HandleListDocuments(env.ctx, &mcp.CallToolRequest{}, tools.ListDocumentsInput{}, env.source)
			return out, err
		})
	}
}
