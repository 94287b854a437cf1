package launchd

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"
	"time"
)

//go:embed templates/launchd.plist.tmpl
var plistTemplate string

var plist = template.Must(template.New("plist").Parse(plistTemplate))

// startupGrace is how long Create waits before checking the agent runs.
const startupGrace = 2 * time.Second

// ErrNotRunning is returned by Create when launchd accepted the plist but
// the agent is not listed afterwards.
var ErrNotRunning = errors.New("⚠️ service loaded but not running")

// DefaultConfig returns a configuration for the running executable with
// default host, port and log locations.
func DefaultConfig() (*Config, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("❌ failed to locate executable: %w", err)
	}
	// A Homebrew symlink may be repointed on upgrade; launchd keeps the
	// resolved path.
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("❌ failed to resolve %s: %w", exe, err)
	}

	logDir := LogDir()
	return &Config{
		BinaryPath: resolved,
		Host:       DefaultHost,
		Port:       DefaultPort,
		LogPath:    filepath.Join(logDir, BinaryName+".log"),
		ErrPath:    filepath.Join(logDir, BinaryName+".err"),
		RunAtLoad:  true,
	}, nil
}

// RenderPlist writes the plist for cfg to w
func RenderPlist(w io.Writer, cfg *Config) error {
	err := plist.Execute(w, map[string]any{
		"Label":            Label,
		"ProgramArguments": cfg.ProgramArguments(),
		"LogPath":          cfg.LogPath,
		"ErrPath":          cfg.ErrPath,
		"RunAtLoad":        cfg.RunAtLoad,
	})
	if err != nil {
		return fmt.Errorf("❌ failed to render plist: %w", err)
	}
	return nil
}

// writePlist renders the plist to PlistPath, creating the LaunchAgents and
// log directories.
func writePlist(cfg *Config) (err error) {
	for _, dir := range []string{filepath.Dir(PlistPath()), filepath.Dir(cfg.LogPath)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("❌ failed to create %s: %w", dir, err)
		}
	}

	f, err := os.Create(PlistPath())
	if err != nil {
		return fmt.Errorf("❌ failed to create plist file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("❌ failed to write plist file: %w", cerr)
		}
	}()
	return RenderPlist(f, cfg)
}

// load registers the plist with launchd
func load() error {
	if _, err := launchctl("load", PlistPath()); err != nil {
		return fmt.Errorf("❌ failed to load service: %w", err)
	}
	return nil
}

// Create writes the plist for cfg and (re)loads the agent. An agent that
// is already loaded is unloaded first so that changed flags take effect.
func Create(cfg *Config) error {
	fmt.Println("Document HTML MCP Server - launchd Create")
	fmt.Println("==========================================")
	fmt.Println()

	for _, warning := range warnings(cfg) {
		fmt.Printf("⚠️  %s\n\n", warning)
	}

	if IsLoaded() {
		fmt.Println("Unloading the running service...")
		if err := unload(); err != nil {
			return err
		}
	}

	fmt.Printf("Writing %s\n", PlistPath())
	if err := writePlist(cfg); err != nil {
		return err
	}

	fmt.Println("Loading service...")
	if err := load(); err != nil {
		return err
	}
	time.Sleep(startupGrace)

	if !IsLoaded() {
		writeNotRunning(os.Stdout, cfg)
		return ErrNotRunning
	}
	writeSummary(os.Stdout, cfg)
	return nil
}

// warnings lists configuration problems that do not prevent installation.
func warnings(cfg *Config) []string {
	var out []string
	if cfg.DocumentsDir == "" && cfg.DocumentsDB == "" {
		out = append(out, "No --documents-dir or --documents-db given; convert_document and GET /doc will fail.")
	}
	if exe, err := os.Executable(); err == nil && !versionsMatch(cfg.BinaryPath, exe) {
		out = append(out, fmt.Sprintf("%s reports a different version than the running binary.", cfg.BinaryPath))
	}
	return out
}

// writeSummary prints the endpoints and management commands of a running
// agent.
func writeSummary(w io.Writer, cfg *Config) {
	base := fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "✅ Service is running")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Binary:        %s\n", cfg.BinaryPath)
	fmt.Fprintf(w, "  MCP endpoint:  %s/mcp\n", base)
	fmt.Fprintf(w, "  Documents:     %s/doc?id=<id>\n", base)
	fmt.Fprintf(w, "  Stdout log:    %s\n", cfg.LogPath)
	fmt.Fprintf(w, "  Stderr log:    %s\n", cfg.ErrPath)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Follow logs:   tail -f %s %s\n", cfg.LogPath, cfg.ErrPath)
	fmt.Fprintf(w, "  Restart:       %s launchd restart\n", BinaryName)
	fmt.Fprintf(w, "  Uninstall:     %s launchd remove\n", BinaryName)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Configure your MCP client to connect to: %s/mcp\n", base)
}

// writeNotRunning prints where to look when the agent did not come up.
func writeNotRunning(w io.Writer, cfg *Config) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "⚠️  launchd accepted the service but it is not running.")
	fmt.Fprintf(w, "Inspect the error log: tail -f %s\n", cfg.ErrPath)
	if !cfg.Debug {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "💡 Recreate the service with --debug for verbose logs:")
		fmt.Fprintf(w, "  %s launchd create --port=%d --debug\n", BinaryName, cfg.Port)
	}
}
