// Package launchd installs the server as a macOS launchd user agent serving
// the HTTP transport.
package launchd

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// Label is the launchd service identifier
	Label = "com.github.dastrobu.doc-html-mcp"

	// PlistFilename is the name of the plist file
	PlistFilename = Label + ".plist"

	// BinaryName is the expected name of the installed executable
	BinaryName = "doc-html-mcp"

	// DefaultPort is the default HTTP port
	DefaultPort = 8787

	// DefaultHost is the default HTTP host
	DefaultHost = "localhost"
)

// Config holds the launchd service configuration
type Config struct {
	BinaryPath      string
	Host            string
	Port            int
	LogPath         string
	ErrPath         string
	Debug           bool
	RunAtLoad       bool
	DocumentsDir    string
	DocumentsDB     string
	RenderingConfig string
}

// ProgramArguments returns the command line launchd starts the server with.
// Paths are made absolute since launchd runs the agent from /.
func (c *Config) ProgramArguments() []string {
	args := []string{
		c.BinaryPath,
		"run",
		"--transport=http",
		"--host=" + c.Host,
		"--port=" + strconv.Itoa(c.Port),
	}
	if c.Debug {
		args = append(args, "--debug")
	}
	for _, opt := range []struct{ name, path string }{
		{"documents-dir", c.DocumentsDir},
		{"documents-db", c.DocumentsDB},
		{"rendering-config", c.RenderingConfig},
	} {
		if opt.path == "" {
			continue
		}
		path := opt.path
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		args = append(args, "--"+opt.name+"="+path)
	}
	return args
}

// LogDir returns the directory the service logs to
func LogDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Library", "Logs", Label)
}

// PlistPath returns the full path to the plist file
func PlistPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Library", "LaunchAgents", PlistFilename)
}

// IsLoaded checks if the service is currently loaded
func IsLoaded() bool {
	output, err := launchctl("list")
	if err != nil {
		return false
	}
	return strings.Contains(output, Label)
}
