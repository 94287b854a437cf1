package richtext

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig_Default(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if !config.InferHeadings {
		t.Error("Expected heading inference to be enabled by default")
	}
	if config.InferMaxLength != 120 {
		t.Errorf("Expected max length 120, got %d", config.InferMaxLength)
	}
	if config.InferLevel != 2 {
		t.Errorf("Expected inferred level 2, got %d", config.InferLevel)
	}
	if config.LinkTarget != "_blank" || config.LinkRel != "noopener" {
		t.Errorf("Unexpected link attributes: target=%q rel=%q", config.LinkTarget, config.LinkRel)
	}
	if config.ListItemIndent != "  " {
		t.Errorf("Expected two-space indent, got %q", config.ListItemIndent)
	}
}

func TestLoadConfig_File(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "rendering.yaml")

	configYAML := `heading_inference:
  max_length: 80
links:
  target: "_self"
`
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.InferMaxLength != 80 {
		t.Errorf("Expected max length 80, got %d", config.InferMaxLength)
	}
	if config.LinkTarget != "_self" {
		t.Errorf("Expected target _self, got %q", config.LinkTarget)
	}
	// Unset keys keep their defaults
	if config.LinkRel != "noopener" {
		t.Errorf("Expected default rel, got %q", config.LinkRel)
	}
	if config.InferLevel != 2 {
		t.Errorf("Expected default level, got %d", config.InferLevel)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "zero max length", yaml: "heading_inference:\n  max_length: 0\n", wantErr: "max_length must be positive"},
		{name: "level too high", yaml: "heading_inference:\n  level: 5\n", wantErr: "level must be between 1 and 4"},
		{name: "level too low", yaml: "heading_inference:\n  level: 0\n", wantErr: "level must be between 1 and 4"},
		{name: "empty target", yaml: "links:\n  target: \"  \"\n", wantErr: "links.target cannot be empty"},
		{name: "empty rel", yaml: "links:\n  rel: \"\"\n", wantErr: "links.rel cannot be empty"},
		{name: "non-blank indent", yaml: "lists:\n  item_indent: \"--\"\n", wantErr: "item_indent"},
		{name: "malformed yaml", yaml: "links: [\n", wantErr: "failed to parse YAML config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseConfig_EscapesAnchorAttributes(t *testing.T) {
	config, err := ParseConfig([]byte("links:\n  rel: 'a\"b'\n"))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if !strings.Contains(config.anchorAttributes, `rel="a&quot;b"`) {
		t.Errorf("Expected escaped rel attribute, got %q", config.anchorAttributes)
	}
}
