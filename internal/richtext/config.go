package richtext

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/default_rendering.yaml
var defaultRenderingYAML []byte

// RenderingConfig holds the raw YAML configuration (for parsing only)
type RenderingConfig struct {
	HeadingInference HeadingInferenceConfig `yaml:"heading_inference"`
	Links            LinkConfig             `yaml:"links"`
	Lists            ListConfig             `yaml:"lists"`
}

// HeadingInferenceConfig controls how plain paragraphs are promoted to headings
type HeadingInferenceConfig struct {
	Enabled   *bool `yaml:"enabled,omitempty"`
	MaxLength *int  `yaml:"max_length,omitempty"` // Exclusive upper bound on trimmed text length
	Level     *int  `yaml:"level,omitempty"`      // Heading level used for inferred headings (1-4)
}

// LinkConfig defines the attributes written on anchors
type LinkConfig struct {
	Target *string `yaml:"target,omitempty"`
	Rel    *string `yaml:"rel,omitempty"`
}

// ListConfig defines list item layout
type ListConfig struct {
	ItemIndent *string `yaml:"item_indent,omitempty"`
}

// PreparedConfig holds resolved rendering settings.
// Values missing from a custom file fall back to the embedded defaults.
type PreparedConfig struct {
	InferHeadings    bool
	InferMaxLength   int
	InferLevel       int
	LinkTarget       string
	LinkRel          string
	ListItemIndent   string
	anchorAttributes string
}

// LoadConfig loads rendering configuration from a file path.
// If path is empty, uses the embedded default configuration.
func LoadConfig(path string) (*PreparedConfig, error) {
	var defaults RenderingConfig
	if err := yaml.Unmarshal(defaultRenderingYAML, &defaults); err != nil {
		return nil, fmt.Errorf("failed to parse embedded YAML config: %w", err)
	}
	if path == "" {
		return prepareConfig(&defaults, nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML rendering configuration, filling unset keys from
// the embedded defaults.
func ParseConfig(data []byte) (*PreparedConfig, error) {
	var defaults RenderingConfig
	if err := yaml.Unmarshal(defaultRenderingYAML, &defaults); err != nil {
		return nil, fmt.Errorf("failed to parse embedded YAML config: %w", err)
	}

	var config RenderingConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return prepareConfig(&defaults, &config)
}

// DefaultConfig returns the embedded configuration. It panics if the
// embedded file is broken, which is a build defect.
func DefaultConfig() *PreparedConfig {
	cfg, err := LoadConfig("")
	if err != nil {
		panic(err)
	}
	return cfg
}

// validateConfig rejects values the renderer cannot honour. Only keys that
// are present are checked.
func validateConfig(config *RenderingConfig) error {
	hi := config.HeadingInference
	if hi.MaxLength != nil && *hi.MaxLength <= 0 {
		return fmt.Errorf("heading_inference.max_length must be positive")
	}
	if hi.Level != nil && (*hi.Level < 1 || *hi.Level > 4) {
		return fmt.Errorf("heading_inference.level must be between 1 and 4, got %d", *hi.Level)
	}
	if config.Links.Target != nil && strings.TrimSpace(*config.Links.Target) == "" {
		return fmt.Errorf("links.target cannot be empty")
	}
	if config.Links.Rel != nil && strings.TrimSpace(*config.Links.Rel) == "" {
		return fmt.Errorf("links.rel cannot be empty")
	}
	if config.Lists.ItemIndent != nil && strings.TrimLeft(*config.Lists.ItemIndent, " \t") != "" {
		return fmt.Errorf("lists.item_indent may only contain spaces and tabs")
	}
	return nil
}

// prepareConfig merges the override on top of the defaults
func prepareConfig(defaults, override *RenderingConfig) (*PreparedConfig, error) {
	merged := *defaults
	if override != nil {
		if v := override.HeadingInference.Enabled; v != nil {
			merged.HeadingInference.Enabled = v
		}
		if v := override.HeadingInference.MaxLength; v != nil {
			merged.HeadingInference.MaxLength = v
		}
		if v := override.HeadingInference.Level; v != nil {
			merged.HeadingInference.Level = v
		}
		if v := override.Links.Target; v != nil {
			merged.Links.Target = v
		}
		if v := override.Links.Rel; v != nil {
			merged.Links.Rel = v
		}
		if v := override.Lists.ItemIndent; v != nil {
			merged.Lists.ItemIndent = v
		}
	}

	// The embedded defaults must define every key
	if err := validateConfig(&merged); err != nil {
		return nil, err
	}
	if merged.HeadingInference.Enabled == nil || merged.HeadingInference.MaxLength == nil ||
		merged.HeadingInference.Level == nil || merged.Links.Target == nil ||
		merged.Links.Rel == nil || merged.Lists.ItemIndent == nil {
		return nil, fmt.Errorf("default rendering configuration is incomplete")
	}

	prepared := &PreparedConfig{
		InferHeadings:  *merged.HeadingInference.Enabled,
		InferMaxLength: *merged.HeadingInference.MaxLength,
		InferLevel:     *merged.HeadingInference.Level,
		LinkTarget:     *merged.Links.Target,
		LinkRel:        *merged.Links.Rel,
		ListItemIndent: *merged.Lists.ItemIndent,
	}
	prepared.anchorAttributes = fmt.Sprintf(` target="%s" rel="%s"`, EscapeHTML(prepared.LinkTarget), EscapeHTML(prepared.LinkRel))
	return prepared, nil
}
