package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the config file looked up in the working directory.
const FileName = ".stripjson.toml"

// EnvVar overrides the config file location.
const EnvVar = "STRIPJSON_CONFIG"

// Config holds project defaults. Command-line flags take precedence.
type Config struct {
	TrailingCommas bool     `toml:"trailing_commas"`
	Whitespace     *bool    `toml:"whitespace"`
	Format         string   `toml:"format"`
	Indent         string   `toml:"indent"`
	Jobs           int      `toml:"jobs"`
	Extensions     []string `toml:"extensions"`
	Exclude        []string `toml:"exclude"`

	// Path is the file the config was read from, empty if none was found.
	Path string `toml:"-"`
}

// DefaultExtensions are picked up when walking directories.
var DefaultExtensions = []string{".json", ".jsonc", ".json5"}

// Default returns the config used when no file is present.
func Default() *Config {
	whitespace := true
	return &Config{
		Whitespace: &whitespace,
		Format:     "keep",
		Indent:     "  ",
		Extensions: append([]string(nil), DefaultExtensions...),
	}
}

// Load reads the config named by $STRIPJSON_CONFIG, or .stripjson.toml in
// dir. A missing .stripjson.toml is not an error; a missing file named by the
// environment is.
func Load(dir string) (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return LoadFile(path)
	}

	cfg, err := LoadFile(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile parses the TOML file at path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes TOML content on top of the defaults and validates it.
func Parse(content string) (*Config, error) {
	cfg := Default()

	md, err := toml.Decode(content, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values and normalizes extensions to start with a dot.
func (c *Config) Validate() error {
	switch c.Format {
	case "", "keep", "pretty", "ugly":
	default:
		return fmt.Errorf("invalid format %q, expected keep, pretty or ugly", c.Format)
	}

	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be >= 0, got %d", c.Jobs)
	}

	exts, err := NormalizeExtensions(c.Extensions)
	if err != nil {
		return err
	}
	c.Extensions = exts

	return nil
}

// NormalizeExtensions returns exts with a leading dot added where missing.
func NormalizeExtensions(exts []string) ([]string, error) {
	if exts == nil {
		return nil, nil
	}
	out := make([]string, len(exts))
	for i, ext := range exts {
		if ext == "" || ext == "." {
			return nil, fmt.Errorf("empty extension in extensions")
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out[i] = ext
	}
	return out, nil
}

// UseWhitespace reports the whitespace setting, true unless disabled.
func (c *Config) UseWhitespace() bool {
	return c.Whitespace == nil || *c.Whitespace
}
