// Package config defines the configuration types for gomdparse.
// These types are plain data; loading and merging live in internal/configloader.
package config

import (
	"fmt"

	"github.com/yaklabco/gomdparse/pkg/html"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

// Flavor selects the base construct set.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
	FlavorMDX        Flavor = "mdx"
)

// IsValid reports whether f names a known flavor.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM, FlavorMDX:
		return true
	default:
		return false
	}
}

// Flavors lists the known flavors.
func Flavors() []Flavor {
	return []Flavor{FlavorCommonMark, FlavorGFM, FlavorMDX}
}

// HTMLConfig holds the HTML compiler settings.
type HTMLConfig struct {
	AllowDangerousHTML     bool `mapstructure:"allow_dangerous_html" yaml:"allow_dangerous_html"`
	AllowDangerousProtocol bool `mapstructure:"allow_dangerous_protocol" yaml:"allow_dangerous_protocol"`

	// LineEnding is used when a document has no line endings: "lf", "cr" or "crlf".
	LineEnding string `mapstructure:"line_ending" yaml:"line_ending,omitempty"`

	// Tagfilter overrides the flavor default for the GFM tagfilter.
	Tagfilter *bool `mapstructure:"tagfilter" yaml:"tagfilter,omitempty"`

	TaskListCheckable bool `mapstructure:"task_list_checkable" yaml:"task_list_checkable"`
	DetectLanguage    bool `mapstructure:"detect_language" yaml:"detect_language"`

	// Footnote texts and id prefix. Empty keeps GitHub's.
	FootnoteLabel         string `mapstructure:"footnote_label" yaml:"footnote_label,omitempty"`
	FootnoteBackLabel     string `mapstructure:"footnote_back_label" yaml:"footnote_back_label,omitempty"`
	FootnoteClobberPrefix string `mapstructure:"footnote_clobber_prefix" yaml:"footnote_clobber_prefix,omitempty"`
}

// CacheConfig controls the render cache.
type CacheConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Path is the cache database. Empty means the XDG cache directory.
	Path string `mapstructure:"path" yaml:"path,omitempty"`
}

// Config is the root configuration structure for gomdparse.
type Config struct {
	// Flavor picks the base constructs ("commonmark", "gfm" or "mdx").
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	// Constructs turns single constructs on or off on top of the flavor,
	// keyed by snake_case construct name.
	Constructs map[string]bool `mapstructure:"constructs" yaml:"constructs,omitempty"`

	HTML HTMLConfig `mapstructure:"html" yaml:"html"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// MaxFileSize is the largest input in bytes. Zero means no limit.
	MaxFileSize int64 `mapstructure:"max_file_size" yaml:"max_file_size"`

	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	// CLI-level options (not persisted to config files).

	// Format specifies the report format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// OutDir receives rendered files instead of the input directories.
	OutDir string `mapstructure:"-" yaml:"-"`
}

// DefaultMaxFileSize is the default input size limit.
const DefaultMaxFileSize = 10 << 20

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:      FlavorCommonMark,
		Constructs:  make(map[string]bool),
		HTML:        HTMLConfig{LineEnding: "lf"},
		MaxFileSize: DefaultMaxFileSize,
		Format:      FormatText,
		Jobs:        0, // 0 means use GOMAXPROCS
	}
}

// ParseOptions resolves the flavor and construct overrides.
func (c *Config) ParseOptions() (parser.Options, error) {
	var opts parser.Options
	switch c.Flavor {
	case FlavorGFM:
		opts = parser.GFMOptions()
	case FlavorMDX:
		opts = parser.MDXOptions()
	case FlavorCommonMark, "":
		opts = parser.DefaultOptions()
	default:
		return opts, fmt.Errorf("unknown flavor %q", c.Flavor)
	}

	for name, on := range c.Constructs {
		if err := opts.Constructs.Set(name, on); err != nil {
			return opts, fmt.Errorf("construct override: %w", err)
		}
	}
	return opts, nil
}

// HTMLOptions builds compiler options for the configured flavor.
func (c *Config) HTMLOptions() (html.Options, error) {
	opts := html.DefaultOptions()
	if c.Flavor == FlavorGFM {
		opts = html.GFMOptions()
	}

	opts.AllowDangerousHTML = c.HTML.AllowDangerousHTML
	opts.AllowDangerousProtocol = c.HTML.AllowDangerousProtocol
	opts.GFMTaskListItemCheckable = c.HTML.TaskListCheckable
	opts.DetectLanguage = c.HTML.DetectLanguage
	opts.GFMFootnoteLabel = c.HTML.FootnoteLabel
	opts.GFMFootnoteBackLabel = c.HTML.FootnoteBackLabel
	opts.GFMFootnoteClobberPrefix = c.HTML.FootnoteClobberPrefix
	if c.HTML.Tagfilter != nil {
		opts.GFMTagfilter = *c.HTML.Tagfilter
	}

	ending, err := ParseLineEnding(c.HTML.LineEnding)
	if err != nil {
		return opts, err
	}
	opts.DefaultLineEnding = ending
	return opts, nil
}

// ParseLineEnding maps a config name to a line ending. Empty means "lf".
func ParseLineEnding(name string) (html.LineEnding, error) {
	switch name {
	case "", "lf":
		return html.LineFeed, nil
	case "cr":
		return html.CarriageReturn, nil
	case "crlf":
		return html.CarriageReturnLineFeed, nil
	default:
		return "", fmt.Errorf("unknown line ending %q (want lf, cr or crlf)", name)
	}
}
