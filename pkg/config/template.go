package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every construct with its value under Flavor.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Flavor is written into the template. Empty means commonmark.
	Flavor Flavor
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Flavor == "" {
		opts.Flavor = FlavorCommonMark
	}
	if !opts.Flavor.IsValid() {
		return nil, fmt.Errorf("unknown flavor %q", opts.Flavor)
	}

	if opts.Format == "json" {
		return templateToJSON(opts)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")
	fmt.Fprintf(&buf, `# Markdown flavor: commonmark, gfm or mdx
flavor: %s

# Largest input in bytes (0 = no limit)
max_file_size: %d

# HTML output
html:
  allow_dangerous_html: false
  allow_dangerous_protocol: false
  # Line ending for documents without one: lf, cr or crlf
  line_ending: lf
  task_list_checkable: false
  # Guess a language class for fenced code without an info string
  detect_language: false

# Cache of rendered HTML keyed by content hash
cache:
  enabled: false
  # path: ~/.cache/gomdparse/render.db

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`, opts.Flavor, DefaultMaxFileSize)

	if opts.Full {
		if err := writeConstructs(&buf, opts.Flavor); err != nil {
			return nil, err
		}
	} else {
		buf.WriteString(`
# Single constructs on top of the flavor
# constructs:
#   frontmatter: true
#   math_flow: true
`)
	}

	return buf.Bytes(), nil
}

// writeConstructs writes every construct with its value under flavor.
func writeConstructs(buf *bytes.Buffer, flavor Flavor) error {
	cfg := &Config{Flavor: flavor}
	opts, err := cfg.ParseOptions()
	if err != nil {
		return err
	}

	raw, err := yaml.Marshal(opts.Constructs)
	if err != nil {
		return fmt.Errorf("encode constructs: %w", err)
	}

	buf.WriteString("\n# ")
	buf.WriteString(wrapComment(
		"Single constructs on top of the flavor. The values below are the "+
			string(flavor)+" defaults; keep only the lines you change.",
		commentWrapWidth, "# "))
	buf.WriteString("\nconstructs:\n")
	for _, line := range strings.Split(strings.TrimRight(string(raw), "\n"), "\n") {
		buf.WriteString("  ")
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return nil
}

// wrapComment wraps a comment to fit within maxWidth characters,
// starting continuation lines with prefix.
func wrapComment(text string, maxWidth int, prefix string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+prefix)
}

// templateToJSON writes the default configuration as JSON.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	cfg := NewConfig()
	cfg.Flavor = opts.Flavor

	if opts.Full {
		parseOpts, err := cfg.ParseOptions()
		if err != nil {
			return nil, err
		}
		// Round-trip through YAML so the keys match the YAML names.
		raw, err := yaml.Marshal(parseOpts.Constructs)
		if err != nil {
			return nil, fmt.Errorf("encode constructs: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg.Constructs); err != nil {
			return nil, fmt.Errorf("decode constructs: %w", err)
		}
	}

	raw, err := cfg.ToYAML()
	if err != nil {
		return nil, err
	}
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomdparse configuration
# See: https://github.com/yaklabco/gomdparse`
}
