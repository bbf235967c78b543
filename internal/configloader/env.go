package configloader

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdparse/pkg/config"
)

// envVarPrefix is the prefix for all gomdparse environment variables.
const envVarPrefix = "GOMDPARSE_"

// envMapping binds one environment variable to a config field.
type envMapping struct {
	field       string
	description string
	set         func(cfg *config.Config, value string) error
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR": {"flavor", "Markdown flavor: commonmark, gfm or mdx", func(cfg *config.Config, v string) error {
		cfg.Flavor = config.Flavor(v)
		return nil
	}},
	"FORMAT": {"format", "Report format: text, table, json or summary", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(v)
		return nil
	}},
	"JOBS": {"jobs", "Number of parallel workers (0 = auto)", func(cfg *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		cfg.Jobs = n
		return err
	}},
	"MAX_FILE_SIZE": {"max_file_size", "Largest input in bytes (0 = no limit)", func(cfg *config.Config, v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		cfg.MaxFileSize = n
		return err
	}},
	"IGNORE": {"ignore", "Comma-separated list of ignore patterns", func(cfg *config.Config, v string) error {
		cfg.Ignore = parseSliceValue(v)
		return nil
	}},
	"CONSTRUCTS": {"constructs", "Comma-separated constructs; prefix with - to turn off", setConstructs},
	"CACHE_ENABLED": {"cache.enabled", "Cache rendered HTML: true or false", func(cfg *config.Config, v string) error {
		return parseBool(v, &cfg.Cache.Enabled)
	}},
	"CACHE_PATH": {"cache.path", "Cache database path", func(cfg *config.Config, v string) error {
		cfg.Cache.Path = v
		return nil
	}},
	"HTML_ALLOW_DANGEROUS_HTML": {"html.allow_dangerous_html", "Pass raw HTML through: true or false", func(cfg *config.Config, v string) error {
		return parseBool(v, &cfg.HTML.AllowDangerousHTML)
	}},
	"HTML_ALLOW_DANGEROUS_PROTOCOL": {"html.allow_dangerous_protocol", "Keep unsafe URL protocols: true or false", func(cfg *config.Config, v string) error {
		return parseBool(v, &cfg.HTML.AllowDangerousProtocol)
	}},
	"HTML_LINE_ENDING": {"html.line_ending", "Default line ending: lf, cr or crlf", func(cfg *config.Config, v string) error {
		cfg.HTML.LineEnding = v
		return nil
	}},
	"HTML_TAGFILTER": {"html.tagfilter", "GFM tagfilter: true or false", func(cfg *config.Config, v string) error {
		var on bool
		if err := parseBool(v, &on); err != nil {
			return err
		}
		cfg.HTML.Tagfilter = &on
		return nil
	}},
	"HTML_DETECT_LANGUAGE": {"html.detect_language", "Guess languages of fenced code: true or false", func(cfg *config.Config, v string) error {
		return parseBool(v, &cfg.HTML.DetectLanguage)
	}},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOMDPARSE_ (e.g., GOMDPARSE_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range sortedEnvSuffixes() {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if err := envMappings[suffix].set(cfg, value); err != nil {
			return fmt.Errorf("invalid value for %s: %q: %w", envVar, value, err)
		}
	}

	return nil
}

func sortedEnvSuffixes() []string {
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

func parseBool(value string, target *bool) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return errors.New("expected true/false/1/0")
	}
	*target = b
	return nil
}

// setConstructs applies "frontmatter,-code_indented" style overrides.
func setConstructs(cfg *config.Config, value string) error {
	if cfg.Constructs == nil {
		cfg.Constructs = make(map[string]bool)
	}
	for _, name := range parseSliceValue(value) {
		on := true
		if rest, ok := strings.CutPrefix(name, "-"); ok {
			name, on = rest, false
		}
		if name == "" {
			return errors.New("empty construct name")
		}
		cfg.Constructs[name] = on
	}
	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
