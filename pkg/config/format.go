package config

import (
	"fmt"
	"strings"
)

// OutputFormat specifies how run results are reported.
type OutputFormat string

// Output formats.
const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// OutputFormats lists every output format.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatTable, FormatJSON, FormatSummary}
}

// ParseOutputFormat accepts a format name in any case.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(name))); format {
	case FormatText, FormatTable, FormatJSON, FormatSummary:
		return format, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, table, json or summary)", name)
	}
}
