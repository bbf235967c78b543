package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "html.line_ending").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	fail := func(field string, value any, format string, args ...any) {
		result.Errors = append(result.Errors, ValidationError{
			Field: field, Value: value, Message: fmt.Sprintf(format, args...),
		})
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		fail("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm, mdx", cfg.Flavor)
	}
	if cfg.Format != "" {
		if _, err := config.ParseOutputFormat(string(cfg.Format)); err != nil {
			fail("format", cfg.Format, "invalid format %q; must be one of: text, table, json, summary", cfg.Format)
		}
	}
	if cfg.Jobs < 0 {
		fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.MaxFileSize < 0 {
		fail("max_file_size", cfg.MaxFileSize, "max_file_size must be >= 0 (0 means no limit)")
	}
	if _, err := config.ParseLineEnding(cfg.HTML.LineEnding); err != nil {
		fail("html.line_ending", cfg.HTML.LineEnding, "%v", err)
	}

	validateConstructs(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateConstructs(cfg *config.Config, result *ValidationResult) {
	var scratch parser.Constructs
	for name, on := range cfg.Constructs {
		if err := scratch.Set(name, on); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "constructs." + name,
				Value:   name,
				Message: fmt.Sprintf("unknown construct %q", name),
			})
		}
	}

	if cfg.Flavor == config.FlavorMDX && (cfg.Constructs["html_flow"] || cfg.Constructs["html_text"]) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "constructs",
			Message: "html constructs are not part of the mdx flavor",
		})
	}
}

// validateIgnorePatterns checks that ignore patterns compile as globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
