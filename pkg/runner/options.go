// Package runner renders many markdown files concurrently.
package runner

import (
	"fmt"

	"github.com/yaklabco/gomdparse/pkg/cache"
	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/html"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip files or directories, relative to WorkingDir.
	// Patterns without a slash also match base names.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// MaxFileSize rejects larger inputs. Zero means no limit.
	MaxFileSize int64

	Parse parser.Options
	HTML  html.Options

	// Write stores each result in a <name>.html file. Otherwise the HTML is
	// kept in FileOutcome.HTML.
	Write bool

	// OutDir receives outputs, mirroring paths relative to WorkingDir.
	// Empty means next to each input.
	OutDir string

	// Cache, when set, is consulted before rendering.
	Cache *cache.Cache
}

// OptionsFromConfig fills parse, HTML and file options from cfg.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	parseOpts, err := cfg.ParseOptions()
	if err != nil {
		return Options{}, fmt.Errorf("parse options: %w", err)
	}
	htmlOpts, err := cfg.HTMLOptions()
	if err != nil {
		return Options{}, fmt.Errorf("html options: %w", err)
	}

	return Options{
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		MaxFileSize:  cfg.MaxFileSize,
		Parse:        parseOpts,
		HTML:         htmlOpts,
		OutDir:       cfg.OutDir,
	}, nil
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".mdx"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
