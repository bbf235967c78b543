package configloader

import (
	"maps"

	"github.com/yaklabco/gomdparse/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalars: override wins when non-zero
//   - Booleans: override can only turn a setting on
//   - Constructs: merged per key, so a file can turn a construct off
//   - Slices: override replaces base entirely if non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.OutDir != "" {
		result.OutDir = override.OutDir
	}
	if override.MaxFileSize != 0 {
		result.MaxFileSize = override.MaxFileSize
	}

	result.HTML = mergeHTML(base.HTML, override.HTML)

	if override.Cache.Enabled {
		result.Cache.Enabled = true
	}
	if override.Cache.Path != "" {
		result.Cache.Path = override.Cache.Path
	}

	if len(base.Constructs)+len(override.Constructs) > 0 {
		result.Constructs = make(map[string]bool, len(base.Constructs)+len(override.Constructs))
		maps.Copy(result.Constructs, base.Constructs)
		maps.Copy(result.Constructs, override.Constructs)
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

func mergeHTML(base, override config.HTMLConfig) config.HTMLConfig {
	result := base

	result.AllowDangerousHTML = base.AllowDangerousHTML || override.AllowDangerousHTML
	result.AllowDangerousProtocol = base.AllowDangerousProtocol || override.AllowDangerousProtocol
	result.TaskListCheckable = base.TaskListCheckable || override.TaskListCheckable
	result.DetectLanguage = base.DetectLanguage || override.DetectLanguage

	if override.LineEnding != "" {
		result.LineEnding = override.LineEnding
	}
	if override.Tagfilter != nil {
		result.Tagfilter = override.Tagfilter
	}
	if override.FootnoteLabel != "" {
		result.FootnoteLabel = override.FootnoteLabel
	}
	if override.FootnoteBackLabel != "" {
		result.FootnoteBackLabel = override.FootnoteBackLabel
	}
	if override.FootnoteClobberPrefix != "" {
		result.FootnoteClobberPrefix = override.FootnoteClobberPrefix
	}
	return result
}

// MergeAll merges configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
