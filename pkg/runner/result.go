package runner

import "time"

// FileOutcome is the result of rendering one file.
type FileOutcome struct {
	// Path is the input file path.
	Path string

	// Output is the written HTML path, empty unless Options.Write is set.
	Output string

	// HTML is the rendered document.
	HTML []byte

	// Bytes is the size of the input.
	Bytes int

	// Events is the number of parse events, zero on a cache hit.
	Events int

	CacheHit bool

	// Written is false when the output already held the same HTML.
	Written bool

	Duration time.Duration

	// Error is set if the file could not be rendered.
	Error error

	// ErrorLine is the source line a parse message points at.
	ErrorLine string
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesRendered   int
	FilesFailed     int
	FilesWritten    int
	FilesUnchanged  int
	CacheHits       int
	BytesIn         int
	BytesOut        int
	Duration        time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, in discovery order.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any file failed to render.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesFailed > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}

	r.Stats.FilesRendered++
	r.Stats.BytesIn += outcome.Bytes
	r.Stats.BytesOut += len(outcome.HTML)
	if outcome.CacheHit {
		r.Stats.CacheHits++
	}
	if outcome.Output != "" {
		if outcome.Written {
			r.Stats.FilesWritten++
		} else {
			r.Stats.FilesUnchanged++
		}
	}
}
