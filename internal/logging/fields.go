package logging

// Field names for structured log entries.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldPaths  = "paths"
	FieldOutput = "output"
	FieldConfig = "config"

	FieldFlavor    = "flavor"
	FieldJobs      = "jobs"
	FieldCache     = "cache"
	FieldCacheHit  = "cache_hit"
	FieldBytes     = "bytes"
	FieldDuration  = "duration"
	FieldEvents    = "events"
	FieldDiffCount = "differences"

	FieldFilesDiscovered = "files_discovered"
	FieldFilesRendered   = "files_rendered"
	FieldFilesFailed     = "files_failed"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
