package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/yaklabco/gomdparse/internal/logging"
	"github.com/yaklabco/gomdparse/pkg/cache"
	"github.com/yaklabco/gomdparse/pkg/fsutil"
	"github.com/yaklabco/gomdparse/pkg/html"
	"github.com/yaklabco/gomdparse/pkg/message"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

// Run discovers files under opts.Paths and renders them with a bounded
// worker pool. Outcomes keep discovery order whatever order workers finish in.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	fingerprint := cache.Fingerprint(opts.Parse, opts.HTML)
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))
	workCh := make(chan int)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range workCh {
				if ctx.Err() != nil {
					continue
				}
				outcomes[index] = renderFile(ctx, files[index], opts, fingerprint)
				done[index] = true
			}
		}()
	}

	for index := range files {
		if ctx.Err() != nil {
			break
		}
		workCh <- index
	}
	close(workCh)
	wg.Wait()

	for index, outcome := range outcomes {
		if done[index] {
			result.accumulate(outcome)
		}
	}
	result.Stats.Duration = time.Since(start)

	logger.Debug("run finished",
		logging.FieldFilesRendered, result.Stats.FilesRendered,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldDuration, result.Stats.Duration)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

// renderFile reads, renders and optionally writes one file.
func renderFile(ctx context.Context, path string, opts Options, fingerprint string) FileOutcome {
	logger := logging.FromContext(ctx).With(logging.FieldPath, path)
	start := time.Now()
	outcome := FileOutcome{Path: path}

	source, info, err := fsutil.ReadFile(ctx, path, opts.MaxFileSize)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Bytes = len(source)

	var key []byte
	if opts.Cache != nil {
		key = cache.Key(info.Hash, fingerprint)
		cached, ok, err := opts.Cache.Get(key)
		if err != nil {
			logger.Warn("cache lookup failed", logging.FieldError, err)
		}
		outcome.HTML, outcome.CacheHit = cached, ok
	}

	if !outcome.CacheHit {
		out, events, err := RenderBytes(source, opts.Parse, opts.HTML)
		if err != nil {
			outcome.Error = fmt.Errorf("%s: %w", path, err)
			var msg *message.Message
			if errors.As(err, &msg) && msg.Place != nil {
				outcome.ErrorLine = message.Line(source, msg.Place.Start.Line)
			}
			return outcome
		}
		outcome.HTML, outcome.Events = out, events

		if opts.Cache != nil {
			if err := opts.Cache.Put(key, out); err != nil {
				logger.Warn("cache store failed", logging.FieldError, err)
			}
		}
	}

	if opts.Write {
		outcome.Output = OutputPath(path, opts.WorkingDir, opts.OutDir)
		written, err := fsutil.WriteAtomicIfChanged(ctx, outcome.Output, outcome.HTML, 0)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.Written = written
	}

	outcome.Duration = time.Since(start)
	logger.Debug("rendered",
		logging.FieldCacheHit, outcome.CacheHit,
		logging.FieldBytes, outcome.Bytes,
		logging.FieldDuration, outcome.Duration)
	return outcome
}

// RenderBytes parses source and compiles it to HTML. It also returns the
// number of events.
func RenderBytes(source []byte, parseOpts parser.Options, htmlOpts html.Options) ([]byte, int, error) {
	doc, err := parser.Parse(source, parseOpts)
	if err != nil {
		return nil, 0, err
	}
	return []byte(html.Compile(doc, source, htmlOpts)), len(doc.Events), nil
}

// OutputPath returns where the HTML for input goes: next to it, or under
// outDir at the same path relative to workDir. Inputs outside workDir land
// in outDir by base name.
func OutputPath(input, workDir, outDir string) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".html"
	if outDir == "" {
		return filepath.Join(filepath.Dir(input), name)
	}

	rel, err := filepath.Rel(workDir, filepath.Dir(input))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Join(outDir, name)
	}
	return filepath.Join(outDir, rel, name)
}
