package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/gomdparse/pkg/runner"
)

// makeTree creates files (relative paths) under dir with a small heading.
func makeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("# "+f+"\n"), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

// relative strips dir from discovered paths.
func relative(t *testing.T, dir string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func discover(t *testing.T, opts runner.Options) []string {
	t.Helper()
	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	return relative(t, opts.WorkingDir, files)
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "notes.txt")

	// Explicit files skip the extension filter.
	got := discover(t, runner.Options{Paths: []string{"notes.txt"}, WorkingDir: dir})
	if !slices.Equal(got, []string{"notes.txt"}) {
		t.Errorf("got %v", got)
	}
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir,
		"readme.md",
		"docs/guide.md",
		"docs/api.markdown",
		"docs/page.MDX",
		"src/main.go",
		"notes.txt",
		".hidden.md",
		".github/template.md",
	)

	got := discover(t, runner.Options{WorkingDir: dir})
	want := []string{"docs/api.markdown", "docs/guide.md", "docs/page.MDX", "readme.md"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "a.md", "b.txt")

	got := discover(t, runner.Options{WorkingDir: dir, Extensions: []string{".TXT"}})
	if !slices.Equal(got, []string{"b.txt"}) {
		t.Errorf("got %v", got)
	}
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir,
		"readme.md",
		"CHANGELOG.md",
		"vendor/lib/readme.md",
		"docs/draft.md",
		"docs/deep/draft.md",
		"docs/guide.md",
	)

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "directory double star",
			patterns: []string{"vendor/**"},
			want:     []string{"CHANGELOG.md", "docs/deep/draft.md", "docs/draft.md", "docs/guide.md", "readme.md"},
		},
		{
			name:     "base name anywhere",
			patterns: []string{"draft.md", "CHANGELOG.md"},
			want:     []string{"docs/guide.md", "readme.md", "vendor/lib/readme.md"},
		},
		{
			name:     "single star stays in one directory",
			patterns: []string{"docs/*.md"},
			want:     []string{"CHANGELOG.md", "docs/deep/draft.md", "readme.md", "vendor/lib/readme.md"},
		},
		{
			name:     "double star across directories",
			patterns: []string{"**/draft.md"},
			want:     []string{"CHANGELOG.md", "docs/guide.md", "readme.md", "vendor/lib/readme.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := discover(t, runner.Options{WorkingDir: dir, ExcludeGlobs: tt.patterns})
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"[unclosed"},
	})
	if err == nil || !strings.Contains(err.Error(), "invalid ignore pattern") {
		t.Errorf("expected invalid pattern error, got %v", err)
	}
}

func TestDiscover_DeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "b.md", "a/c.md", "a.md")

	got := discover(t, runner.Options{
		WorkingDir: dir,
		Paths:      []string{"b.md", ".", "a", filepath.Join(dir, "a.md")},
	})
	want := []string{"a.md", "a/c.md", "b.md"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing.md"},
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "real/doc.md")

	external := t.TempDir()
	makeTree(t, external, "external.md")

	if err := os.Symlink(external, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	// A loop back to the root must not recurse forever.
	if err := os.Symlink(dir, filepath.Join(dir, "real", "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got := discover(t, runner.Options{WorkingDir: dir})
	if !slices.Equal(got, []string{"real/doc.md"}) {
		t.Errorf("without FollowSymlinks got %v", got)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected doc.md and external.md, got %v", files)
	}
	if !strings.HasSuffix(files[0], "external.md") && !strings.HasSuffix(files[1], "external.md") {
		t.Errorf("external file missing: %v", files)
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	if !slices.Equal(runner.DefaultExtensions(), []string{".md", ".markdown", ".mdx"}) {
		t.Errorf("unexpected defaults %v", runner.DefaultExtensions())
	}
}
