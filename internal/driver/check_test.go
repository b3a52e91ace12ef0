package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"julint/internal/lint"
	"julint/internal/source"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.jl", "x = True\n")

	fs := source.NewFileSet()
	res, err := CheckFile(context.Background(), fs, path, Options{})
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	if res.Path != path {
		t.Errorf("path = %q, want %q", res.Path, path)
	}
	if res.Report.Clean() {
		t.Error("report unexpectedly clean")
	}
}

func TestCheckFileMissing(t *testing.T) {
	fs := source.NewFileSet()
	if _, err := CheckFile(context.Background(), fs, filepath.Join(t.TempDir(), "missing.jl"), Options{}); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestCheckReader(t *testing.T) {
	fs := source.NewFileSet()
	res, err := CheckReader(context.Background(), fs, "<stdin>", strings.NewReader("x = 1\n"), Options{})
	if err != nil {
		t.Fatalf("CheckReader: %v", err)
	}
	if !res.Report.Clean() {
		t.Error("report unexpectedly dirty")
	}
	if fs.Get(res.FileID).Flags&source.FileVirtual == 0 {
		t.Error("stdin file not marked virtual")
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.jl", "x = 1\n")
	writeFile(t, dir, "a.jl", "x = True\n")
	writeFile(t, dir, "notes.txt", "not a source file\n")

	fs := source.NewFileSet()
	results, err := CheckDir(context.Background(), fs, dir, Options{}, 2)
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("checked %d files, want 2", len(results))
	}
	if filepath.Base(results[0].Path) != "a.jl" || filepath.Base(results[1].Path) != "b.jl" {
		t.Errorf("results out of order: %q, %q", results[0].Path, results[1].Path)
	}
	if results[0].Report.Clean() {
		t.Error("a.jl unexpectedly clean")
	}
	if !results[1].Report.Clean() {
		t.Error("b.jl unexpectedly dirty")
	}
}

func TestCheckDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.jl", "x = 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CheckDir(ctx, source.NewFileSet(), dir, Options{}, 1); err == nil {
		t.Error("expected a cancellation error")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir := t.TempDir()
	path := writeFile(t, dir, "a.jl", "\"x\" not in y;\n")
	opts := Options{EnableDiskCache: true}

	fs1 := source.NewFileSet()
	first, err := CheckFile(context.Background(), fs1, path, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	// a fresh FileSet forces the second run through the cache path
	fs2 := source.NewFileSet()
	second, err := CheckFile(context.Background(), fs2, path, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.Report.Bag.Len() != second.Report.Bag.Len() {
		t.Fatalf("issue counts differ: %d vs %d", first.Report.Bag.Len(), second.Report.Bag.Len())
	}
	for i, d := range first.Report.Bag.Items() {
		if got := second.Report.Bag.Items()[i]; got.Message != d.Message || got.Code != d.Code || got.Severity != d.Severity {
			t.Errorf("issue %d differs: %+v vs %+v", i, d, got)
		}
	}
	if second.Report.AutoFixed != first.Report.AutoFixed {
		t.Error("AutoFixed not preserved")
	}
	if string(second.Report.EmbeddedCode()) != string(first.Report.EmbeddedCode()) {
		t.Errorf("embedded code differs: %q vs %q",
			first.Report.EmbeddedCode(), second.Report.EmbeddedCode())
	}
}

func TestDiskCacheSchemaMismatch(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	cache, err := OpenDiskCache("julint")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.jl", []byte("x = 1\n")))
	key := CacheKey(file, lint.Options{})

	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion + 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out DiskPayload
	hit, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("stale schema treated as a hit")
	}
}

func TestCacheKey(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.jl", []byte("x = 1\n")))
	other := fs.Get(fs.AddVirtual("b.jl", []byte("x = 2\n")))

	base := CacheKey(file, lint.Options{})
	if CacheKey(other, lint.Options{}) == base {
		t.Error("different content produced the same key")
	}
	if CacheKey(file, lint.Options{MaxIssues: 5}) == base {
		t.Error("MaxIssues does not participate in the key")
	}
	if CacheKey(file, lint.Options{Disable: []string{"indent"}}) == base {
		t.Error("Disable does not participate in the key")
	}

	// disabled rule order is canonicalized
	ab := CacheKey(file, lint.Options{Disable: []string{"indent", "python-ops"}})
	ba := CacheKey(file, lint.Options{Disable: []string{"python-ops", "indent"}})
	if ab != ba {
		t.Error("Disable order changed the key")
	}
}
