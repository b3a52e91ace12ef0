// Package driver orchestrates checker runs: loading files into a FileSet,
// running the lint rules, fanning out over directories, and the optional
// disk cache.
package driver

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"julint/internal/diag"
	"julint/internal/lint"
	"julint/internal/source"
)

// Options configures a driver run.
type Options struct {
	Lint lint.Options
	// EnableDiskCache replays cached results for unchanged files.
	EnableDiskCache bool
}

// Result pairs one checked file with its report.
type Result struct {
	Path   string
	FileID source.FileID
	Report *lint.Report
}

// CheckFile loads one file into the set and checks it. A read failure
// propagates unchanged; the checker itself cannot fail.
func CheckFile(ctx context.Context, fileSet *source.FileSet, path string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}
	cache, err := openCache(opts)
	if err != nil {
		return nil, err
	}
	return checkLoaded(fileSet, id, path, cache, opts), nil
}

// CheckReader checks content read from r (stdin, typically) under the
// given display name.
func CheckReader(ctx context.Context, fileSet *source.FileSet, name string, r io.Reader, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := fileSet.LoadReader(name, r)
	if err != nil {
		return nil, err
	}
	cache, err := openCache(opts)
	if err != nil {
		return nil, err
	}
	return checkLoaded(fileSet, id, name, cache, opts), nil
}

// CheckDir walks dir for *.jl files and checks them, fanning out across
// workers. Checking is a pure function of each file's content, so the
// fan-out needs no coordination beyond the slot per file. Results come
// back in deterministic path order; jobs<=0 means NumCPU.
func CheckDir(ctx context.Context, fileSet *source.FileSet, dir string, opts Options, jobs int) ([]*Result, error) {
	paths, err := collectSources(dir)
	if err != nil {
		return nil, err
	}

	// FileSet mutation is not goroutine-safe; load serially, check in
	// parallel.
	ids := make([]source.FileID, len(paths))
	for i, path := range paths {
		id, err := fileSet.Load(path)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	cache, err := openCache(opts)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = checkLoaded(fileSet, ids[i], paths[i], cache, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func collectSources(dir string) ([]string, error) {
	paths := make([]string, 0)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".jl") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func openCache(opts Options) (*DiskCache, error) {
	if !opts.EnableDiskCache {
		return nil, nil
	}
	cache, err := OpenDiskCache("julint")
	if err != nil {
		return nil, fmt.Errorf("open disk cache: %w", err)
	}
	return cache, nil
}

func checkLoaded(fileSet *source.FileSet, id source.FileID, path string, cache *DiskCache, opts Options) *Result {
	file := fileSet.Get(id)

	if cache != nil {
		key := CacheKey(file, opts.Lint)
		var payload DiskPayload
		if hit, err := cache.Get(key, &payload); err == nil && hit {
			return &Result{
				Path:   path,
				FileID: id,
				Report: rehydrateReport(file, &payload, opts.Lint),
			}
		}
	}

	report := lint.Check(file, opts.Lint)

	if cache != nil {
		// best effort: a failed write never fails the run
		_ = cache.Put(CacheKey(file, opts.Lint), encodePayload(report))
	}

	return &Result{Path: path, FileID: id, Report: report}
}

func encodePayload(report *lint.Report) *DiskPayload {
	items := report.Bag.Items()
	payload := &DiskPayload{
		Schema:    diskCacheSchemaVersion,
		Issues:    make([]CachedIssue, 0, len(items)),
		Fixed:     report.Fixed,
		AutoFixed: report.AutoFixed,
	}
	for _, d := range items {
		issue := CachedIssue{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		if len(d.Fixes) > 0 {
			issue.FixTitle = d.Fixes[0].Title
			for _, e := range d.Fixes[0].Edits {
				issue.Edits = append(issue.Edits, CachedEdit{
					Start:   e.Span.Start,
					End:     e.Span.End,
					NewText: e.NewText,
				})
			}
		}
		payload.Issues = append(payload.Issues, issue)
	}
	return payload
}

func rehydrateReport(file *source.File, payload *DiskPayload, opts lint.Options) *lint.Report {
	diags := make([]diag.Diagnostic, 0, len(payload.Issues))
	for _, issue := range payload.Issues {
		d := diag.New(
			diag.Severity(issue.Severity),
			diag.Code(issue.Code),
			source.Span{File: file.ID, Start: issue.Start, End: issue.End},
			issue.Message,
		)
		if len(issue.Edits) > 0 {
			edits := make([]diag.FixEdit, 0, len(issue.Edits))
			for _, e := range issue.Edits {
				edits = append(edits, diag.FixEdit{
					Span:    source.Span{File: file.ID, Start: e.Start, End: e.End},
					NewText: e.NewText,
				})
			}
			d = d.WithFix(issue.FixTitle, edits...)
		}
		diags = append(diags, d)
	}
	return lint.Rehydrate(file, diags, payload.Fixed, payload.AutoFixed, opts)
}
