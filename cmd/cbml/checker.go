package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"cbml-lang/cbml/pkg/cbml"
	"cbml-lang/cbml/pkg/cbml/document"
	cbmlErrors "cbml-lang/cbml/pkg/cbml/errors"
	"cbml-lang/cbml/pkg/cli"
	"cbml-lang/cbml/pkg/config"
	"cbml-lang/cbml/pkg/telemetry/logging"
	"cbml-lang/cbml/pkg/telemetry/metrics"
)

// checker runs cbml.Check over files and turns results into reports.
type checker struct {
	cfg          *config.Config
	logger       *logging.Logger
	metrics      *metrics.Collector
	baseDir      string
	contextLines int
}

func newChecker(a *app) *checker {
	return &checker{
		cfg:          a.cfg,
		logger:       a.logger,
		metrics:      a.metrics,
		baseDir:      a.cfg.Check.BaseDir,
		contextLines: a.cfg.Check.ContextLines,
	}
}

func (c *checker) options(path string) document.Options {
	base := c.baseDir
	if base == "" {
		base = filepath.Dir(path)
	}
	return document.Options{
		BaseDir:  base,
		ReadFile: limitedReader(c.cfg.Check.MaxFileSize),
	}
}

// check validates one file and records its metrics.
func (c *checker) check(ctx context.Context, path string) (*cbml.Result, cli.FileReport) {
	ctx = logging.WithFile(ctx, path)
	start := time.Now()

	res := cbml.Check(path, c.options(path))
	kind := string(res.Kind)

	if res.Source() == "" && res.Errors.HasCode(cbmlErrors.CodeCannotOpenFile) {
		c.metrics.RecordReadError(kind)
		c.logger.WarnContext(ctx, "file could not be read", "kind", kind)
	} else {
		codes := make([]string, 0, res.Errors.Count())
		for _, e := range res.Errors.Errors {
			codes = append(codes, e.Code.String())
		}
		c.metrics.RecordCheck(kind, time.Since(start), codes)
	}

	c.logger.DebugContext(ctx, "file checked",
		"kind", kind,
		"diagnostics", res.Errors.Count(),
		"duration", time.Since(start),
	)

	report := cli.NewFileReport(path, kind, res.Errors, c.sourceFunc(res), c.contextLines)
	return res, report
}

// sourceFunc serves the text of the checked file and its schema from the
// result, reading any other file from disk.
func (c *checker) sourceFunc(res *cbml.Result) cli.SourceFunc {
	return func(path string) (string, bool) {
		if src, ok := res.SourceOf(path); ok {
			return src, true
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", false
		}
		return string(data), true
	}
}

// checkFiles checks files in order and collects the reports.
func (c *checker) checkFiles(ctx context.Context, files []string, progress cli.ProgressReporter) *cli.Report {
	if progress == nil {
		progress = cli.NopProgress{}
	}
	report := &cli.Report{Files: []cli.FileReport{}, Color: c.cfg.Output.Color}

	progress.Begin(len(files))
	for _, path := range files {
		if ctx.Err() != nil {
			progress.Abort(ctx.Err())
			break
		}
		_, fr := c.check(ctx, path)
		report.Add(fr)
		progress.FileDone(path, len(fr.Diagnostics))
	}
	progress.End()

	c.logger.InfoContext(ctx, "check finished",
		"files", report.Summary.Files,
		"failed", report.Summary.Failed,
		"diagnostics", report.Summary.Diagnostics,
	)
	return report
}

// limitedReader reads whole files, refusing those larger than limit bytes.
// A limit of zero or less disables the check.
func limitedReader(limit int64) func(string) ([]byte, error) {
	return func(path string) ([]byte, error) {
		if limit > 0 {
			info, err := os.Stat(path)
			if err != nil {
				return nil, err
			}
			if info.Size() > limit {
				return nil, fmt.Errorf("file is %d bytes, limit is %d", info.Size(), limit)
			}
		}
		return os.ReadFile(path)
	}
}

// collectFiles expands paths into the sorted list of CBML files to check.
// Directories are walked recursively, skipping those matching exclude.
// Files named explicitly are always kept.
func collectFiles(paths, exclude []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && excluded(d.Name(), exclude) {
					return filepath.SkipDir
				}
				return nil
			}
			if cbml.IsCBMLPath(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %v", cbml.Extension, paths)
	}
	slices.Sort(files)
	return files, nil
}

func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
