// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package runner

import (
	"context"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/formfix/pkg/config"
	"github.com/walteh/formfix/pkg/selector"
	"github.com/walteh/formfix/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidUTF8 is returned for a page whose content is not UTF-8 text
var ErrInvalidUTF8 = errors.Base("content is not valid UTF-8")

// 📢 Reporter receives the progress of a run
type Reporter interface {
	// Start is called once the candidate files are known
	Start(ctx context.Context, pattern string, found int)
	// File is called after each file has been processed
	File(ctx context.Context, result FileResult)
	// Finish is called with the final summary
	Finish(ctx context.Context, summary *Summary)
}

// 🔧 Options contains configuration for the runner
type Options struct {
	// Transformer rewrites each file's content, transform.Default() if nil
	Transformer *transform.Transformer
	// Reporter receives progress, nothing is reported if nil
	Reporter Reporter
	// DryRun transforms and reports without writing any file
	DryRun bool
	// ContinueOnError records per-file failures and keeps going instead
	// of aborting the run on the first one
	ContinueOnError bool
	// ShowDiff attaches a patch of the changes to each modified result
	ShowDiff bool
}

// 🏃 Runner applies the transformer to a set of files, one at a time
type Runner struct {
	transformer *transform.Transformer
	reporter    Reporter
	dryRun      bool
	keepGoing   bool
	showDiff    bool
}

// 🏗️ New creates a new runner
func New(opts Options) *Runner {
	tr := opts.Transformer
	if tr == nil {
		tr = transform.Default()
	}
	rep := opts.Reporter
	if rep == nil {
		rep = nopReporter{}
	}
	return &Runner{
		transformer: tr,
		reporter:    rep,
		dryRun:      opts.DryRun,
		keepGoing:   opts.ContinueOnError,
		showDiff:    opts.ShowDiff,
	}
}

// 📂 RunFileSet selects the files of set and runs over them
func (r *Runner) RunFileSet(ctx context.Context, set config.FileSet) (*Summary, error) {
	files, err := selector.Select(ctx, set)
	if err != nil {
		return nil, errors.Errorf("selecting files: %w", err)
	}
	return r.run(ctx, set.Pattern(), files)
}

// 🏃 Run processes files in the given order
func (r *Runner) Run(ctx context.Context, files []string) (*Summary, error) {
	return r.run(ctx, "", files)
}

func (r *Runner) run(ctx context.Context, pattern string, files []string) (*Summary, error) {
	logger := zerolog.Ctx(ctx)

	summary := &Summary{
		Found:  len(files),
		DryRun: r.dryRun,
	}

	r.reporter.Start(ctx, pattern, len(files))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, errors.Errorf("run cancelled: %w", err)
		}

		result, err := r.processFile(ctx, path)
		if err != nil {
			if !r.keepGoing {
				return summary, errors.Errorf("processing %s: %w", path, err)
			}
			logger.Error().Err(err).Str("path", path).Msg("processing file failed, continuing")
			result = FileResult{Path: path, Err: err}
		}

		summary.add(result)
		r.reporter.File(ctx, result)
	}

	r.reporter.Finish(ctx, summary)

	logger.Info().
		Int("found", summary.Found).
		Int("modified", summary.Modified).
		Int("failed", summary.Failed).
		Bool("dry_run", r.dryRun).
		Msg("run complete")

	return summary, nil
}

// 📄 processFile reads, transforms and conditionally writes back one file
func (r *Runner) processFile(ctx context.Context, path string) (FileResult, error) {
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()

	info, err := os.Stat(path)
	if err != nil {
		return FileResult{}, errors.Errorf("reading file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, errors.Errorf("reading file: %w", err)
	}

	if !utf8.Valid(data) {
		return FileResult{}, errors.Errorf("reading file: %w", ErrInvalidUTF8)
	}

	transformed := r.transformer.Transform(string(data))

	result := FileResult{
		Path:     path,
		Modified: transformed.WasModified(),
		Changes:  transformed.Changes,
	}

	if !result.Modified {
		if len(transformed.Changes) > 0 {
			logger.Debug().Strs("changes", transformed.Changes).Msg("rules fired but content is identical")
		}
		logger.Debug().Msg("no changes needed")
		return result, nil
	}

	if r.showDiff {
		result.Diff = diffText(transformed.Original, transformed.Content)
	}

	if r.dryRun {
		logger.Debug().Strs("changes", transformed.Changes).Msg("dry run, not writing")
		return result, nil
	}

	if err := writeFileAtomic(path, []byte(transformed.Content), info.Mode().Perm()); err != nil {
		return FileResult{}, errors.Errorf("writing file: %w", err)
	}

	logger.Debug().Strs("changes", transformed.Changes).Msg("file rewritten")

	return result, nil
}

// 💾 writeFileAtomic replaces path with content in one rename, so the file
// either keeps its old content or holds the new one in full. A symlinked
// path is written through to its target and the link itself is kept.
func writeFileAtomic(path string, content []byte, perm os.FileMode) error {
	path, err := filepath.EvalSymlinks(path)
	if err != nil {
		return errors.Errorf("resolving path: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

type nopReporter struct{}

func (nopReporter) Start(context.Context, string, int) {}
func (nopReporter) File(context.Context, FileResult) {}
func (nopReporter) Finish(context.Context, *Summary) {}
