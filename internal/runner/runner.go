// Package runner orchestrates one comparison run: path validation,
// origin load, the per-file target batch, the selected comparison
// operation and the output write.
package runner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/JustUsingaWebsite/data-compare/internal/compareops"
	"github.com/JustUsingaWebsite/data-compare/internal/config"
	"github.com/JustUsingaWebsite/data-compare/internal/dataio"
	"github.com/JustUsingaWebsite/data-compare/internal/extract"
	"github.com/JustUsingaWebsite/data-compare/internal/types"
)

// ErrInvalidPath reports an origin path that is not a regular file or a
// target path that is not a directory.
var ErrInvalidPath = errors.New("invalid path")

// Options configures a run. Key and Mode are assumed syntactically
// valid only after Run's own validation.
type Options struct {
	OriginPath string
	TargetPath string
	OutputPath string
	Key        extract.Key
	Mode       string
	Progress   bool
}

// FileResult records the outcome of one target file. A non-nil Err
// means the file was skipped and contributed nothing.
type FileResult struct {
	Name   string
	Values int
	Err    error
}

type Runner struct {
	log *zap.SugaredLogger
}

func New(log *zap.SugaredLogger) *Runner {
	return &Runner{log: log}
}

// Run executes the pipeline. Per-file failures are logged and skipped
// without aborting the batch, but any [ERROR] condition during the run
// still yields a non-nil return so the process can exit non-zero.
// Fatal errors are returned, not logged here; the caller reports them.
func (r *Runner) Run(opts Options) error {
	if _, err := extract.Pattern(opts.Key); err != nil {
		return err
	}

	if err := r.validatePaths(opts); err != nil {
		return err
	}

	runID := uuid.NewString()
	r.log.Debugf("run %s: key=%s mode=%s", runID, opts.Key, opts.Mode)

	r.log.Infof("Starting data comparison based on key: %s...", opts.Key)
	r.log.Infof("Loading origin file...")
	origin, err := r.loadOrigin(opts)
	if err != nil {
		return fmt.Errorf("could not load origin file: %w", err)
	}

	targetValues, results, err := r.collectTargets(opts)
	if err != nil {
		return err
	}
	skipped := 0
	for _, res := range results {
		if res.Err != nil {
			skipped++
		}
	}

	summary, result, err := r.compare(opts, origin, targetValues)
	if err != nil {
		return err
	}

	// The summary still prints when the write fails; the error is
	// reported afterwards so the run exits non-zero.
	var writeErr error
	if opts.Mode == config.ModeRows && summary.Missing == 0 {
		r.log.Infof("All %d origin rows matched; output %s would be empty, skipping write.",
			summary.Processed, opts.OutputPath)
	} else if writeErr = dataio.Save(result, opts.OutputPath); writeErr == nil {
		r.log.Infof("Output saved to %s", opts.OutputPath)
	}

	r.log.Infof("Summary: processed=%d matched=%d non-matching=%d duration=%dms",
		summary.Processed, summary.Matched, summary.Missing, summary.DurationMS)

	if writeErr != nil {
		return fmt.Errorf("could not save output: %w", writeErr)
	}
	if skipped > 0 {
		return fmt.Errorf("%d of %d target files skipped", skipped, len(results))
	}
	return nil
}

func (r *Runner) validatePaths(opts Options) error {
	info, err := os.Stat(opts.OriginPath)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: origin %s is not a regular file", ErrInvalidPath, opts.OriginPath)
	}
	info, err = os.Stat(opts.TargetPath)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: target %s is not a directory", ErrInvalidPath, opts.TargetPath)
	}
	return nil
}

func (r *Runner) loadOrigin(opts Options) (types.TableData, error) {
	if opts.Mode == config.ModeValues {
		return dataio.LoadSingleColumn(opts.OriginPath)
	}
	return dataio.Load(opts.OriginPath)
}

// collectTargets loads and extracts every regular file in the target
// folder, in enumeration order. Failures are per-file: logged, recorded
// in the FileResult, and the batch continues.
func (r *Runner) collectTargets(opts Options) (map[string]struct{}, []FileResult, error) {
	entries, err := os.ReadDir(opts.TargetPath)
	if err != nil {
		return nil, nil, fmt.Errorf("could not list target folder: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, e.Name())
		}
	}
	r.log.Infof("Found %d files in the target folder.", len(files))

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("[PROCESSING FILES]"),
			progressbar.OptionShowCount(),
		)
	}

	targetValues := make(map[string]struct{})
	results := make([]FileResult, 0, len(files))
	for _, name := range files {
		if bar != nil {
			_ = bar.Add(1)
		}
		res := FileResult{Name: name}
		path := filepath.Join(opts.TargetPath, name)

		tbl, err := r.loadTarget(opts, path)
		if err == nil {
			var vals []string
			if vals, err = extract.Values(tbl, opts.Key); err == nil {
				for _, v := range vals {
					targetValues[v] = struct{}{}
				}
				res.Values = len(vals)
				r.log.Debugf("valid target values from %s: %d", name, len(vals))
			}
		}
		if err != nil {
			res.Err = err
			r.log.Errorf("Could not process file %s: %v", name, err)
		}
		results = append(results, res)
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return targetValues, results, nil
}

func (r *Runner) loadTarget(opts Options, path string) (types.TableData, error) {
	if opts.Mode == config.ModeValues {
		return dataio.LoadSingleColumn(path)
	}
	return dataio.Load(path)
}

func (r *Runner) compare(opts Options, origin types.TableData, targetValues map[string]struct{}) (types.ResultSummary, types.TableData, error) {
	switch opts.Mode {
	case config.ModeValues:
		resp, err := compareops.ValueSet(compareops.ValueSetRequest{
			Operation:    "value_set",
			Options:      compareops.ValueSetOptions{Key: opts.Key},
			Origin:       origin,
			TargetValues: targetValues,
		})
		if err != nil {
			return types.ResultSummary{}, types.TableData{}, err
		}
		r.log.Debugf("origin values: %v", resp.OriginValues)
		r.log.Debugf("non-matching values: %v", flatten(resp.Result.Rows))
		return resp.Summary, resp.Result, nil
	case config.ModeRows:
		resp, err := compareops.RowMatch(compareops.RowMatchRequest{
			Operation:    "row_match",
			Options:      compareops.RowMatchOptions{Key: opts.Key},
			Origin:       origin,
			TargetValues: targetValues,
		})
		if err != nil {
			return types.ResultSummary{}, types.TableData{}, err
		}
		r.log.Debugf("matched rows: %d, non-matching rows: %d",
			len(resp.Matched.Rows), len(resp.Result.Rows))
		return resp.Summary, resp.Result, nil
	default:
		return types.ResultSummary{}, types.TableData{}, fmt.Errorf("unknown mode %q", opts.Mode)
	}
}

func flatten(rows [][]string) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row...)
	}
	return out
}
