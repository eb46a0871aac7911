package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/siripat/labelcheck/internal/model"
	"github.com/siripat/labelcheck/internal/pipeline"
)

// Checker defines the interface for evaluating one submission file
type Checker interface {
	Check(ctx context.Context, sub *model.Submission) (*model.Report, error)
}

// CheckJob evaluates one submission file
type CheckJob struct {
	Path    string
	Checker Checker
}

// Execute loads and evaluates the submission. A failure is isolated to
// this file's result.
func (j *CheckJob) Execute(ctx context.Context) Result {
	sub, err := pipeline.LoadSubmission(j.Path)
	if err != nil {
		return &CheckResult{Path: j.Path, Error: err}
	}
	report, err := j.Checker.Check(ctx, sub)
	if err != nil {
		return &CheckResult{Path: j.Path, Error: err}
	}
	return &CheckResult{Path: j.Path, Report: report}
}

// CheckResult represents the result of one submission file
type CheckResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the check result
func (r *CheckResult) GetError() error {
	return r.Error
}

// BatchProcessor evaluates multiple submission files concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// ProcessPaths evaluates the given submission files concurrently. Results
// come back in completion order, each carrying its source path.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*CheckResult {
	if len(paths) == 0 {
		return []*CheckResult{}
	}

	pool := NewPoolContext(ctx, b.concurrency)
	pool.Start()

	go func() {
		for _, path := range paths {
			pool.Submit(&CheckJob{Path: path, Checker: b.checker})
		}
		pool.Close()
	}()

	checkResults := make([]*CheckResult, 0, len(paths))
	for result := range pool.Results() {
		checkResults = append(checkResults, result.(*CheckResult))
	}
	return checkResults
}

// ProcessDir evaluates every YAML submission in a directory.
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*CheckResult, error) {
	paths, err := ListSubmissions(dir)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ListSubmissions returns the YAML files of a directory in name order.
func ListSubmissions(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
