package worker

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/siripat/labelcheck/internal/model"
)

type fakeChecker struct {
	calls atomic.Int64
}

func (c *fakeChecker) Check(ctx context.Context, sub *model.Submission) (*model.Report, error) {
	c.calls.Add(1)
	return &model.Report{Product: sub.Product}, nil
}

func TestListSubmissions(t *testing.T) {
	paths, err := ListSubmissions("testdata")
	if err != nil {
		t.Fatalf("ListSubmissions: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v, want the two yaml files", paths)
	}
	// Name order keeps batch output deterministic per directory listing.
	if paths[0] >= paths[1] {
		t.Errorf("paths not sorted: %v", paths)
	}
}

func TestProcessDirIsolatesFailures(t *testing.T) {
	checker := &fakeChecker{}
	b := NewBatchProcessor(checker, 2)

	results, err := b.ProcessDir(context.Background(), "testdata")
	if err != nil {
		t.Fatalf("ProcessDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}

	var failed, passed int
	for _, r := range results {
		if r.GetError() != nil {
			failed++
		} else {
			passed++
			if r.Report == nil {
				t.Error("successful result missing report")
			}
		}
	}
	// bad.yaml fails validation before the checker runs.
	if passed != 1 || failed != 1 {
		t.Errorf("passed %d failed %d, want 1 and 1", passed, failed)
	}
	if checker.calls.Load() != 1 {
		t.Errorf("checker called %d times, want 1", checker.calls.Load())
	}
}

func TestProcessPathsEmpty(t *testing.T) {
	b := NewBatchProcessor(&fakeChecker{}, 4)
	results := b.ProcessPaths(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("results = %v, want empty", results)
	}
}

type countJob struct {
	counter *atomic.Int64
}

type countResult struct{}

func (countResult) GetError() error { return nil }

func (j countJob) Execute(ctx context.Context) Result {
	j.counter.Add(1)
	return countResult{}
}

func TestPoolRunsAllJobs(t *testing.T) {
	var counter atomic.Int64
	pool := NewPool(3)
	pool.Start()

	// More jobs than the queue buffers hold, so the drain below has to
	// run concurrently with submission.
	go func() {
		for i := 0; i < 20; i++ {
			pool.Submit(countJob{counter: &counter})
		}
		pool.Close()
	}()

	var results int
	for range pool.Results() {
		results++
	}
	if counter.Load() != 20 || results != 20 {
		t.Errorf("executed %d jobs with %d results, want 20", counter.Load(), results)
	}
}

func TestPoolWaitSmallBatch(t *testing.T) {
	var counter atomic.Int64
	pool := NewPool(4)
	pool.Start()
	for i := 0; i < 6; i++ {
		pool.Submit(countJob{counter: &counter})
	}
	results := pool.Wait()
	if counter.Load() != 6 || len(results) != 6 {
		t.Errorf("executed %d jobs with %d results, want 6", counter.Load(), len(results))
	}
}
