package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/clausetag/clausetag/internal/pipeline"
)

type fakeTagger struct {
	mu      sync.Mutex
	seen    []string
	lastCtx context.Context
	failOn  string
}

func (f *fakeTagger) TagSource(ctx context.Context, source string) (*pipeline.TagResult, error) {
	f.mu.Lock()
	f.seen = append(f.seen, source)
	f.lastCtx = ctx
	f.mu.Unlock()

	if source == f.failOn {
		return nil, errors.New("extraction failed")
	}
	return &pipeline.TagResult{Created: 1}, nil
}

func TestBatchProcessor_ProcessSources(t *testing.T) {
	tagger := &fakeTagger{}
	processor := NewBatchProcessor(tagger, 3)

	sources := []string{"a.txt", "b.txt", "c.txt", "d.txt"}
	outcomes := processor.ProcessSources(context.Background(), sources)

	if len(outcomes) != len(sources) {
		t.Fatalf("Expected %d outcomes, got %d", len(sources), len(outcomes))
	}
	for _, o := range outcomes {
		if o.GetError() != nil {
			t.Errorf("Unexpected error for %s: %v", o.Source, o.GetError())
		}
		if o.Result == nil || o.Result.Created != 1 {
			t.Errorf("Expected tag result for %s, got %v", o.Source, o.Result)
		}
	}
	if len(tagger.seen) != len(sources) {
		t.Errorf("Expected every source tagged, got %v", tagger.seen)
	}
}

func TestBatchProcessor_ErrorsAreIsolated(t *testing.T) {
	tagger := &fakeTagger{failOn: "bad.txt"}
	processor := NewBatchProcessor(tagger, 2)

	outcomes := processor.ProcessSources(context.Background(), []string{"ok.txt", "bad.txt"})

	if len(outcomes) != 2 {
		t.Fatalf("Expected 2 outcomes, got %d", len(outcomes))
	}

	var failed, succeeded int
	for _, o := range outcomes {
		if o.GetError() != nil {
			failed++
			if o.Source != "bad.txt" {
				t.Errorf("Expected only bad.txt to fail, got %s", o.Source)
			}
		} else {
			succeeded++
		}
	}
	if failed != 1 || succeeded != 1 {
		t.Errorf("Expected 1 failure and 1 success, got %d/%d", failed, succeeded)
	}
}

func TestBatchProcessor_EmptySourceList(t *testing.T) {
	processor := NewBatchProcessor(&fakeTagger{}, 2)
	outcomes := processor.ProcessSources(context.Background(), nil)
	if len(outcomes) != 0 {
		t.Errorf("Expected no outcomes for empty input, got %d", len(outcomes))
	}
}

func TestReadSourcesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.txt")
	content := strings.Join([]string{
		"# evidence batch",
		"policies/assessment.txt",
		"",
		"policies/assessment.txt", // duplicate
		"https://example.com/handbook.html",
		"   ", // whitespace only
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write sources: %v", err)
	}

	sources, err := ReadSourcesFromFile(path)
	if err != nil {
		t.Fatalf("ReadSourcesFromFile failed: %v", err)
	}

	want := []string{"policies/assessment.txt", "https://example.com/handbook.html"}
	if len(sources) != len(want) {
		t.Fatalf("Expected %d sources, got %v", len(want), sources)
	}
	for i := range want {
		if sources[i] != want[i] {
			t.Errorf("Source %d: expected %s, got %s", i, want[i], sources[i])
		}
	}
}

func TestReadSourcesFromFile_Missing(t *testing.T) {
	if _, err := ReadSourcesFromFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestBatchProcessor_ContextReachesJobs(t *testing.T) {
	tagger := &fakeTagger{}
	processor := NewBatchProcessor(tagger, 2)

	ctx, cancel := context.WithCancel(context.Background())
	outcomes := processor.ProcessSources(ctx, []string{"a.txt", "b.txt"})
	if len(outcomes) != 2 {
		t.Fatalf("Expected 2 outcomes, got %d", len(outcomes))
	}
	if tagger.lastCtx == nil {
		t.Fatal("Expected the tagger to receive a context")
	}
	if tagger.lastCtx.Err() != nil {
		t.Fatal("Job context cancelled before the caller cancelled")
	}

	// The job context derives from the caller's, so the CLI timeout
	// propagates into in-flight tagging.
	cancel()
	if tagger.lastCtx.Err() == nil {
		t.Error("Expected job context to be cancelled with the caller's context")
	}
}
