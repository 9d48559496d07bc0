package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/clausetag/clausetag/internal/pipeline"
)

// Tagger defines the interface for tagging a single evidence source
type Tagger interface {
	TagSource(ctx context.Context, source string) (*pipeline.TagResult, error)
}

// TagJob tags one evidence source
type TagJob struct {
	Source string
	Tagger Tagger
}

// Execute runs the tag job
func (j *TagJob) Execute(ctx context.Context) Result {
	result, err := j.Tagger.TagSource(ctx, j.Source)
	if err != nil {
		return &TagOutcome{Source: j.Source, Error: err}
	}
	return &TagOutcome{Source: j.Source, Result: result}
}

// TagOutcome is the result of one batch tag job
type TagOutcome struct {
	Source string
	Result *pipeline.TagResult
	Error  error
}

// GetError returns the job error, if any
func (o *TagOutcome) GetError() error {
	return o.Error
}

// BatchProcessor tags multiple evidence sources concurrently
type BatchProcessor struct {
	tagger      Tagger
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(tagger Tagger, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		tagger:      tagger,
		concurrency: concurrency,
	}
}

// ProcessSources tags the given sources on the worker pool
func (b *BatchProcessor) ProcessSources(ctx context.Context, sources []string) []*TagOutcome {
	if len(sources) == 0 {
		return []*TagOutcome{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	go func() {
		for _, source := range sources {
			pool.Submit(&TagJob{Source: source, Tagger: b.tagger})
		}
		pool.Close()
	}()

	results := pool.Collect()

	outcomes := make([]*TagOutcome, len(results))
	for i, result := range results {
		outcomes[i] = result.(*TagOutcome)
	}
	return outcomes
}

// ProcessFile reads sources from a file (one per line) and tags them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*TagOutcome, error) {
	sources, err := ReadSourcesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}
	return b.ProcessSources(ctx, sources), nil
}

// ReadSourcesFromFile reads evidence sources from a file, one per line.
// Blank lines and lines starting with # are skipped; duplicates are dropped.
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		sources = append(sources, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}
