package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/clausetag/clausetag/internal/pipeline"
	"github.com/clausetag/clausetag/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Tag multiple evidence documents from a list file in parallel",
	Long: `Batch tags multiple evidence sources concurrently:
- Read sources (file paths or URLs) from the input file, one per line
- Tag sources in parallel with a configurable worker count
- Write an individual JSON report per document

Example:
  clausetag batch evidence-list.txt
  clausetag batch evidence-list.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./clausetag-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().StringVar(&catalogPath, "catalog", "clauses.yaml", "clause catalog YAML path")
	batchCmd.Flags().StringVar(&storeDir, "store", "", "mapping store directory (default: $HOME/.clausetag/store)")
	batchCmd.Flags().StringVar(&userAgent, "ua", "Clausetag/0.1 (+https://github.com/clausetag/clausetag)", "HTTP User-Agent for URL sources")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parsed-catalog cache")
	batchCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks for URL sources")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Input file:  %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:     %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir:  %s\n", outputDir)
	fmt.Fprintln(os.Stderr)

	cfg := buildTagConfig()
	cfg.Concurrency.Workers = concurrency

	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.NewPipeline(cfg, st, logger)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	outcomes, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	renderer := pipeline.NewRenderer(!noFooter)
	succeeded, failed := 0, 0
	for _, outcome := range outcomes {
		if outcome.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", outcome.Source, outcome.Error)
			continue
		}
		succeeded++

		reportPath := filepath.Join(outputDir, reportFileName(outcome.Source))
		if err := renderer.RenderJSON(outcome.Result.Report, reportPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: write report: %v\n", outcome.Source, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s: %d mappings (%s)\n",
			outcome.Source, outcome.Result.Created, reportPath)
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d tagged, %d failed\n", succeeded, failed)
	if failed > 0 && succeeded == 0 {
		return fmt.Errorf("all %d sources failed", failed)
	}
	return nil
}

// reportFileName derives a stable report file name from a source path or URL
func reportFileName(source string) string {
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	if name == "" || name == "-" {
		name = "document"
	}
	return name + ".json"
}
