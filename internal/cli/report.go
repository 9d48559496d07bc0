package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/clausetag/clausetag/internal/audit"
	"github.com/clausetag/clausetag/internal/catalog"
	"github.com/clausetag/clausetag/internal/llm"
	"github.com/clausetag/clausetag/internal/pipeline"
)

var (
	reportJSON    string
	reportMD      string
	reportTimeout time.Duration
	llmEnabled    bool
	llmProvider   string
	llmModel      string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate an audit coverage report from stored mappings",
	Long: `Report aggregates every stored clause mapping into the coverage view an
auditor works from: compliance percentage, critical-clause coverage, and
per-clause evidence counts, with diagnostic signals for gaps.

An optional LLM summary can be attached. It is generated after aggregation
and never changes any number in the report.

Example:
  clausetag report --catalog clauses.yaml --md coverage.md
  clausetag report --json coverage.json --llm --llm-provider openai`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&catalogPath, "catalog", "clauses.yaml", "clause catalog YAML path")
	reportCmd.Flags().StringVar(&storeDir, "store", "", "mapping store directory (default: $HOME/.clausetag/store)")
	reportCmd.Flags().StringVar(&reportJSON, "json", "", "output JSON path (optional)")
	reportCmd.Flags().StringVar(&reportMD, "md", "", "output Markdown path (optional)")
	reportCmd.Flags().DurationVar(&reportTimeout, "timeout", 2*time.Minute, "report generation timeout")
	reportCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	reportCmd.Flags().BoolVar(&llmEnabled, "llm", false, "attach an LLM summary to the report")
	reportCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	reportCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	cfg := buildTagConfig()
	if llmEnabled {
		if err := configureLLM(cfg, llmProvider, llmModel); err != nil {
			return err
		}
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	loader := catalog.NewLoader(cfg.Catalog, cfg.Cache.Enabled)
	cat, err := loader.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	mappings, err := st.All()
	if err != nil {
		return fmt.Errorf("read mappings: %w", err)
	}

	cov := audit.NewAggregator().Coverage(cat, mappings)

	if llmEnabled {
		summarizer, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			return fmt.Errorf("init LLM: %w", err)
		}
		summary, err := summarizer.Summarize(ctx, *cov)
		if err != nil {
			// A failed summary never blocks the report
			fmt.Fprintf(os.Stderr, "Warning: LLM summary failed: %v\n", err)
		} else {
			cov.LLM = summary
		}
	}

	renderer := pipeline.NewRenderer(!noFooter)
	if reportJSON != "" {
		if err := renderer.RenderJSON(cov, reportJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", reportJSON)
		}
	}
	if reportMD != "" {
		if err := renderer.RenderCoverageMarkdown(cov, reportMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", reportMD)
		}
	}

	renderer.RenderCoverageSummary(cov)
	return nil
}
