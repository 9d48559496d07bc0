package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/clausetag/clausetag/internal/model"
	"github.com/clausetag/clausetag/internal/pipeline"
)

var (
	catalogPath string
	storeDir    string
	outJSON     string
	outMD       string
	tagTimeout  time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	noRobots    bool
)

// tagCmd represents the tag command
var tagCmd = &cobra.Command{
	Use:   "tag <file-or-url>",
	Short: "Tag a single evidence document against the clause catalog",
	Long: `Tag extracts text from an evidence document, detects entity mentions,
and maps the document onto compliance clauses:
- Direct clause references tag with high confidence
- Standard references corroborated by keywords tag as entity matches
- Dense keyword overlap tags as rule matches
- Title similarity produces low-confidence suggestions for review

Previously auto-tagged mappings for the document are replaced; manually
assigned or verified mappings are left untouched.

Example:
  clausetag tag evidence/assessment-policy.txt
  clausetag tag https://rto.example.edu/policies/assessment --json report.json
  clausetag tag evidence/records.txt --catalog clauses.yaml --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runTag,
}

func init() {
	rootCmd.AddCommand(tagCmd)

	tagCmd.Flags().StringVar(&catalogPath, "catalog", "clauses.yaml", "clause catalog YAML path")
	tagCmd.Flags().StringVar(&storeDir, "store", "", "mapping store directory (default: $HOME/.clausetag/store)")
	tagCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path (optional)")
	tagCmd.Flags().StringVar(&outMD, "md", "", "output Markdown report path (optional)")
	tagCmd.Flags().DurationVar(&tagTimeout, "timeout", 2*time.Minute, "overall tagging timeout")
	tagCmd.Flags().StringVar(&userAgent, "ua", "Clausetag/0.1 (+https://github.com/clausetag/clausetag)", "HTTP User-Agent for URL sources")
	tagCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read for URL sources")
	tagCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parsed-catalog cache")
	tagCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	tagCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks for URL sources")
}

func runTag(cmd *cobra.Command, args []string) error {
	source := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), tagTimeout)
	defer cancel()

	cfg := buildTagConfig()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	if verbose {
		fmt.Fprintf(os.Stderr, "Tagging: %s\n", source)
		fmt.Fprintf(os.Stderr, "Catalog: %s\n", cfg.Catalog.Path)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg, st, logger)

	result, err := p.TagSource(ctx, source)
	if err != nil {
		return fmt.Errorf("tag failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Detected %d entities\n", len(result.Report.Entities))
		fmt.Fprintf(os.Stderr, "Created %d clause mappings\n", result.Created)
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(!noFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(result.Report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderReportMarkdown(result.Report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(result)
	return nil
}

// buildTagConfig merges defaults with tag command flags
func buildTagConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Catalog.Path = catalogPath
	cfg.Store.Dir = storeDir
	cfg.HTTP.Timeout = tagTimeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.RespectRobots = !noRobots
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter
	return cfg
}
