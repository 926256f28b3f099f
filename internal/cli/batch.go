package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/realitypatch/realitypatch/internal/model"
	"github.com/realitypatch/realitypatch/internal/orchestrate"
	"github.com/realitypatch/realitypatch/internal/render"
	"github.com/realitypatch/realitypatch/internal/worker"
)

var (
	batchWorkers int
	batchOutDir  string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify a file of newline-separated claims",
	Long: `Batch reads one claim per line and verifies them concurrently
through a worker pool. Blank lines and lines starting with # are skipped.

Example:
  realitypatch batch claims.txt --workers 4 --out reports/`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "concurrent claim checks")
	batchCmd.Flags().StringVar(&batchOutDir, "out", "", "directory for per-claim JSON reports (optional)")

	batchCmd.Flags().DurationVar(&agentTimeout, "timeout", 30*time.Second, "per-agent timeout")
	batchCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM provider (openai, ollama, cohere; empty = mock mode)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
	batchCmd.Flags().BoolVar(&validateLinks, "validate-links", false, "check evidence URL accessibility")
}

// claimJob runs one claim through the orchestrator.
type claimJob struct {
	orchestrator *orchestrate.Orchestrator
	claim        model.Claim
}

// claimResult pairs a claim with its report or error.
type claimResult struct {
	claim  model.Claim
	report *model.AggregatedReport
	err    error
}

func (r claimResult) GetError() error { return r.err }

func (j claimJob) Execute(ctx context.Context) worker.Result {
	report, err := j.orchestrator.Run(ctx, j.claim)
	return claimResult{claim: j.claim, report: report, err: err}
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Workers.BatchWorkers = batchWorkers

	claims, err := readClaims(args[0])
	if err != nil {
		return err
	}
	if len(claims) == 0 {
		return fmt.Errorf("no claims found in %s", args[0])
	}

	orch, err := orchestrate.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	pool := worker.NewPool(cfg.Workers.BatchWorkers)
	pool.Start()
	for _, claim := range claims {
		pool.Submit(claimJob{orchestrator: orch, claim: claim})
	}
	results := pool.Wait()

	renderer := render.NewRenderer(cfg.Output.IncludeFooter)
	var failures int
	var reports []claimResult

	for _, res := range results {
		cr, ok := res.(claimResult)
		if !ok {
			continue
		}
		if cr.err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "claim %q: %v\n", cr.claim.Text, cr.err)
			continue
		}
		reports = append(reports, cr)
		fmt.Printf("%-50.50s %s (%.2f)\n", cr.claim.Text, cr.report.Verdict, cr.report.OverallConfidence)
	}

	if batchOutDir != "" {
		if err := writeBatchReports(renderer, reports); err != nil {
			return err
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d claims failed to process", failures, len(claims))
	}
	return nil
}

// writeBatchReports writes per-claim JSON reports concurrently; the first
// write error aborts the rest.
func writeBatchReports(renderer *render.Renderer, reports []claimResult) error {
	if err := os.MkdirAll(batchOutDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	var g errgroup.Group
	for _, cr := range reports {
		g.Go(func() error {
			path := filepath.Join(batchOutDir, cr.claim.ID+".json")
			return renderer.RenderJSON(cr.report, path)
		})
	}
	return g.Wait()
}

// readClaims parses one claim per line, skipping blanks and # comments.
func readClaims(path string) ([]model.Claim, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open claims file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var claims []model.Claim
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		claims = append(claims, model.NewClaim(line, ""))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read claims file: %w", err)
	}
	return claims, nil
}
