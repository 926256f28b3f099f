package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/realitypatch/realitypatch/internal/model"
	"github.com/realitypatch/realitypatch/internal/orchestrate"
	"github.com/realitypatch/realitypatch/internal/render"
)

var (
	mediaPath string
	outJSON   string
	outMD     string
	styled    bool
	noFooter  bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim text>",
	Short: "Verify a single claim",
	Long: `Check routes one claim through the applicable analysis agents:
- Clarity decomposes the claim into structural parts
- Proof searches for supporting or refuting evidence
- ContextNet adds background and bias context (longer or charged claims)
- MediaScan assesses an attached image (when --media is given)

Missing API keys degrade the affected agents to mock mode; the report
still renders with the degradation clearly marked.

Example:
  realitypatch check "The Great Wall of China is visible from space."
  realitypatch check "This photo shows the incident" --media photo.jpg
  realitypatch check "..." --llm openai --json report.json --md report.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&mediaPath, "media", "", "path to an attached media file")
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().BoolVar(&styled, "styled", false, "print persona-styled agent summaries")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	checkCmd.Flags().DurationVar(&agentTimeout, "timeout", 30*time.Second, "per-agent timeout")
	checkCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM provider (openai, ollama, cohere; empty = mock mode)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
	checkCmd.Flags().BoolVar(&validateLinks, "validate-links", false, "check evidence URL accessibility")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Output.IncludeFooter = !noFooter

	orch, err := orchestrate.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	claim := model.NewClaim(strings.Join(args, " "), mediaPath)

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking claim %s\n", claim.ID)
		fmt.Fprintf(os.Stderr, "Per-agent timeout: %v\n\n", cfg.Agents.Timeout)
	}

	report, err := orch.Run(context.Background(), claim)
	if err != nil {
		return fmt.Errorf("run orchestrator: %w", err)
	}

	return writeReport(report, cfg)
}

// writeReport renders the report to stdout and any requested files.
func writeReport(report *model.AggregatedReport, cfg *model.Config) error {
	renderer := render.NewRenderer(cfg.Output.IncludeFooter)

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}

	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", outMD)
		}
	}

	if styled {
		fmt.Println(render.StyledSummary(report))
		return nil
	}

	renderer.RenderSummary(os.Stdout, report)
	return nil
}
