package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/realitypatch/realitypatch/internal/api"
	"github.com/realitypatch/realitypatch/internal/orchestrate"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP verification API",
	Long: `Serve exposes the verification entry point over HTTP for the web
front-end:

  POST /api/v1/check   {"text": "...", "media_path": "...", "styled": false}
  GET  /healthz

Example:
  realitypatch serve --addr :8080 --llm openai`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")

	serveCmd.Flags().DurationVar(&agentTimeout, "timeout", 30*time.Second, "per-agent timeout")
	serveCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM provider (openai, ollama, cohere; empty = mock mode)")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
	serveCmd.Flags().BoolVar(&validateLinks, "validate-links", false, "check evidence URL accessibility")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	orch, err := orchestrate.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)
	return api.NewServer(orch).Run(cfg.Server.Addr)
}
