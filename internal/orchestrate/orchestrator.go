// Package orchestrate runs the selected agents against a claim and merges
// their outcomes into one aggregated report. Adapter invocations are
// isolated: a panic, error, or timeout in one never disturbs the others,
// and every requested agent appears in the report exactly once.
package orchestrate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/realitypatch/realitypatch/internal/agent"
	"github.com/realitypatch/realitypatch/internal/classify"
	"github.com/realitypatch/realitypatch/internal/llm"
	"github.com/realitypatch/realitypatch/internal/model"
	"github.com/realitypatch/realitypatch/internal/search"
	"github.com/realitypatch/realitypatch/internal/validate"
)

// Orchestrator dispatches a claim to its applicable agents concurrently
// and aggregates the outcomes. It holds no state between calls and is safe
// for concurrent use.
type Orchestrator struct {
	classifier *classify.Classifier
	agents     map[model.AgentName]agent.Agent
	aggregator *Aggregator
	timeout    time.Duration
}

// New creates an orchestrator over an explicit agent set. Intended for
// tests and embedding; NewFromConfig wires the production agents.
func New(classifier *classify.Classifier, agents []agent.Agent, cfg model.AgentsConfig) *Orchestrator {
	byName := make(map[model.AgentName]agent.Agent, len(agents))
	for _, a := range agents {
		byName[a.Name()] = a
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Orchestrator{
		classifier: classifier,
		agents:     byName,
		aggregator: NewAggregator(cfg.Weights),
		timeout:    timeout,
	}
}

// NewFromConfig builds the full production orchestrator: LLM provider,
// search client, optional evidence validator, and all four agents.
func NewFromConfig(cfg *model.Config) (*Orchestrator, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	searchClient := search.NewSerperClient(cfg.Search, cfg.HTTP)

	var validator *validate.Validator
	if cfg.Agents.ValidateEvidence {
		validator = validate.NewValidator(cfg.HTTP, cfg.Workers.ValidationWorkers)
	}

	agents := []agent.Agent{
		agent.NewClarityAgent(provider),
		agent.NewProofAgent(searchClient, validator),
		agent.NewContextNetAgent(provider, searchClient),
		agent.NewMediaScanAgent(provider),
	}

	return New(classify.New(cfg.Agents), agents, cfg.Agents), nil
}

// Run analyzes one claim: classify, fan out, wait for every agent, then
// aggregate. It returns an error only for precondition violations; agent
// failures surface inside the report.
func (o *Orchestrator) Run(ctx context.Context, claim model.Claim) (*model.AggregatedReport, error) {
	if ctx == nil {
		return nil, fmt.Errorf("nil context")
	}

	selected := o.classifier.Classify(claim)

	outcomes := make([]model.AgentOutcome, len(selected))
	var wg sync.WaitGroup

	for i, name := range selected {
		ag, ok := o.agents[name]
		if !ok {
			return nil, fmt.Errorf("no adapter registered for agent %q", name)
		}

		wg.Add(1)
		go func(idx int, ag agent.Agent) {
			defer wg.Done()
			outcomes[idx] = o.invoke(ctx, ag, claim)
		}(i, ag)
	}

	// All selected agents resolve before aggregation; no partial returns
	wg.Wait()

	byName := make(map[model.AgentName]model.AgentOutcome, len(outcomes))
	for _, outcome := range outcomes {
		byName[outcome.Agent] = outcome
	}

	return o.aggregator.Aggregate(claim, byName), nil
}

// invoke runs one adapter under the per-agent deadline, converting panics
// and deadline expiry into failed outcomes.
func (o *Orchestrator) invoke(ctx context.Context, ag agent.Agent, claim model.Claim) (outcome model.AgentOutcome) {
	start := time.Now()
	agentCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			outcome = model.AgentOutcome{
				Agent:  ag.Name(),
				Status: model.StatusFailed,
				Reason: fmt.Sprintf("panic: %v", r),
			}
		}
		if outcome.Agent == "" {
			outcome.Agent = ag.Name()
		}
		// Normalize deadline expiry to the documented timeout reason
		if outcome.Status == model.StatusFailed && agentCtx.Err() == context.DeadlineExceeded {
			outcome.Reason = model.ReasonTimeout
		}
		outcome.Elapsed = time.Since(start)
	}()

	outcome = ag.Analyze(agentCtx, claim)
	return outcome
}
