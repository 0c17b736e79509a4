// Package engine orchestrates one editing session: it owns the bridge, asks
// the interpreter for plans, validates them against a fresh snapshot and
// hands validated plans to the dispatcher. The CLI and the HTTP server are
// both thin layers over this package.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/decocereus/magic-agent/config"
	"github.com/decocereus/magic-agent/internal/dispatch"
	"github.com/decocereus/magic-agent/internal/interpreter"
	"github.com/decocereus/magic-agent/internal/plan"
	"github.com/decocereus/magic-agent/internal/resolve"
	"github.com/decocereus/magic-agent/internal/store"
	"github.com/decocereus/magic-agent/internal/telemetry"
)

// Outcome classifies what happened to one request.
type Outcome string

const (
	// OutcomeCompleted means every operation succeeded.
	OutcomeCompleted Outcome = "completed"
	// OutcomePartial means dispatch ran but at least one operation failed
	// or was not attempted.
	OutcomePartial Outcome = "partial"
	// OutcomeDeclined means the interpreter refused the request.
	OutcomeDeclined Outcome = "declined"
	// OutcomeRejected means validation stopped the plan before dispatch.
	OutcomeRejected Outcome = "rejected"
)

// RunResult is the full report for one request, whichever path it took.
// Exactly one of Declined, ValidationError, or Batch is set.
type RunResult struct {
	RunID           string                `json:"run_id"`
	Outcome         Outcome               `json:"outcome"`
	Plan            *plan.Plan            `json:"plan,omitempty"`
	Declined        *plan.Declined        `json:"declined,omitempty"`
	ValidationError *plan.ValidationError `json:"validation_error,omitempty"`
	Batch           *dispatch.BatchResult `json:"batch,omitempty"`
}

// session is the slice of the bridge the engine drives. *resolve.Bridge
// satisfies it; tests substitute in-memory fakes.
type session interface {
	dispatch.Sender
	GetContext(ctx context.Context) (*resolve.Context, error)
	CheckConnection(ctx context.Context) (*resolve.ConnectionInfo, error)
	Close() error
}

// planner turns a request plus a context snapshot into a plan or a decline.
type planner interface {
	Interpret(ctx context.Context, request string, snapshot *resolve.Context) (*plan.Plan, *plan.Declined, error)
}

// Engine wires the components for one session. Not safe for concurrent
// runs; the bridge serialises calls and plans assume exclusive state.
type Engine struct {
	cfg     *config.Config
	bridge  session
	llm     planner
	history *store.Store
	metrics *telemetry.Metrics
	logger  *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithHistory attaches a run-history store. Recording is best effort: a
// store error never fails the run it records.
func WithHistory(s *store.Store) Option {
	return func(e *Engine) { e.history = s }
}

// WithMetrics attaches Prometheus counters.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithInterpreter overrides the LLM client, for callers that build their
// own (tests, the doctor command).
func WithInterpreter(c *interpreter.Client) Option {
	return func(e *Engine) { e.llm = c }
}

// New builds an engine from configuration. The bridge process is spawned
// lazily on first use.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	logger := telemetry.NewLogger("[ENGINE] ")
	if cfg.General.Quiet {
		logger = telemetry.NewSilentLogger("[ENGINE] ")
	}

	python, err := cfg.Resolve.Python()
	if err != nil {
		return nil, err
	}
	bridgeLogger := telemetry.NewLogger("[BRIDGE] ")
	if cfg.General.Quiet {
		bridgeLogger = telemetry.NewSilentLogger("[BRIDGE] ")
	}
	bridge := resolve.NewBridge(resolve.Options{
		PythonPath:     python,
		ScriptPath:     cfg.Resolve.ScriptPath,
		StartupTimeout: cfg.Resolve.StartupTimeout,
		CallTimeout:    cfg.Resolve.CallTimeout,
		Logger:         bridgeLogger,
	})

	e := &Engine{cfg: cfg, bridge: bridge, logger: logger}
	for _, opt := range opts {
		opt(e)
	}

	if e.llm == nil {
		llmLogger := telemetry.NewLogger("[INTERPRETER] ")
		if cfg.General.Quiet {
			llmLogger = telemetry.NewSilentLogger("[INTERPRETER] ")
		}
		client, err := interpreter.NewClient(interpreter.Options{
			Provider:  cfg.LLM.Provider,
			Model:     cfg.LLM.Model,
			APIKey:    cfg.LLM.APIKey,
			BaseURL:   cfg.LLM.BaseURL,
			MaxTokens: cfg.LLM.MaxTokens,
			Timeout:   cfg.LLM.Timeout,
			Logger:    llmLogger,
		})
		if err != nil {
			return nil, err
		}
		e.llm = client
	}
	return e, nil
}

// Check verifies the bridge can reach a running Resolve instance.
func (e *Engine) Check(ctx context.Context) (*resolve.ConnectionInfo, error) {
	return e.bridge.CheckConnection(ctx)
}

// Snapshot fetches a fresh context snapshot.
func (e *Engine) Snapshot(ctx context.Context) (*resolve.Context, error) {
	return e.bridge.GetContext(ctx)
}

// Interpret produces a plan (or decline) for a request without executing
// anything. It snapshots first so the model sees current state.
func (e *Engine) Interpret(ctx context.Context, request string) (*plan.Plan, *plan.Declined, error) {
	snapshot, err := e.Snapshot(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot before interpretation: %w", err)
	}
	p, declined, err := e.llm.Interpret(ctx, request, snapshot)
	if err != nil {
		return nil, nil, err
	}
	if e.metrics != nil {
		if declined != nil {
			e.metrics.PlansDeclined.Inc()
		} else {
			e.metrics.PlansInterpreted.Inc()
		}
	}
	return p, declined, nil
}

// Run is the full path: interpret the request, revalidate against a fresh
// snapshot and dispatch. Interpretation and validation use separate
// snapshots on purpose; state may change while the model is thinking.
func (e *Engine) Run(ctx context.Context, request string, dryRun bool) (*RunResult, error) {
	p, declined, err := e.Interpret(ctx, request)
	if err != nil {
		return nil, err
	}
	if declined != nil {
		result := &RunResult{RunID: store.NewRunID(), Outcome: OutcomeDeclined, Declined: declined}
		e.record(ctx, request, result)
		return result, nil
	}
	result, err := e.execute(ctx, p, dryRun)
	if err != nil {
		return nil, err
	}
	e.record(ctx, request, result)
	return result, nil
}

// Execute validates and dispatches an externally supplied plan document.
// Declined documents are reported as such, never dispatched.
func (e *Engine) Execute(ctx context.Context, raw []byte, dryRun bool) (*RunResult, error) {
	p, declined, err := plan.Parse(raw)
	if err != nil {
		return nil, err
	}
	if declined != nil {
		result := &RunResult{RunID: store.NewRunID(), Outcome: OutcomeDeclined, Declined: declined}
		e.record(ctx, "", result)
		return result, nil
	}
	result, err := e.execute(ctx, p, dryRun)
	if err != nil {
		return nil, err
	}
	e.record(ctx, "", result)
	return result, nil
}

func (e *Engine) execute(ctx context.Context, p *plan.Plan, dryRun bool) (*RunResult, error) {
	result := &RunResult{RunID: store.NewRunID(), Plan: p}

	snapshot, err := e.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot before validation: %w", err)
	}
	validated, err := plan.Validate(p, snapshot)
	if err != nil {
		verr, ok := err.(*plan.ValidationError)
		if !ok {
			return nil, err
		}
		e.logger.Printf("plan rejected: %v", verr)
		if e.metrics != nil {
			e.metrics.PlansRejected.Inc()
		}
		result.Outcome = OutcomeRejected
		result.ValidationError = verr
		return result, nil
	}

	runnerOpts := []dispatch.Option{dispatch.WithDryRun(dryRun)}
	if !e.cfg.General.Quiet {
		runnerOpts = append(runnerOpts, dispatch.WithLogger(telemetry.NewLogger("[DISPATCH] ")))
	}
	runner := dispatch.NewRunner(e.bridge, runnerOpts...)

	started := time.Now()
	batch, err := runner.Apply(ctx, validated)
	if batch != nil {
		result.Batch = batch
		if batch.OK() {
			result.Outcome = OutcomeCompleted
		} else {
			result.Outcome = OutcomePartial
		}
		e.observe(batch, time.Since(started))
	}
	if err != nil {
		return result, err
	}
	return result, nil
}

func (e *Engine) observe(batch *dispatch.BatchResult, elapsed time.Duration) {
	if e.metrics == nil {
		return
	}
	e.metrics.BatchDuration.Observe(elapsed.Seconds())
	for _, r := range batch.Results {
		e.metrics.OperationsTotal.WithLabelValues(string(r.Status)).Inc()
	}
	if batch.Halted {
		e.metrics.BridgeFailures.Inc()
	}
}

// record persists the run when a history store is attached.
func (e *Engine) record(ctx context.Context, request string, result *RunResult) {
	if e.history == nil {
		return
	}
	rec := store.RunRecord{
		ID:      result.RunID,
		Request: request,
	}
	switch result.Outcome {
	case OutcomeDeclined:
		rec.Status = store.RunStatusDeclined
		rec.DeclineReason = result.Declined.Error
		rec.Suggestion = result.Declined.Suggestion
	case OutcomeRejected:
		rec.Status = store.RunStatusRejected
		rec.ValidationError = result.ValidationError.Error()
	case OutcomeCompleted:
		rec.Status = store.RunStatusCompleted
	default:
		rec.Status = store.RunStatusPartial
	}
	if result.Plan != nil {
		if encoded, err := result.Plan.Encode(); err == nil {
			rec.PlanJSON = encoded
		}
	}
	if result.Batch != nil {
		rec.Succeeded = result.Batch.Succeeded
		rec.Failed = result.Batch.Failed
		rec.NotAttempted = result.Batch.NotAttempted
		rec.DryRun = result.Batch.DryRun
		rec.Halted = result.Batch.Halted
		for _, op := range result.Batch.Results {
			opRec := store.OperationRecord{
				Index:  op.Index,
				Op:     op.Op,
				Status: string(op.Status),
				Result: op.Result,
			}
			if op.Error != nil {
				opRec.ErrorCode = string(op.Error.Code)
				opRec.ErrorMessage = op.Error.Message
			}
			rec.Operations = append(rec.Operations, opRec)
		}
	}
	if err := e.history.SaveRun(ctx, rec); err != nil {
		e.logger.Printf("record run %s: %v", rec.ID, err)
	}
}

// Close shuts the bridge down.
func (e *Engine) Close() error {
	return e.bridge.Close()
}

// EncodeResult renders a RunResult as indented JSON for CLI output.
func EncodeResult(result *RunResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
