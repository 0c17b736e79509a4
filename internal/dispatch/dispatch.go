// Package dispatch walks a validated plan and applies its operations over
// the bridge, in order, collecting per-operation outcomes. It never
// reorders, retries or parallelises operations.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/decocereus/magic-agent/internal/plan"
	"github.com/decocereus/magic-agent/internal/resolve"
)

// Sender is the slice of the bridge the dispatcher needs. *resolve.Bridge
// satisfies it; tests substitute a scripted fake.
type Sender interface {
	Send(ctx context.Context, op string, params json.RawMessage) (*resolve.Response, error)
}

// Status classifies the outcome of one dispatched operation.
type Status string

const (
	// StatusOK means the bridge reported success.
	StatusOK Status = "ok"
	// StatusFailed means the operation was sent and the bridge reported an
	// error, or the bridge itself failed during the call.
	StatusFailed Status = "failed"
	// StatusNotAttempted means an earlier bridge failure halted the batch
	// before this operation was sent.
	StatusNotAttempted Status = "not_attempted"
	// StatusSkipped means a dry run listed the operation without sending
	// it. Skipped operations count in no tally; a dry-run batch reports
	// zero attempted.
	StatusSkipped Status = "skipped"
)

// OperationResult records the outcome of one operation, in plan order.
type OperationResult struct {
	Index  int              `json:"index"`
	Op     string           `json:"op"`
	Status Status           `json:"status"`
	Result json.RawMessage  `json:"result,omitempty"`
	Error  *resolve.OpError `json:"error,omitempty"`
}

// BatchResult is the full report for one plan application. Results holds one
// entry per plan operation, positionally aligned with the plan.
type BatchResult struct {
	Results      []OperationResult `json:"results"`
	Succeeded    int               `json:"succeeded"`
	Failed       int               `json:"failed"`
	NotAttempted int               `json:"not_attempted"`
	DryRun       bool              `json:"dry_run,omitempty"`
	// Halted is set when a bridge failure stopped the batch early.
	Halted bool `json:"halted,omitempty"`
}

// OK reports whether every operation succeeded.
func (b *BatchResult) OK() bool {
	return b.Failed == 0 && b.NotAttempted == 0
}

// Runner applies validated plans. Operation failures do not stop the batch;
// only a bridge failure does, because after one the process state is unknown
// and further sends would hang or lie.
type Runner struct {
	bridge Sender
	logger *log.Logger
	dryRun bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner's logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithDryRun makes Apply skip bridge traffic and report every operation as
// successful with a synthetic result.
func WithDryRun(dry bool) Option {
	return func(r *Runner) { r.dryRun = dry }
}

// NewRunner builds a Runner over a bridge.
func NewRunner(bridge Sender, opts ...Option) *Runner {
	r := &Runner{
		bridge: bridge,
		logger: log.New(io.Discard, "[DISPATCH] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply dispatches the plan's operations in order. The returned error is
// non-nil only for dispatcher-level problems (context cancelled, parameters
// that fail to marshal); operation and bridge failures are reported inside
// the BatchResult.
func (r *Runner) Apply(ctx context.Context, validated *plan.ValidatedPlan) (*BatchResult, error) {
	ops := validated.Operations()
	batch := &BatchResult{
		Results: make([]OperationResult, 0, len(ops)),
		DryRun:  r.dryRun,
	}

	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			r.markRemaining(batch, ops, i, "context cancelled")
			return batch, fmt.Errorf("apply plan: %w", err)
		}

		if r.dryRun {
			batch.Results = append(batch.Results, OperationResult{
				Index:  i,
				Op:     op.Op,
				Status: StatusSkipped,
				Result: json.RawMessage(`{"dry_run": true}`),
			})
			continue
		}

		result, bridgeDown := r.dispatchOne(ctx, i, op)
		batch.Results = append(batch.Results, result)
		switch result.Status {
		case StatusOK:
			batch.Succeeded++
		case StatusFailed:
			batch.Failed++
		}

		// A failed operation is recorded and the batch continues. A failed
		// bridge halts it: the remaining operations are marked, not sent.
		if bridgeDown {
			r.logger.Printf("bridge down after operation %d (%s), halting batch", i, op.Op)
			r.markRemaining(batch, ops, i+1, "not attempted: bridge failed earlier in the batch")
			batch.Halted = true
			break
		}
	}
	return batch, nil
}

// dispatchOne sends a single operation. The second return value is true when
// the error came from the bridge itself rather than the operation: Send only
// returns an error for bridge-level failures, operation errors arrive inside
// the response.
func (r *Runner) dispatchOne(ctx context.Context, index int, op plan.Operation) (OperationResult, bool) {
	result := OperationResult{Index: index, Op: op.Op}

	var params json.RawMessage
	if len(op.Params) > 0 {
		encoded, err := json.Marshal(op.Params)
		if err != nil {
			result.Status = StatusFailed
			result.Error = resolve.NewOpError(resolve.CodeSchemaError, "marshal params for %s: %v", op.Op, err)
			return result, false
		}
		params = encoded
	}

	resp, err := r.bridge.Send(ctx, op.Op, params)
	if err != nil {
		result.Status = StatusFailed
		var opErr *resolve.OpError
		if errors.As(err, &opErr) {
			result.Error = opErr
		} else {
			result.Error = resolve.NewOpError(resolve.CodePythonError, "%v", err)
		}
		return result, true
	}

	if opErr := resp.OpErr(); opErr != nil {
		r.logger.Printf("operation %d (%s) failed: %v", index, op.Op, opErr)
		result.Status = StatusFailed
		result.Error = opErr
		return result, false
	}

	result.Status = StatusOK
	result.Result = resp.Result
	return result, false
}

// markRemaining appends not-attempted entries for ops[from:].
func (r *Runner) markRemaining(batch *BatchResult, ops []plan.Operation, from int, reason string) {
	for i := from; i < len(ops); i++ {
		batch.Results = append(batch.Results, OperationResult{
			Index:  i,
			Op:     ops[i].Op,
			Status: StatusNotAttempted,
			Error:  resolve.NewOpError(resolve.CodePythonError, "%s", reason),
		})
		batch.NotAttempted++
	}
}
