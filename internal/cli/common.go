package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/decocereus/magic-agent/config"
	"github.com/decocereus/magic-agent/internal/engine"
	"github.com/decocereus/magic-agent/internal/store"
	"github.com/decocereus/magic-agent/internal/telemetry"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if quiet {
		cfg.General.Quiet = true
	}
	return cfg, nil
}

// newEngine builds an engine plus its optional history store. The caller
// owns both; close the engine when done.
func newEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, *store.Store, error) {
	var history *store.Store
	if cfg.Storage.Postgres.Enabled() {
		st, err := store.New(ctx, cfg.Storage.Postgres)
		if err != nil {
			// Run history is optional; a dead database should not block editing.
			telemetry.NewLogger("[CLI] ").Printf("run history unavailable: %v", err)
		} else {
			history = st
		}
	}

	opts := []engine.Option{}
	if history != nil {
		opts = append(opts, engine.WithHistory(history))
	}
	eng, err := engine.New(cfg, opts...)
	if err != nil {
		if history != nil {
			history.Close()
		}
		return nil, nil, err
	}
	return eng, history, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}

// resultError maps a run outcome to the process exit status: partial or
// rejected runs fail the command after the full report is printed.
func resultError(result *engine.RunResult) error {
	switch result.Outcome {
	case engine.OutcomePartial:
		return fmt.Errorf("plan applied with failures (%d failed, %d not attempted)",
			result.Batch.Failed, result.Batch.NotAttempted)
	case engine.OutcomeRejected:
		return fmt.Errorf("plan rejected: %s", result.ValidationError.Message)
	default:
		return nil
	}
}
