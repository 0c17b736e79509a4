package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/decocereus/magic-agent/internal/interpreter"
)

func doctorCmd() *cobra.Command {
	var listModels bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration, python and Resolve connectivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			report := func(name string, err error) {
				if err != nil {
					fmt.Fprintf(os.Stdout, "FAIL %-20s %v\n", name, err)
				} else {
					fmt.Fprintf(os.Stdout, "ok   %s\n", name)
				}
			}

			python, err := cfg.Resolve.Python()
			report("python interpreter", err)
			if err == nil {
				fmt.Fprintf(os.Stdout, "     using %s\n", python)
			}

			report("llm configuration", cfg.LLM.Validate())

			if cfg.Storage.Postgres.Enabled() {
				fmt.Fprintln(os.Stdout, "ok   run history configured")
			} else {
				fmt.Fprintln(os.Stdout, "     run history not configured (optional)")
			}

			eng, history, err := newEngine(cmd.Context(), cfg)
			if err != nil {
				report("engine", err)
				return nil
			}
			defer eng.Close()
			if history != nil {
				defer history.Close()
			}

			info, err := eng.Check(cmd.Context())
			report("resolve connection", err)
			if err == nil {
				fmt.Fprintf(os.Stdout, "     %s %s\n", info.Product, info.Version)
			}

			if listModels {
				client, err := interpreter.NewClient(interpreter.Options{
					Provider: cfg.LLM.Provider,
					Model:    cfg.LLM.Model,
					APIKey:   cfg.LLM.APIKey,
					BaseURL:  cfg.LLM.BaseURL,
				})
				if err == nil {
					models, err := client.ListModels(cmd.Context())
					report("model listing", err)
					for _, m := range models {
						fmt.Fprintf(os.Stdout, "     %s\n", m)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&listModels, "models", false, "also list models advertised by the provider")
	return cmd
}
