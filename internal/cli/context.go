package cli

import (
	"github.com/spf13/cobra"
)

func contextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "context",
		Short: "Print a snapshot of the current Resolve session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			eng, history, err := newEngine(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer eng.Close()
			if history != nil {
				defer history.Close()
			}

			snapshot, err := eng.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(snapshot)
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that a Resolve instance is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			eng, history, err := newEngine(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer eng.Close()
			if history != nil {
				defer history.Close()
			}

			info, err := eng.Check(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(info)
		},
	}
}
