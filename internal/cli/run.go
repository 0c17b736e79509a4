package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run <request...>",
		Short: "Interpret a request and apply the resulting plan",
		Args:  cobra.MinimumNArgs(1),
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

			result, err := eng.Run(cmd.Context(), strings.Join(args, " "), dryRun)
			if err != nil {
				return err
			}
			if err := printJSON(result); err != nil {
				return err
			}
			return resultError(result)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and report without touching Resolve")
	return cmd
}
