package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func execCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "exec <plan.json>",
		Short: "Validate and apply a plan document from a file (or - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			if args[0] == "-" {
				raw, err = io.ReadAll(os.Stdin)
			} else {
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read plan: %w", err)
			}

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

			result, err := eng.Execute(cmd.Context(), raw, dryRun)
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
