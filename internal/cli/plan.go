package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func planCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <request...>",
		Short: "Interpret a request and print the plan without executing it",
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

			p, declined, err := eng.Interpret(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if declined != nil {
				return printJSON(declined)
			}
			return printJSON(p)
		},
	}
}
