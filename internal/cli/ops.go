package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/decocereus/magic-agent/internal/catalog"
)

func opsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "Inspect the operation catalog",
	}
	cmd.AddCommand(opsListCmd(), opsSchemaCmd())
	return cmd
}

func opsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every operation the agent can dispatch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range catalog.Names() {
				spec, _ := catalog.Lookup(name)
				fmt.Fprintf(os.Stdout, "%-35s %s\n", name, spec.Category)
			}
			fmt.Fprintf(os.Stdout, "\n%d operations\n", catalog.Len())
			return nil
		},
	}
}

func opsSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <operation>",
		Short: "Show the parameter schema for one operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, ok := catalog.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown operation %q", args[0])
			}
			fmt.Fprintf(os.Stdout, "%s (%s)\n", spec.Name, spec.Category)
			if len(spec.Params) == 0 {
				fmt.Fprintln(os.Stdout, "  no parameters")
			}
			for _, p := range spec.Params {
				line := fmt.Sprintf("  %-20s %s", p.Name, p.Kind)
				if p.Required {
					line += "  (required)"
				}
				if len(p.Enum) > 0 {
					line += fmt.Sprintf("  one of %v", p.Enum)
				}
				if p.Min != nil && p.Max != nil {
					line += fmt.Sprintf("  range [%v, %v]", *p.Min, *p.Max)
				}
				fmt.Fprintln(os.Stdout, line)
			}
			if spec.Result != "" {
				fmt.Fprintf(os.Stdout, "  result: %s\n", spec.Result)
			}
			return nil
		},
	}
}
