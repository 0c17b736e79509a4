// Package cli implements the magic-agent command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:     "magic-agent",
	Version: "dev",
	Short:   "Natural language editing agent for DaVinci Resolve",
	Long: `magic-agent turns natural language editing requests into validated
operation plans and applies them to a running DaVinci Resolve instance
through its scripting API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// SetVersion overrides the version reported by --version.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to magic-agent.yaml")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress component logs")

	rootCmd.AddCommand(
		runCmd(),
		planCmd(),
		execCmd(),
		contextCmd(),
		checkCmd(),
		doctorCmd(),
		opsCmd(),
		serveCmd(),
		migrateCmd(),
	)
}
