package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/decocereus/magic-agent/internal/store"
)

func migrateCmd() *cobra.Command {
	var (
		dir       string
		direction string
		steps     int
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply run-history database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Storage.Postgres.Enabled() {
				return errors.New("storage.postgres is not configured")
			}
			return store.Migrate(dir, cfg.Storage.Postgres.DSN(), direction, steps)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "file://migrations", "migration source directory")
	cmd.Flags().StringVar(&direction, "direction", "up", "up or down")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of steps (0 = all)")
	return cmd
}
