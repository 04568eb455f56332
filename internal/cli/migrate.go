package cli

import (
	"fmt"

	"riskwatch/internal/repository/sqlstore"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate up|down",
	Short:     "Apply or roll back the SQLite schema",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		target := -1
		if args[0] == "down" {
			target = 0
		}
		from, to, err := sqlstore.MigrateFile(cfg.SQLitePath, target)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: schema version %d -> %d\n", cfg.SQLitePath, from, to)
		return nil
	},
}
