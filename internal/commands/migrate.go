package commands

import (
	"fmt"

	"github.com/Tedbot2000/todo-genie/internal/config"
	"github.com/Tedbot2000/todo-genie/internal/infrastructure/client"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back Postgres migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		if cfg.Storage.Driver != config.StorageDriverPostgres {
			return fmt.Errorf("migrations are only used with the postgres driver, sqlite schema is created on start")
		}

		down := args[0] == "down"
		if err := client.RunMigrations(cfg.Postgres.MigrationsPath, cfg.Postgres.URL(), down); err != nil {
			return err
		}

		log.Info("migrations done", zap.String("direction", args[0]))
		return nil
	},
}
