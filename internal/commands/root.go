package commands

import (
	"fmt"
	"os"

	"github.com/Tedbot2000/todo-genie/internal/config"
	"github.com/Tedbot2000/todo-genie/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "todo-genie",
	Short:         "Personal task list manager",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
}

// Execute запускает CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap читает конфиг и собирает логгер для любой команды
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.NewEnvReader(envFile).Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config: %w", err)
	}

	log, err := logger.New(cfg.Env, cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	return cfg, log, nil
}
