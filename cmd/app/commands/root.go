package commands

import (
	"fmt"
	"os"

	"chirp/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chirp",
	Short: "chirp - posts, retweets, likes, comments and the newest-first feed",
	Long: `chirp serves a small social feed over HTTP.

Configuration comes from the environment (or a .env file):
  DB_DRIVER, DB_DSN, REDIS_ADDR, JWT_SECRET, IMAGE_STORAGE, ...`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// bootstrap loads the configuration and builds the logger every command shares
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := config.InitLogger(cfg.Env)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}
