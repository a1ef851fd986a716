package commands

import (
	"fmt"

	"chirp/internal/adapters/database"
	"chirp/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the schema and exits
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := config.OpenDB(cfg, logger)
		if err != nil {
			return err
		}
		defer closeDB(db, logger)

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("✅ Database migrations completed", zap.String("driver", cfg.DBDriver))
		return nil
	},
}
