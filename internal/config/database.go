package config

import (
	"fmt"

	"chirp/internal/adapters/database"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenDB connects to the database selected by cfg.DBDriver
func OpenDB(cfg *Config, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverMySQL:
		dialector = mysql.Open(cfg.DBDSN)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DBDSN)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, database.GormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}
	if cfg.DBDriver == DriverSQLite {
		// sqlite allows one writer; a single connection keeps writes serialized
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	logger.Info("✅ Database connected", zap.String("driver", cfg.DBDriver))
	return db, nil
}
