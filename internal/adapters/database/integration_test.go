//go:build integration

package database_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"chirp/internal/adapters/database"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestRepositoriesPostgres runs the repository suite against a real
// PostgreSQL. Each subtest gets its own schema.
func TestRepositoriesPostgres(t *testing.T) {
	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("chirp"),
		postgres.WithUsername("chirp"),
		postgres.WithPassword("chirp"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	admin, err := gorm.Open(gormpostgres.Open(connStr), database.GormConfig())
	require.NoError(t, err)

	schemas := 0
	runRepositorySuite(t, func(t *testing.T) *gorm.DB {
		schemas++
		schema := fmt.Sprintf("suite_%d", schemas)
		require.NoError(t, admin.Exec("CREATE SCHEMA "+schema).Error)

		db, err := gorm.Open(gormpostgres.Open(connStr+"&search_path="+schema), database.GormConfig())
		require.NoError(t, err)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = sqlDB.Close()
			_ = admin.Exec("DROP SCHEMA " + schema + " CASCADE").Error
		})

		require.NoError(t, database.Migrate(db))
		return db
	})
}

// TestRepositoriesMySQL runs the suite on MySQL with the server's default,
// accent-insensitive collation. Each subtest gets its own database.
func TestRepositoriesMySQL(t *testing.T) {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mysql:8.4",
			ExposedPorts: []string{"3306/tcp"},
			Env:          map[string]string{"MYSQL_ROOT_PASSWORD": "chirp"},
			WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").
				WithStartupTimeout(120 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	dsn := func(name string) string {
		return fmt.Sprintf("root:chirp@tcp(%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC", endpoint, name)
	}

	admin, err := gorm.Open(gormmysql.Open(dsn("")), database.GormConfig())
	require.NoError(t, err)

	schemas := 0
	runRepositorySuite(t, func(t *testing.T) *gorm.DB {
		schemas++
		name := fmt.Sprintf("suite_%d", schemas)
		require.NoError(t, admin.Exec("CREATE DATABASE "+name+" CHARACTER SET utf8mb4 COLLATE utf8mb4_0900_ai_ci").Error)

		db, err := gorm.Open(gormmysql.Open(dsn(name)), database.GormConfig())
		require.NoError(t, err)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = sqlDB.Close()
			_ = admin.Exec("DROP DATABASE " + name).Error
		})

		require.NoError(t, database.Migrate(db))
		return db
	})
}
