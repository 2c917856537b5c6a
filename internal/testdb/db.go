// Package testdb spins up a throwaway postgres container for tests that
// exercise the postgres database path. Most tests use in-memory sqlite
// instead; this exists to cover the driver the deployments use.
package testdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/lumina-ai/backend/config"
	"github.com/lumina-ai/backend/internal/database"
)

// TestDB wraps a test database instance
type TestDB struct {
	DB        *gorm.DB
	Config    *config.Config
	Container testcontainers.Container
}

// Close cleans up the test database
func (td *TestDB) Close() error {
	if td.Container != nil {
		return td.Container.Terminate(context.Background())
	}
	return nil
}

// SetupTestDB creates a migrated postgres database in a container.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections"),
			wait.ForListeningPort("5432/tcp"),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", host)
	t.Setenv("DB_PORT", port.Port())
	t.Setenv("DB_USER", "test")
	t.Setenv("DB_PASSWORD", "test")
	t.Setenv("DB_NAME", "test")
	t.Setenv("DB_SSL_MODE", "disable")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	db, err := database.New(cfg)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	testDB := &TestDB{
		DB:        db,
		Config:    cfg,
		Container: container,
	}

	t.Cleanup(func() {
		if err := testDB.Close(); err != nil {
			t.Logf("Error cleaning up test database: %v", err)
		}
	})

	return testDB
}
