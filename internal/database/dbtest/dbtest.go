// Package dbtest starts a disposable postgres for integration tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vladimiradmaev/translator-bot/internal/config"
	"github.com/vladimiradmaev/translator-bot/internal/database"
	"gorm.io/gorm"
)

// StartPostgres runs a postgres container for the test and returns a migrated connection.
// The test is skipped in -short mode or when no container runtime is available.
func StartPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	cfg := config.DBConfig{User: "bot", Password: "secret", Name: "translator_test"}

	cont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     cfg.User,
				"POSTGRES_PASSWORD": cfg.Password,
				"POSTGRES_DB":       cfg.Name,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cont.Terminate(ctx) })

	cfg.Host, err = cont.Host(ctx)
	require.NoError(t, err)
	port, err := cont.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	cfg.Port = port.Port()

	db, err := database.NewPostgresDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
