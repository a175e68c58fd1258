package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/udisondev/quincy/internal/db/migrations"
)

// PostgresDSNEnv points tests at an already running PostgreSQL instead of a container.
const PostgresDSNEnv = "QUINCY_TEST_POSTGRES_DSN"

// SetupPostgres возвращает DSN базы с применёнными миграциями каталога.
// Uses QUINCY_TEST_POSTGRES_DSN when set, otherwise starts a PostgreSQL
// testcontainer. Skipped in -short mode and when no container provider
// is available.
func SetupPostgres(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres test in short mode")
	}

	ctx := context.Background()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)

		container, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("quincy"),
			postgres.WithUsername("test"),
			postgres.WithPassword("test"),
			postgres.BasicWaitStrategies(),
		)
		if err != nil {
			t.Fatalf("starting postgres container: %v", err)
		}
		t.Cleanup(func() {
			if err := testcontainers.TerminateContainer(container); err != nil {
				t.Logf("terminating postgres container: %v", err)
			}
		})

		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			t.Fatalf("getting connection string: %v", err)
		}
	}

	if err := migrate(ctx, dsn); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return dsn
}

// migrate применяет embedded миграции через goose.
func migrate(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("opening sql.DB: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}
	return nil
}
