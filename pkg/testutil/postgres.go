package testutil

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	pgmigrate "github.com/sharada0417/RanRevHoldings-sub000/pkg/postgres"
)

const (
	postgresImage = "postgres:16-alpine"
	holdingsDB    = "holdings_test"
	holdingsRole  = "holdings"
)

// PostgresContainer is a throwaway holdings database. Its pool sessions run
// in the Colombo time zone, like the service's.
type PostgresContainer struct {
	Container *tcpostgres.PostgresContainer
	DSN       string
	Pool      *pgxpool.Pool
}

// NewPostgresContainer starts PostgreSQL and registers its teardown with t.
// Calling Cleanup explicitly is still allowed.
func NewPostgresContainer(ctx context.Context, t *testing.T) *PostgresContainer {
	t.Helper()

	c, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase(holdingsDB),
		tcpostgres.WithUsername(holdingsRole),
		tcpostgres.WithPassword(holdingsRole),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "start postgres container")

	pc := &PostgresContainer{Container: c}
	t.Cleanup(func() { pc.Cleanup(t) })

	pc.DSN, err = c.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "postgres connection string")

	cfg, err := pgxpool.ParseConfig(pc.DSN)
	require.NoError(t, err, "parse postgres dsn")
	cfg.ConnConfig.RuntimeParams["timezone"] = Colombo.String()

	pc.Pool, err = pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err, "open pgx pool")
	require.NoError(t, pgmigrate.HealthCheck(ctx, pc.Pool))
	return pc
}

// Cleanup closes the pool and terminates the container. It is idempotent.
func (pc *PostgresContainer) Cleanup(t *testing.T) {
	t.Helper()

	if pc.Pool != nil {
		pc.Pool.Close()
		pc.Pool = nil
	}
	if pc.Container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pc.Container.Terminate(ctx); err != nil {
		t.Logf("terminate postgres container: %v", err)
	}
	pc.Container = nil
}

func migrationSource(t *testing.T, dir string) string {
	t.Helper()
	abs, err := filepath.Abs(dir)
	require.NoError(t, err, "resolve migrations dir %s", dir)
	return "file://" + filepath.ToSlash(abs)
}

// RunMigrations applies dir with the migrator the service runs at startup.
func (pc *PostgresContainer) RunMigrations(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, pgmigrate.RunMigrations(pc.DSN, migrationSource(t, dir)))
}

// ResetSchema migrates dir all the way down and back up.
func (pc *PostgresContainer) ResetSchema(t *testing.T, dir string) {
	t.Helper()
	src := migrationSource(t, dir)
	require.NoError(t, pgmigrate.RunMigrationsDown(pc.DSN, src))
	require.NoError(t, pgmigrate.RunMigrations(pc.DSN, src))
}

// Truncate empties tables, cascading to dependents.
func (pc *PostgresContainer) Truncate(t *testing.T, tables ...string) {
	t.Helper()
	if len(tables) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := pc.Pool.Exec(ctx, "TRUNCATE "+strings.Join(tables, ", ")+" CASCADE")
	require.NoError(t, err, "truncate %v", tables)
}
