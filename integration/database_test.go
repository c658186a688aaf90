//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestTriageWithMySQL tests the triage CLI with a MySQL backend.
func TestTriageWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "triage",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/triage?parseTime=true", host, port.Port())

	setBackendEnv(t, "mysql", connStr)
	runBackendScenario(t)
}

// TestTriageWithPostgres tests the triage CLI with a PostgreSQL backend.
func TestTriageWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	setBackendEnv(t, "postgresql", connStr)
	runBackendScenario(t)
}

// setBackendEnv points both the index cache and the analysis store at the
// containerized backend for the duration of the test.
func setBackendEnv(t *testing.T, backend, connStr string) {
	t.Helper()
	envs := map[string]string{
		"TRIAGE_CACHE_BACKEND":       backend,
		"TRIAGE_CACHE_DB_CONNECT":    connStr,
		"TRIAGE_ANALYSIS_BACKEND":    backend,
		"TRIAGE_ANALYSIS_DB_CONNECT": connStr,
	}
	for key, value := range envs {
		_ = os.Setenv(key, value)
		t.Cleanup(func() { _ = os.Unsetenv(key) })
	}
}

// runBackendScenario exercises the commands that touch the database: schema
// migration, a scored pass that warms the cache and records a run, and the
// status and clear maintenance commands.
func runBackendScenario(t *testing.T) {
	t.Helper()

	// Run triage analysis migrate
	err := runTriageCommand(t, "analysis", "migrate")
	require.NoError(t, err)

	// Run triage cache clear
	err = runTriageCommand(t, "cache", "clear")
	require.NoError(t, err)

	// Run triage analysis clear
	err = runTriageCommand(t, "analysis", "clear")
	require.NoError(t, err)

	// Run triage hotspots (on current dir)
	err = runTriageCommand(t, "hotspots", "--limit", "5")
	require.NoError(t, err)

	// Run triage query against the warmed cache
	err = runTriageCommand(t, "query", "config backend", "--limit", "5")
	require.NoError(t, err)

	// Run triage cache status
	err = runTriageCommand(t, "cache", "status")
	require.NoError(t, err)

	// Run triage analysis status
	err = runTriageCommand(t, "analysis", "status")
	require.NoError(t, err)
}
