package iocache

import (
	"database/sql"
	"fmt"
	"regexp"

	"github.com/huangsam/triage/schema"
)

// connStrHints describe the expected connection string per backend, shown
// when opening fails.
var connStrHints = map[schema.DatabaseBackend]string{
	schema.MySQLBackend:      "user:password@tcp(host:port)/dbname",
	schema.PostgreSQLBackend: "host=localhost port=5432 user=postgres dbname=mydb",
}

// openBackendDB opens and pings a database connection for one of the SQL
// backends. SQLite falls back to defaultPath when connStr is empty and is
// capped at one open connection to avoid "database is locked" errors.
// Returns the handle and the driver name. NoneBackend is the caller's
// responsibility.
func openBackendDB(backend schema.DatabaseBackend, connStr, defaultPath string) (*sql.DB, string, error) {
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		if connStr == "" {
			connStr = defaultPath
		}
	case schema.MySQLBackend:
		driverName = "mysql"
	case schema.PostgreSQLBackend:
		driverName = "pgx"
	default:
		return nil, "", fmt.Errorf("unsupported backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		if hint := connStrHints[backend]; hint != "" {
			return nil, "", fmt.Errorf("failed to open %s database: %w. Check connection format: %s", backend, err, hint)
		}
		return nil, "", fmt.Errorf("failed to open %s database at %q: %w. Ensure the directory is writable", backend, connStr, err)
	}
	if backend == schema.SQLiteBackend {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to connect to %s database: %w. Check that the server is running and connection parameters are valid", backend, err)
	}
	return db, driverName, nil
}

var tableNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateTableName ensures the table name is a safe SQL identifier,
// consisting only of alphanumerics and underscores and starting with a
// letter or underscore.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNameRe.MatchString(name) {
		return fmt.Errorf("invalid table name: %s (must match pattern %s)", name, tableNameRe.String())
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}
