package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver
	_ "github.com/marcboeker/go-duckdb" // duckdb driver
	_ "modernc.org/sqlite"             // sqlite driver

	"github.com/leapstack-labs/leapspl/pkg/suggest"
)

// Dialect selects the column metadata query.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
	DialectDuckDB   Dialect = "duckdb"
)

// ParseDialect maps a driver name or alias to a dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	case "duckdb":
		return DialectDuckDB, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// driverName is the database/sql driver registered for d.
func (d Dialect) driverName() string {
	switch d {
	case DialectPostgres:
		return "pgx"
	case DialectDuckDB:
		return "duckdb"
	default:
		return "sqlite"
	}
}

func (d Dialect) defaultSchema() string {
	switch d {
	case DialectPostgres:
		return "public"
	case DialectDuckDB:
		return "main"
	default:
		return ""
	}
}

// Open connects to a database for catalog loading.
func Open(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	if d == DialectDuckDB && dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", d, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", d, err)
	}
	return db, nil
}

// SQLSource reads the columns of one table as fields. With MaxValues set,
// string columns also carry up to that many distinct values.
type SQLSource struct {
	DB        *sql.DB
	Dialect   Dialect
	Table     string // optionally schema-qualified
	MaxValues int
	Logger    *slog.Logger
}

// Name implements Source.
func (s SQLSource) Name() string {
	return string(s.Dialect) + ":" + s.Table
}

// splitTable splits a table reference into schema and name, using the
// dialect's default schema when none is given.
func (s SQLSource) splitTable() (schema, name string) {
	if parts := strings.Split(s.Table, "."); len(parts) == 2 {
		return parts[0], parts[1]
	}
	return s.Dialect.defaultSchema(), s.Table
}

func (s SQLSource) query() (string, []any) {
	schema, table := s.splitTable()
	switch s.Dialect {
	case DialectPostgres:
		return `
			SELECT column_name, data_type
			FROM information_schema.columns
			WHERE table_schema = $1 AND table_name = $2
			ORDER BY ordinal_position`, []any{schema, table}
	case DialectDuckDB:
		return `
			SELECT column_name, data_type
			FROM information_schema.columns
			WHERE table_schema = ? AND table_name = ?
			ORDER BY ordinal_position`, []any{schema, table}
	default:
		return `SELECT name, type FROM pragma_table_info(?) ORDER BY cid`, []any{table}
	}
}

// Load implements Source.
func (s SQLSource) Load(ctx context.Context) ([]suggest.Field, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	if s.Table == "" {
		return nil, fmt.Errorf("no catalog table configured")
	}

	query, args := s.query()
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var fields []suggest.Field
	for rows.Next() {
		var name, dataType string
		if err := rows.Scan(&name, &dataType); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		fields = append(fields, suggest.Field{Name: name, Type: ValueType(dataType)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("table %s not found", s.Table)
	}

	if s.MaxValues > 0 {
		for i := range fields {
			if fields[i].Type != "string" {
				continue
			}
			values, err := s.distinctValues(ctx, fields[i].Name)
			if err != nil {
				return nil, err
			}
			fields[i].Values = values
		}
	}

	if s.Logger != nil {
		s.Logger.Debug("loaded catalog columns", slog.String("table", s.Table), slog.Int("fields", len(fields)))
	}
	return fields, nil
}

// distinctValues returns up to MaxValues non-null values of column, sorted.
func (s SQLSource) distinctValues(ctx context.Context, column string) ([]string, error) {
	col := quoteIdent(column)
	query := fmt.Sprintf("SELECT DISTINCT CAST(%s AS VARCHAR) FROM %s WHERE %s IS NOT NULL ORDER BY 1 LIMIT %d",
		col, s.quotedTable(), col, s.MaxValues)

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query values of %s: %w", column, err)
	}
	defer func() { _ = rows.Close() }()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan values of %s: %w", column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating values of %s: %w", column, err)
	}
	return values, nil
}

func (s SQLSource) quotedTable() string {
	if parts := strings.Split(s.Table, "."); len(parts) == 2 {
		return quoteIdent(parts[0]) + "." + quoteIdent(parts[1])
	}
	return quoteIdent(s.Table)
}

// quoteIdent double-quotes a SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// ValueType reduces a database column type to a field value type.
func ValueType(dataType string) string {
	base := strings.ToLower(strings.TrimSpace(dataType))
	if i := strings.IndexAny(base, "( "); i >= 0 {
		base = base[:i]
	}
	switch base {
	case "integer", "int", "int2", "int4", "int8", "smallint", "bigint", "tinyint", "hugeint",
		"ubigint", "uinteger", "usmallint", "utinyint", "serial", "bigserial",
		"real", "double", "float", "float4", "float8", "numeric", "decimal":
		return "number"
	case "bool", "boolean":
		return "boolean"
	case "date", "time", "timestamp", "timestamptz", "datetime":
		return "time"
	default:
		return "string"
	}
}
