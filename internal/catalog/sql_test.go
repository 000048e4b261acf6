package catalog

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapspl/internal/testutil"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		driver   string
		expected Dialect
	}{
		{"sqlite", DialectSQLite},
		{"sqlite3", DialectSQLite},
		{"postgres", DialectPostgres},
		{"PostgreSQL", DialectPostgres},
		{"pgx", DialectPostgres},
		{"duckdb", DialectDuckDB},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := ParseDialect(tt.driver)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}

	_, err := ParseDialect("oracle")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestSQLSource_Load(t *testing.T) {
	tests := []struct {
		name      string
		dialect   Dialect
		table     string
		query     string
		args      []driver.Value
		setupMock func(mock sqlmock.Sqlmock, query string, args []driver.Value)
		expected  map[string]string
		expectErr bool
		errMsg    string
	}{
		{
			name:    "postgres information schema",
			dialect: DialectPostgres,
			table:   "events",
			query:   `SELECT column_name, data_type\s+FROM information_schema.columns`,
			args:    []driver.Value{"public", "events"},
			setupMock: func(mock sqlmock.Sqlmock, query string, args []driver.Value) {
				rows := sqlmock.NewRows([]string{"column_name", "data_type"}).
					AddRow("host", "text").
					AddRow("status", "integer").
					AddRow("ts", "timestamp with time zone")
				mock.ExpectQuery(query).WithArgs(args...).WillReturnRows(rows)
			},
			expected: map[string]string{"host": "string", "status": "number", "ts": "time"},
		},
		{
			name:    "duckdb qualified table",
			dialect: DialectDuckDB,
			table:   "logs.events",
			query:   `FROM information_schema.columns`,
			args:    []driver.Value{"logs", "events"},
			setupMock: func(mock sqlmock.Sqlmock, query string, args []driver.Value) {
				rows := sqlmock.NewRows([]string{"column_name", "data_type"}).
					AddRow("ok", "BOOLEAN").
					AddRow("bytes", "BIGINT")
				mock.ExpectQuery(query).WithArgs(args...).WillReturnRows(rows)
			},
			expected: map[string]string{"ok": "boolean", "bytes": "number"},
		},
		{
			name:    "sqlite pragma",
			dialect: DialectSQLite,
			table:   "events",
			query:   `SELECT name, type FROM pragma_table_info`,
			args:    []driver.Value{"events"},
			setupMock: func(mock sqlmock.Sqlmock, query string, args []driver.Value) {
				rows := sqlmock.NewRows([]string{"name", "type"}).
					AddRow("msg", "TEXT").
					AddRow("latency", "REAL")
				mock.ExpectQuery(query).WithArgs(args...).WillReturnRows(rows)
			},
			expected: map[string]string{"msg": "string", "latency": "number"},
		},
		{
			name:    "table not found",
			dialect: DialectPostgres,
			table:   "missing",
			query:   `FROM information_schema.columns`,
			args:    []driver.Value{"public", "missing"},
			setupMock: func(mock sqlmock.Sqlmock, query string, args []driver.Value) {
				mock.ExpectQuery(query).WithArgs(args...).
					WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type"}))
			},
			expectErr: true,
			errMsg:    "table missing not found",
		},
		{
			name:    "query error",
			dialect: DialectSQLite,
			table:   "events",
			query:   `pragma_table_info`,
			args:    []driver.Value{"events"},
			setupMock: func(mock sqlmock.Sqlmock, query string, args []driver.Value) {
				mock.ExpectQuery(query).WillReturnError(errors.New("no such function"))
			},
			expectErr: true,
			errMsg:    "failed to query column metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			tt.setupMock(mock, tt.query, tt.args)

			src := SQLSource{DB: db, Dialect: tt.dialect, Table: tt.table}
			fields, err := src.Load(context.Background())
			if tt.expectErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
				got := make(map[string]string)
				for _, f := range fields {
					got[f.Name] = f.Type
				}
				assert.Equal(t, tt.expected, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLSource_NotConnected(t *testing.T) {
	_, err := SQLSource{Dialect: DialectSQLite, Table: "x"}.Load(context.Background())
	assert.Error(t, err)

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	_, err = SQLSource{DB: db, Dialect: DialectSQLite}.Load(context.Background())
	assert.Error(t, err)
}

func TestSQLSource_SQLiteFile(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, DialectSQLite, t.TempDir()+"/catalog.db")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.ExecContext(ctx, `CREATE TABLE events (host TEXT, status INTEGER, ts DATETIME)`)
	require.NoError(t, err)

	fields, err := SQLSource{DB: db, Dialect: DialectSQLite, Table: "events", Logger: testutil.NewTestLogger(t)}.Load(ctx)
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, "host", fields[0].Name)
	assert.Equal(t, "number", fields[1].Type)
	assert.Equal(t, "time", fields[2].Type)
}

func TestSQLSource_DistinctValues(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, DialectSQLite, t.TempDir()+"/catalog.db")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.ExecContext(ctx, `CREATE TABLE "app events" (host TEXT, status INTEGER)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO "app events" VALUES
		('web-02', 200), ('web-01', 500), ('web-02', 200), (NULL, 404), ('web-03', 200)`)
	require.NoError(t, err)

	src := SQLSource{DB: db, Dialect: DialectSQLite, Table: "app events"}
	fields, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, fields[0].Values, "values are only read when MaxValues is set")

	src.MaxValues = 2
	fields, err = src.Load(ctx)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, []string{"web-01", "web-02"}, fields[0].Values)
	assert.Empty(t, fields[1].Values, "numeric columns carry no values")
}

func TestValueType(t *testing.T) {
	assert.Equal(t, "number", ValueType("DOUBLE PRECISION"))
	assert.Equal(t, "number", ValueType("numeric(10,2)"))
	assert.Equal(t, "string", ValueType("interval"))
	assert.Equal(t, "string", ValueType("VARCHAR"))
	assert.Equal(t, "time", ValueType("DATE"))
}
