package database

import (
	"testing"
)

func TestDialectDrivers(t *testing.T) {
	tests := []struct {
		name             string
		dialect          Dialect
		driver           string
		migrationsSubdir string
		lastInsertID     bool
	}{
		{
			name:             "sqlite",
			dialect:          NewSQLiteDialect(),
			driver:           "sqlite3",
			migrationsSubdir: "sqlite",
			lastInsertID:     true,
		},
		{
			name:             "postgres",
			dialect:          NewPostgresDialect(),
			driver:           "postgres",
			migrationsSubdir: "postgres",
			lastInsertID:     false,
		},
		{
			name:             "mysql",
			dialect:          NewMySQLDialect(),
			driver:           "mysql",
			migrationsSubdir: "mysql",
			lastInsertID:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %v, want %v", got, tt.driver)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.migrationsSubdir {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.migrationsSubdir)
			}
			if got := tt.dialect.SupportsLastInsertId(); got != tt.lastInsertID {
				t.Errorf("SupportsLastInsertId() = %v, want %v", got, tt.lastInsertID)
			}
		})
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT COUNT(*) FROM words WHERE child_id = ?",
			expected: "SELECT COUNT(*) FROM words WHERE child_id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT COUNT(*) FROM words WHERE child_id = ?",
			expected: "SELECT COUNT(*) FROM words WHERE child_id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "SELECT COUNT(*) FROM words WHERE child_id = ? AND created_at >= ?",
			expected: "SELECT COUNT(*) FROM words WHERE child_id = $1 AND created_at >= $2",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "INSERT INTO books (child_id, title, author) VALUES (?, ?, ?)",
			expected: "INSERT INTO books (child_id, title, author) VALUES (?, ?, ?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}
