package main

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createTablePattern = regexp.MustCompile(`(?s)CREATE TABLE (\w+) \((.*?)\);`)

// tableColumns extracts the column names a CREATE TABLE statement defines,
// keyed by table name, from the embedded schema migration.
func tableColumns(t *testing.T) map[string]map[string]bool {
	t.Helper()

	ddl, err := embeddedMigrations.ReadFile("migrations/00001_init_schema.sql")
	require.NoError(t, err)

	tables := make(map[string]map[string]bool)
	for _, m := range createTablePattern.FindAllStringSubmatch(string(ddl), -1) {
		cols := make(map[string]bool)
		for _, line := range strings.Split(m[2], "\n") {
			fields := strings.Fields(strings.TrimSpace(line))
			if len(fields) == 0 || strings.EqualFold(fields[0], "UNIQUE") {
				continue
			}
			cols[fields[0]] = true
		}
		tables[m[1]] = cols
	}
	return tables
}

// The store SQL is hand-written, so a renamed or missing column only shows
// up at runtime as an undefined_column error. Pin every column the stores
// reference to the shipped schema.
func TestSchemaDefinesStoreColumns(t *testing.T) {
	t.Parallel()

	tables := tableColumns(t)

	wanted := map[string][]string{
		"users": {
			"id", "email", "full_name", "password_hash", "role",
			"created_at", "last_login_at",
		},
		"teams": {"id", "name", "description", "created_at"},
		"team_members": {
			"id", "team_id", "user_id", "role", "joined_at",
		},
		"projects": {
			"id", "name", "description", "team_id", "deadline", "created_at",
		},
		"tasks": {
			"id", "title", "description", "status", "priority", "due_date",
			"assigned_to_user_id", "project_id", "created_at", "completed_at",
		},
	}

	for table, columns := range wanted {
		cols, ok := tables[table]
		require.True(t, ok, "table %s not defined in schema migration", table)
		for _, col := range columns {
			assert.True(t, cols[col], "%s.%s missing from schema migration", table, col)
		}
	}
}
