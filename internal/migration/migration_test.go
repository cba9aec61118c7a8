package migration

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"schemadiff/internal/core"
	"schemadiff/internal/diff"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testClock = fixedClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

func TestSynthesizeCreateTablePostgres(t *testing.T) {
	d := &diff.Diff{
		Tables: diff.TablePartition{
			Missing: []core.Table{
				{Name: "users", Columns: []core.Column{
					{Name: "id", DataType: "integer", IsNullable: false},
					{Name: "email", DataType: "text", IsNullable: false},
				}},
			},
		},
	}

	result, err := Synthesize(d, Postgres, "schema_migration_20260101_000000", testClock)
	require.NoError(t, err)
	require.Contains(t, result.Text, "BEGIN;")
	require.Contains(t, result.Text, `CREATE TABLE "users"`)
	require.Contains(t, result.Text, "COMMIT;")
	require.Contains(t, result.Text, "-- Generated: 2026-01-01T00:00:00Z")
	require.Len(t, result.Operations, 1)
	require.Equal(t, core.OperationSQL, result.Operations[0].Kind)
	require.Equal(t, core.RiskInfo, result.Operations[0].Risk)
}

func TestSynthesizeSQLiteFallsBackOnColumnModification(t *testing.T) {
	d := &diff.Diff{
		Tables: diff.TablePartition{
			Modified: []*diff.TableDiff{
				{
					Name: "users",
					Columns: diff.ColumnPartition{
						Modified: []*diff.ColumnChange{
							{Name: "email", Changes: []diff.FieldChange{{Field: "DataType", Src: "text", Tgt: "varchar"}}},
						},
					},
				},
			},
		},
	}

	result, err := Synthesize(d, SQLite, "schema_migration_20260101_000000", testClock)
	require.NoError(t, err)
	require.True(t, strings.Contains(result.Text, "has no ALTER COLUMN"))
	require.Len(t, result.Operations, 1)
	require.Equal(t, core.OperationUnresolved, result.Operations[0].Kind)
	require.Contains(t, result.Operations[0].UnresolvedReason, "has no ALTER COLUMN")
}

func TestSynthesizeUnknownEngine(t *testing.T) {
	_, err := Synthesize(&diff.Diff{}, Engine("unknown"), "m", testClock)
	require.Error(t, err)
}
