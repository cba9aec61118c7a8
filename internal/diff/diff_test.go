package diff

import (
	"testing"

	"github.com/stretchr/testify/require"

	"schemadiff/internal/core"
)

func TestCompareTablesPreservesIterationOrder(t *testing.T) {
	source := []core.Table{{Name: "z"}, {Name: "a"}, {Name: "m"}}
	target := []core.Table{{Name: "b"}, {Name: "a"}}

	p := compareTables(source, target)

	require.Equal(t, []core.Table{{Name: "z"}, {Name: "m"}}, p.Missing, "missing must follow source order")
	require.Equal(t, []core.Table{{Name: "b"}}, p.Extra, "extra must follow target order")
}

func TestColumnChangesFixedOrderAndMessage(t *testing.T) {
	src := core.Column{Name: "age", DataType: "int", IsNullable: true, MaxLength: 10}
	tgt := core.Column{Name: "age", DataType: "bigint", IsNullable: false, MaxLength: 20}

	changes := columnChanges(src, tgt)
	require.Len(t, changes, 3)
	require.Equal(t, "DataType", changes[0].Field)
	require.Equal(t, "IsNullable", changes[1].Field)
	require.Equal(t, "MaxLength", changes[2].Field)
	require.Equal(t, "DataType changed from int to bigint", changes[0].String())
}

func TestCompareIndexesByNameAcrossTables(t *testing.T) {
	source := []core.Index{{Name: "idx_email", TableName: "users", Columns: []string{"email"}}}
	target := []core.Index{{Name: "idx_email", TableName: "accounts", Columns: []string{"email"}}}

	p := compareIndexes(source, target)
	require.Empty(t, p.Missing)
	require.Empty(t, p.Extra)
	require.Len(t, p.Modified, 1)
	require.Equal(t, "TableName", p.Modified[0].Changes[0].Field)
}

func TestConstraintReferencedColumnsOnlyComparedWhenBothNonNil(t *testing.T) {
	src := core.Constraint{Name: "fk", Type: core.ConstraintForeignKey, ReferencedColumns: nil}
	tgt := core.Constraint{Name: "fk", Type: core.ConstraintForeignKey, ReferencedColumns: []string{"id"}}

	changes := constraintChanges(src, tgt)
	require.Empty(t, changes, "one-sided nil must not be reported as a difference")

	src.ReferencedColumns = []string{"other"}
	changes = constraintChanges(src, tgt)
	require.Len(t, changes, 1)
	require.Equal(t, "ReferencedColumns", changes[0].Field)
}

func TestDiffIsEmpty(t *testing.T) {
	d := Compare(core.Schema{}, core.Schema{})
	require.True(t, d.IsEmpty())
}
