// Package diff implements the comparator: a pure function from two
// core.Schema values to a Diff describing what is missing, extra, or
// modified between them. Nothing in this package performs I/O.
package diff

import "schemadiff/internal/core"

// Diff is the complete result of comparing a source schema against a
// target schema.
type Diff struct {
	Tables  TablePartition
	Indexes IndexPartition
}

// TablePartition holds the table-level comparison result.
type TablePartition struct {
	Missing  []core.Table // present in source, absent from target, in source order
	Extra    []core.Table // present in target, absent from source, in target order
	Modified []*TableDiff // present in both, with field-level differences
}

// IndexPartition holds the index-level comparison result. Indexes are
// matched by Name alone, independent of which table they belong to.
type IndexPartition struct {
	Missing  []core.Index
	Extra    []core.Index
	Modified []*IndexChange
}

// TableDiff describes the differences found within one table that exists
// in both schemas.
type TableDiff struct {
	Name        string
	Columns     ColumnPartition
	Constraints ConstraintPartition
}

// ColumnPartition holds the column-level comparison result for one table.
type ColumnPartition struct {
	Missing  []core.Column
	Extra    []core.Column
	Modified []*ColumnChange
}

// ConstraintPartition holds the constraint-level comparison result for
// one table.
type ConstraintPartition struct {
	Missing  []core.Constraint
	Extra    []core.Constraint
	Modified []*ConstraintChange
}

// FieldChange is one field-level difference, rendered per the fixed
// message contract "<Field> changed from <src-value> to <tgt-value>".
type FieldChange struct {
	Field string
	Src   string
	Tgt   string
}

func (c FieldChange) String() string {
	return c.Field + " changed from " + c.Src + " to " + c.Tgt
}

// ColumnChange pairs a source and target column that share a name but
// differ in at least one field.
type ColumnChange struct {
	Name    string
	Src     core.Column
	Tgt     core.Column
	Changes []FieldChange
}

// ConstraintChange pairs a source and target constraint that share a name
// but differ in at least one field.
type ConstraintChange struct {
	Name    string
	Src     core.Constraint
	Tgt     core.Constraint
	Changes []FieldChange
}

// IndexChange pairs a source and target index that share a name but
// differ in at least one field.
type IndexChange struct {
	Name    string
	Src     core.Index
	Tgt     core.Index
	Changes []FieldChange
}

// Compare produces the Diff between source and target. It is deterministic:
// calling it twice with the same inputs yields byte-identical output, and
// ordering follows source-iteration order for Missing/Modified and
// target-iteration order for Extra.
func Compare(source, target core.Schema) *Diff {
	d := &Diff{
		Tables:  compareTables(source.Tables, target.Tables),
		Indexes: compareIndexes(source.Indexes, target.Indexes),
	}
	return d
}

// IsEmpty reports whether the diff contains no differences at all.
func (d *Diff) IsEmpty() bool {
	return len(d.Tables.Missing) == 0 && len(d.Tables.Extra) == 0 && len(d.Tables.Modified) == 0 &&
		len(d.Indexes.Missing) == 0 && len(d.Indexes.Extra) == 0 && len(d.Indexes.Modified) == 0
}
