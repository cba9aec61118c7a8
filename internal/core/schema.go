// Package core defines the engine-agnostic schema model shared by every
// introspection back-end, the comparator, the migration synthesizer and the
// report builder. Nothing in this package knows about a specific database
// engine; engine detail that doesn't fit the normalized fields below is
// stashed in Properties instead.
package core

// Schema is a normalized snapshot of one database's structure, as returned
// by a single ReadSchema call.
type Schema struct {
	Database string
	Tables   []Table
	Indexes  []Index
	Views    []View
	Metadata map[string]string
}

// Table describes one table, including its columns and constraints in the
// order the introspection back-end encountered them. Schema is the
// namespace the table lives in (e.g. "public" for PostgreSQL, the
// database name for MySQL, "dbo" for SQL Server, "" for SQLite, which has
// no schema namespace).
type Table struct {
	Schema      string
	Name        string
	Columns     []Column
	Constraints []Constraint
	Properties  map[string]string
}

// FullName returns the schema-qualified table name ("schema.name"), or
// just Name when Schema is empty. The comparator and report key tables by
// FullName so that same-named tables in different schemas never collapse
// into one.
func (t Table) FullName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// Column describes one column of a Table.
type Column struct {
	Name         string
	DataType     string
	IsNullable   bool
	DefaultValue string
	MaxLength    int
	Precision    int
	Scale        int
	IsIdentity   bool
	Properties   map[string]string
}

// ConstraintType enumerates the constraint kinds the model understands.
type ConstraintType string

// The six constraint kinds form a closed set; no other values appear.
const (
	ConstraintPrimaryKey ConstraintType = "PRIMARY KEY"
	ConstraintForeignKey ConstraintType = "FOREIGN KEY"
	ConstraintUnique     ConstraintType = "UNIQUE"
	ConstraintCheck      ConstraintType = "CHECK"
	ConstraintDefault    ConstraintType = "DEFAULT"
	ConstraintNotNull    ConstraintType = "NOT NULL"
)

// Constraint describes one table constraint.
type Constraint struct {
	Name                string
	Type                ConstraintType
	Columns             []string
	ReferencedTable     string
	ReferencedColumns    []string
	Properties          map[string]string
}

// Index describes one index. Indexes are keyed by Name alone in this model
// (not scoped to a table) since the comparator treats the index namespace
// as flat, matching how most engines expose index names uniquely per
// schema (SQLite, SQL Server) or per-table-but-globally-reported
// (MySQL, PostgreSQL).
type Index struct {
	Name          string
	TableName     string
	Columns       []string
	IsUnique      bool
	IsPrimaryKey  bool
	Properties    map[string]string
}

// View describes one view. View bodies are not diffed; Views exists so a
// Report can enumerate what a schema snapshot contains.
type View struct {
	Name       string
	Definition string
}

// Named is implemented by every schema element the comparator keys by name.
type Named interface {
	GetName() string
}

func (t Table) GetName() string      { return t.FullName() }
func (c Column) GetName() string     { return c.Name }
func (c Constraint) GetName() string { return c.Name }
func (i Index) GetName() string      { return i.Name }
func (v View) GetName() string       { return v.Name }

// FindTable returns the table with the given full name, or nil.
func (s *Schema) FindTable(fullName string) *Table {
	for i := range s.Tables {
		if s.Tables[i].FullName() == fullName {
			return &s.Tables[i]
		}
	}
	return nil
}

// FindColumn returns the column with the given name, or nil.
func (t *Table) FindColumn(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// FindConstraint returns the constraint with the given name, or nil.
func (t *Table) FindConstraint(name string) *Constraint {
	for i := range t.Constraints {
		if t.Constraints[i].Name == name {
			return &t.Constraints[i]
		}
	}
	return nil
}
