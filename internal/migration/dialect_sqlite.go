package migration

import (
	"fmt"
	"strings"

	"schemadiff/internal/core"
	"schemadiff/internal/diff"
)

func init() {
	RegisterGenerator(SQLite, func() Generator { return sqliteGenerator{} })
}

type sqliteGenerator struct{}

func (sqliteGenerator) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (sqliteGenerator) BeginTransaction() string { return "BEGIN TRANSACTION;" }
func (sqliteGenerator) Commit() string           { return "COMMIT;" }

func (g sqliteGenerator) CreateTable(t core.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", g.QuoteIdentifier(t.Name))
	lines := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		lines = append(lines, "    "+columnDefinitionSQLite(g, c))
	}
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);")
	return b.String()
}

func columnDefinitionSQLite(g sqliteGenerator, c core.Column) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", g.QuoteIdentifier(c.Name), renderDataType(c))
	if !c.IsNullable {
		b.WriteString(" NOT NULL")
	}
	if c.DefaultValue != "" {
		fmt.Fprintf(&b, " DEFAULT %s", c.DefaultValue)
	}
	return b.String()
}

// AlterTable only emits ADD COLUMN statements, the one column change
// SQLite supports directly. Any other column modification cannot be
// expressed as an in-place ALTER (SQLite lacks ALTER COLUMN and DROP
// COLUMN with type/constraint changes), so it is surfaced as a comment
// describing the manual rebuild-the-table-and-copy-the-data procedure
// instead of emitting DDL that would not run.
func (g sqliteGenerator) AlterTable(td *diff.TableDiff) []Statement {
	var stmts []Statement
	table := g.QuoteIdentifier(td.Name)

	for _, c := range td.Columns.Missing {
		stmts = append(stmts, Statement{
			SQL:  fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", table, columnDefinitionSQLite(g, c)),
			Risk: core.RiskInfo,
		})
	}

	for _, cc := range td.Columns.Modified {
		stmts = append(stmts, Statement{
			Unresolved: fmt.Sprintf(
				"%s.%s changed (%s) and requires a manual migration: SQLite has no ALTER COLUMN. "+
					"Create a replacement table with the new definition, copy the data across, drop the old table, and rename the replacement.",
				td.Name, cc.Name, joinFieldNames(cc.Changes)),
		})
	}

	return stmts
}

func joinFieldNames(changes []diff.FieldChange) string {
	names := make([]string, len(changes))
	for i, c := range changes {
		names[i] = c.Field
	}
	return strings.Join(names, ", ")
}
