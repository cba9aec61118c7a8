package migration

import (
	"fmt"
	"strings"

	"schemadiff/internal/core"
	"schemadiff/internal/diff"
)

func init() {
	RegisterGenerator(SQLServer, func() Generator { return sqlServerGenerator{} })
}

type sqlServerGenerator struct{}

func (sqlServerGenerator) QuoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (sqlServerGenerator) BeginTransaction() string { return "BEGIN TRANSACTION;" }
func (sqlServerGenerator) Commit() string           { return "COMMIT TRANSACTION;" }

func (g sqlServerGenerator) CreateTable(t core.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", g.QuoteIdentifier(t.Name))
	lines := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		lines = append(lines, "    "+columnDefinitionSQLServer(g, c))
	}
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);")
	return b.String()
}

func columnDefinitionSQLServer(g sqlServerGenerator, c core.Column) string {
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

func (g sqlServerGenerator) AlterTable(td *diff.TableDiff) []Statement {
	var stmts []Statement
	table := g.QuoteIdentifier(td.Name)

	for _, c := range td.Columns.Missing {
		stmts = append(stmts, Statement{
			SQL:  fmt.Sprintf("ALTER TABLE %s ADD %s;", table, columnDefinitionSQLServer(g, c)),
			Risk: core.RiskInfo,
		})
	}

	for _, cc := range td.Columns.Modified {
		col := g.QuoteIdentifier(cc.Name)
		alterEmitted := false
		for _, fc := range cc.Changes {
			switch fc.Field {
			case "DataType", "MaxLength", "Precision", "Scale", "IsNullable":
				if !alterEmitted {
					stmts = append(stmts, Statement{
						SQL:  fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s;", table, columnDefinitionSQLServer(g, cc.Tgt)),
						Risk: core.RiskBreaking,
					})
					alterEmitted = true
				}
			case "DefaultValue":
				stmts = append(stmts, Statement{
					Unresolved: fmt.Sprintf("%s.%s: DefaultValue changed; SQL Server requires dropping and recreating the DEFAULT constraint by name, review manually.", td.Name, col),
				})
			}
		}
	}

	return stmts
}
