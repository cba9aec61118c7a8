package migration

import (
	"fmt"
	"strings"

	"schemadiff/internal/core"
	"schemadiff/internal/diff"
)

func init() {
	RegisterGenerator(Postgres, func() Generator { return postgresGenerator{} })
}

type postgresGenerator struct{}

func (postgresGenerator) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (postgresGenerator) BeginTransaction() string { return "BEGIN;" }
func (postgresGenerator) Commit() string           { return "COMMIT;" }

func (g postgresGenerator) CreateTable(t core.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", g.QuoteIdentifier(t.Name))
	lines := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		lines = append(lines, "    "+columnDefinitionPostgres(g, c))
	}
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);")
	return b.String()
}

func columnDefinitionPostgres(g postgresGenerator, c core.Column) string {
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

func (g postgresGenerator) AlterTable(td *diff.TableDiff) []Statement {
	var stmts []Statement
	table := g.QuoteIdentifier(td.Name)

	for _, c := range td.Columns.Missing {
		stmts = append(stmts, Statement{
			SQL:  fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", table, columnDefinitionPostgres(g, c)),
			Risk: core.RiskInfo,
		})
	}

	for _, cc := range td.Columns.Modified {
		col := g.QuoteIdentifier(cc.Name)
		for _, fc := range cc.Changes {
			switch fc.Field {
			case "DataType":
				stmts = append(stmts, Statement{
					SQL:  fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s;", table, col, renderDataType(cc.Tgt)),
					Risk: core.RiskBreaking,
				})
			case "IsNullable":
				if cc.Tgt.IsNullable {
					stmts = append(stmts, Statement{
						SQL:  fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP NOT NULL;", table, col),
						Risk: core.RiskInfo,
					})
				} else {
					stmts = append(stmts, Statement{
						SQL:  fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET NOT NULL;", table, col),
						Risk: core.RiskBreaking,
					})
				}
			case "DefaultValue":
				if cc.Tgt.DefaultValue == "" {
					stmts = append(stmts, Statement{
						SQL:  fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT;", table, col),
						Risk: core.RiskWarning,
					})
				} else {
					stmts = append(stmts, Statement{
						SQL:  fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s;", table, col, cc.Tgt.DefaultValue),
						Risk: core.RiskWarning,
					})
				}
			}
		}
	}

	return stmts
}
