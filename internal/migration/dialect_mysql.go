package migration

import (
	"fmt"
	"strings"

	"schemadiff/internal/core"
	"schemadiff/internal/diff"
)

func init() {
	RegisterGenerator(MySQL, func() Generator { return mysqlGenerator{} })
}

type mysqlGenerator struct{}

func (mysqlGenerator) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (mysqlGenerator) BeginTransaction() string { return "START TRANSACTION;" }
func (mysqlGenerator) Commit() string           { return "COMMIT;" }

func (g mysqlGenerator) CreateTable(t core.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", g.QuoteIdentifier(t.Name))
	lines := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		lines = append(lines, "    "+columnDefinitionMySQL(g, c))
	}
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n) ENGINE=InnoDB;")
	return b.String()
}

func columnDefinitionMySQL(g mysqlGenerator, c core.Column) string {
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

// AlterTable emits one MODIFY COLUMN statement per changed column, since
// MySQL requires the full column definition be restated on every change
// rather than a narrower ALTER ... SET/DROP form.
func (g mysqlGenerator) AlterTable(td *diff.TableDiff) []Statement {
	var stmts []Statement
	table := g.QuoteIdentifier(td.Name)

	for _, c := range td.Columns.Missing {
		stmts = append(stmts, Statement{
			SQL:  fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", table, columnDefinitionMySQL(g, c)),
			Risk: core.RiskInfo,
		})
	}

	for _, cc := range td.Columns.Modified {
		risk := core.RiskWarning
		for _, fc := range cc.Changes {
			if fc.Field == "DataType" || fc.Field == "IsNullable" {
				risk = core.RiskBreaking
			}
		}
		stmts = append(stmts, Statement{
			SQL:  fmt.Sprintf("ALTER TABLE %s MODIFY COLUMN %s;", table, columnDefinitionMySQL(g, cc.Tgt)),
			Risk: risk,
		})
	}

	return stmts
}
