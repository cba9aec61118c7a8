// Package migration synthesizes dialect-correct DDL text from a Diff and
// a target engine tag. It never executes anything; it produces a
// migration's text body for an external caller to review, write out, or
// hand to its own execution path.
package migration

import (
	"fmt"
	"strings"
	"time"

	"schemadiff/internal/core"
	"schemadiff/internal/diff"
)

// Engine identifies one of the four supported target dialects.
type Engine string

const (
	Postgres  Engine = "postgres"
	MySQL     Engine = "mysql"
	SQLServer Engine = "sqlserver"
	SQLite    Engine = "sqlite"
)

// plan accumulates the operation list alongside the rendered text, so a
// caller gets both the migration's text body and the same information
// structured for a report: each SQL statement tagged with its risk, and
// each manual-migration fallback recorded as an unresolved note rather
// than silently folded into a comment.
type plan struct {
	operations []core.Operation
}

func (p *plan) addSQL(sql string, risk core.OperationRisk) {
	sql = strings.TrimSpace(sql)
	if sql == "" {
		return
	}
	kind := core.OperationSQL
	requiresLock := false
	switch risk {
	case core.RiskBreaking, core.RiskCritical:
		kind = core.OperationBreaking
		requiresLock = true
	}
	p.operations = append(p.operations, core.Operation{
		Kind:         kind,
		SQL:          sql,
		Risk:         risk,
		RequiresLock: requiresLock,
	})
}

func (p *plan) addUnresolved(reason string) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	p.operations = append(p.operations, core.Operation{Kind: core.OperationUnresolved, UnresolvedReason: reason, Risk: core.RiskWarning})
}

// Result is the output of Synthesize: the full migration text plus the
// structured operation list backing it.
type Result struct {
	Text       string
	Operations []core.Operation
}

// Synthesize renders the full migration text for the given diff and
// engine: a header comment naming the migration, its generation
// timestamp and the target engine, a transaction wrapper, CREATE TABLE
// blocks for every missing table, ALTER blocks for every modified table,
// and a trailing advisory comment. Dropped and extra elements are
// deliberately not synthesized, and a dialect's limited ALTER support
// falls back to an unresolved manual-migration note instead of incorrect
// DDL. clock supplies the timestamp; pass core.SystemClock{} in
// production and a fixed Clock in tests.
func Synthesize(d *diff.Diff, engine Engine, migrationName string, clock core.Clock) (*Result, error) {
	gen, err := getGenerator(engine)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = core.SystemClock{}
	}

	p := &plan{}
	var b strings.Builder

	generatedAt := clock.Now().UTC().Format(time.RFC3339)
	fmt.Fprintf(&b, "-- Migration: %s\n", migrationName)
	fmt.Fprintf(&b, "-- Generated: %s\n", generatedAt)
	fmt.Fprintf(&b, "-- Engine: %s\n", engine)
	fmt.Fprintf(&b, "-- Generated by schemadiff. Review before applying.\n\n")

	b.WriteString(gen.BeginTransaction())
	b.WriteString("\n\n")

	for _, t := range d.Tables.Missing {
		stmt := gen.CreateTable(t)
		p.addSQL(stmt, core.RiskInfo)
		b.WriteString(stmt)
		b.WriteString("\n\n")
	}

	for _, td := range d.Tables.Modified {
		stmts := gen.AlterTable(td)
		for _, s := range stmts {
			if s.Unresolved != "" {
				p.addUnresolved(s.Unresolved)
				b.WriteString("-- " + s.Unresolved)
				b.WriteString("\n")
				continue
			}
			p.addSQL(s.SQL, s.Risk)
			b.WriteString(s.SQL)
			b.WriteString("\n")
		}
		if len(stmts) == 0 {
			note := fmt.Sprintf("no ALTER statements could be synthesized for table %q on %s; review manually.", td.Name, engine)
			p.addUnresolved(note)
			b.WriteString("-- " + note)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(d.Tables.Missing) == 0 && len(d.Tables.Modified) == 0 {
		b.WriteString("-- No table-level changes to synthesize.\n\n")
	}

	b.WriteString(gen.Commit())
	b.WriteString("\n")
	b.WriteString("-- End of migration. Dropped tables/columns, index DDL and constraint DDL are not synthesized; review the full diff before applying.\n")

	return &Result{Text: b.String(), Operations: p.operations}, nil
}
