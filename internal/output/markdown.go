package output

import (
	"fmt"
	"strings"

	"schemadiff/internal/core"
	"schemadiff/internal/report"
)

// Markdown renders r as a Markdown document: a metadata/summary header
// followed by one section per partition that has content. Sections with
// nothing to report are omitted rather than printed empty.
func Markdown(r *report.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Schema diff: %s → %s\n\n", r.Metadata.SourceName, r.Metadata.TargetName)
	fmt.Fprintf(&b, "Generated at %s\n\n", r.Metadata.GeneratedAt)

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "- Tables compared: %d\n", r.Summary.TablesCompared)
	fmt.Fprintf(&b, "- Differences found: %d\n", r.Summary.DifferencesFound)
	fmt.Fprintf(&b, "- Tables missing: %d\n", r.Summary.TablesMissing)
	fmt.Fprintf(&b, "- Tables extra: %d\n", r.Summary.TablesExtra)
	fmt.Fprintf(&b, "- Tables modified: %d\n", r.Summary.TablesModified)
	fmt.Fprintf(&b, "- Indexes missing: %d\n", r.Summary.IndexesMissing)
	fmt.Fprintf(&b, "- Indexes extra: %d\n", r.Summary.IndexesExtra)
	fmt.Fprintf(&b, "- Indexes modified: %d\n\n", r.Summary.IndexesModified)

	if len(r.Operations) > 0 {
		b.WriteString("## Migration operations\n\n")
		for _, op := range r.Operations {
			switch op.Kind {
			case core.OperationUnresolved:
				fmt.Fprintf(&b, "- [%s] %s\n", op.Risk, op.UnresolvedReason)
			default:
				fmt.Fprintf(&b, "- [%s] %s\n", op.Risk, op.SQL)
			}
		}
		b.WriteString("\n")
	}

	if r.IsEmpty() {
		b.WriteString("No differences found.\n")
		return b.String()
	}

	if len(r.Diff.Tables.Missing) > 0 {
		b.WriteString("## Missing tables\n\n")
		for _, t := range r.Diff.Tables.Missing {
			fmt.Fprintf(&b, "- %s\n", t.Name)
		}
		b.WriteString("\n")
	}

	if len(r.Diff.Tables.Extra) > 0 {
		b.WriteString("## Extra tables\n\n")
		for _, t := range r.Diff.Tables.Extra {
			fmt.Fprintf(&b, "- %s\n", t.Name)
		}
		b.WriteString("\n")
	}

	if len(r.Diff.Tables.Modified) > 0 {
		b.WriteString("## Modified tables\n\n")
		for _, td := range r.Diff.Tables.Modified {
			fmt.Fprintf(&b, "### %s\n\n", td.Name)
			for _, c := range td.Columns.Modified {
				for _, fc := range c.Changes {
					fmt.Fprintf(&b, "- %s.%s: %s\n", td.Name, c.Name, fc.String())
				}
			}
			for _, c := range td.Columns.Missing {
				fmt.Fprintf(&b, "- missing column %s\n", c.Name)
			}
			for _, c := range td.Columns.Extra {
				fmt.Fprintf(&b, "- extra column %s\n", c.Name)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
