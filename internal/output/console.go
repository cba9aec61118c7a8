package output

import (
	"fmt"
	"strings"

	"schemadiff/internal/report"
)

// Console renders r as a plain-text summary suitable for terminal output.
func Console(r *report.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s -> %s\n", r.Metadata.SourceName, r.Metadata.TargetName)
	fmt.Fprintf(&b, "tables compared: %d  differences found: %d\n", r.Summary.TablesCompared, r.Summary.DifferencesFound)
	fmt.Fprintf(&b, "tables: +%d -%d ~%d  indexes: +%d -%d ~%d\n",
		r.Summary.TablesExtra, r.Summary.TablesMissing, r.Summary.TablesModified,
		r.Summary.IndexesExtra, r.Summary.IndexesMissing, r.Summary.IndexesModified)
	return b.String()
}
