// Package report builds the structured payload external renderers
// (JSON, Markdown, console) consume. Nothing in this package formats
// output text; it only shapes data with stable field names and ordering
// that matches the comparator's own ordering.
package report

import (
	"schemadiff/internal/core"
	"schemadiff/internal/diff"
)

// Metadata carries the run context external renderers display in a
// header.
type Metadata struct {
	SourceEngine string `json:"sourceEngine"`
	TargetEngine string `json:"targetEngine"`
	SourceName   string `json:"sourceName"` // redacted display name
	TargetName   string `json:"targetName"` // redacted display name
	GeneratedAt  string `json:"generatedAt"`
}

// Summary is the headline counts renderers show before the detail
// sections.
type Summary struct {
	TablesCompared   int `json:"tablesCompared"`
	DifferencesFound int `json:"differencesFound"`
	TablesMissing    int `json:"tablesMissing"`
	TablesExtra      int `json:"tablesExtra"`
	TablesModified   int `json:"tablesModified"`
	IndexesMissing   int `json:"indexesMissing"`
	IndexesExtra     int `json:"indexesExtra"`
	IndexesModified  int `json:"indexesModified"`
}

// Report is the complete payload handed to a renderer.
type Report struct {
	Metadata   Metadata         `json:"metadata"`
	Summary    Summary          `json:"summary"`
	Diff       *diff.Diff       `json:"diff"`
	Operations []core.Operation `json:"operations,omitempty"`
}

// Build assembles a Report from a Diff and the metadata describing how it
// was produced. sourceTableCount and targetTableCount feed the
// tables-compared counter; operations is the migration's synthesized
// operation list, surfaced verbatim so a renderer can show risk alongside
// the diff that produced it. Field ordering inside Diff is untouched —
// Build never reorders what the comparator produced.
func Build(d *diff.Diff, meta Metadata, sourceTableCount, targetTableCount int, operations []core.Operation) *Report {
	return &Report{
		Metadata: meta,
		Summary: Summary{
			TablesCompared:   sourceTableCount + targetTableCount,
			DifferencesFound: len(d.Tables.Missing) + len(d.Tables.Extra) + len(d.Tables.Modified),
			TablesMissing:    len(d.Tables.Missing),
			TablesExtra:      len(d.Tables.Extra),
			TablesModified:   len(d.Tables.Modified),
			IndexesMissing:   len(d.Indexes.Missing),
			IndexesExtra:     len(d.Indexes.Extra),
			IndexesModified:  len(d.Indexes.Modified),
		},
		Diff:       d,
		Operations: operations,
	}
}

// IsEmpty reports whether the underlying diff found no differences.
func (r *Report) IsEmpty() bool {
	return r.Diff.IsEmpty()
}
