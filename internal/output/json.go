// Package output holds thin renderers that turn a report.Report into an
// external artifact. None of them write to disk — that is the caller's
// concern, kept outside this package on purpose.
package output

import (
	"encoding/json"

	"schemadiff/internal/report"
)

// JSON renders r as indented JSON, using the same field names and
// ordering report.Report already carries.
func JSON(r *report.Report) (string, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
