package diff

import (
	"strconv"

	"schemadiff/internal/core"
)

func compareColumns(source, target []core.Column) ColumnPartition {
	var p ColumnPartition
	targetByName := indexByName(target)

	for _, sc := range source {
		ti, ok := targetByName[sc.Name]
		if !ok {
			p.Missing = append(p.Missing, sc)
			continue
		}
		tc := target[ti]
		if changes := columnChanges(sc, tc); len(changes) > 0 {
			p.Modified = append(p.Modified, &ColumnChange{Name: sc.Name, Src: sc, Tgt: tc, Changes: changes})
		}
	}

	sourceByName := indexByName(source)
	for _, tc := range target {
		if _, ok := sourceByName[tc.Name]; !ok {
			p.Extra = append(p.Extra, tc)
		}
	}

	return p
}

// columnChanges evaluates the fixed, ordered set of column predicates.
// The order is part of the contract: callers and renderers may rely on
// Changes appearing in this sequence.
func columnChanges(src, tgt core.Column) []FieldChange {
	var changes []FieldChange
	add := func(field, srcVal, tgtVal string) {
		changes = append(changes, FieldChange{Field: field, Src: srcVal, Tgt: tgtVal})
	}

	if src.DataType != tgt.DataType {
		add("DataType", src.DataType, tgt.DataType)
	}
	if src.IsNullable != tgt.IsNullable {
		add("IsNullable", strconv.FormatBool(src.IsNullable), strconv.FormatBool(tgt.IsNullable))
	}
	if src.DefaultValue != tgt.DefaultValue {
		add("DefaultValue", src.DefaultValue, tgt.DefaultValue)
	}
	if src.MaxLength != tgt.MaxLength {
		add("MaxLength", strconv.Itoa(src.MaxLength), strconv.Itoa(tgt.MaxLength))
	}
	if src.Precision != tgt.Precision {
		add("Precision", strconv.Itoa(src.Precision), strconv.Itoa(tgt.Precision))
	}
	if src.Scale != tgt.Scale {
		add("Scale", strconv.Itoa(src.Scale), strconv.Itoa(tgt.Scale))
	}
	if src.IsIdentity != tgt.IsIdentity {
		add("IsIdentity", strconv.FormatBool(src.IsIdentity), strconv.FormatBool(tgt.IsIdentity))
	}

	return changes
}
