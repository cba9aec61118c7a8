package diff

import (
	"strings"

	"schemadiff/internal/core"
)

func compareConstraints(source, target []core.Constraint) ConstraintPartition {
	var p ConstraintPartition
	targetByName := indexByName(target)

	for _, sc := range source {
		ti, ok := targetByName[sc.Name]
		if !ok {
			p.Missing = append(p.Missing, sc)
			continue
		}
		tc := target[ti]
		if changes := constraintChanges(sc, tc); len(changes) > 0 {
			p.Modified = append(p.Modified, &ConstraintChange{Name: sc.Name, Src: sc, Tgt: tc, Changes: changes})
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

// constraintChanges evaluates the fixed, ordered set of constraint
// predicates. ReferencedColumns is only compared when both sides carry a
// non-nil slice, since a non-foreign-key constraint legitimately has none
// on either side and that is not itself a difference.
func constraintChanges(src, tgt core.Constraint) []FieldChange {
	var changes []FieldChange
	add := func(field, srcVal, tgtVal string) {
		changes = append(changes, FieldChange{Field: field, Src: srcVal, Tgt: tgtVal})
	}

	if src.Type != tgt.Type {
		add("Type", string(src.Type), string(tgt.Type))
	}
	if joinCols := strings.Join(src.Columns, ","); joinCols != strings.Join(tgt.Columns, ",") {
		add("Columns", joinCols, strings.Join(tgt.Columns, ","))
	}
	if src.ReferencedTable != tgt.ReferencedTable {
		add("ReferencedTable", src.ReferencedTable, tgt.ReferencedTable)
	}
	if src.ReferencedColumns != nil && tgt.ReferencedColumns != nil {
		srcJoin := strings.Join(src.ReferencedColumns, ",")
		tgtJoin := strings.Join(tgt.ReferencedColumns, ",")
		if srcJoin != tgtJoin {
			add("ReferencedColumns", srcJoin, tgtJoin)
		}
	}

	return changes
}
