package diff

import (
	"strconv"
	"strings"

	"schemadiff/internal/core"
)

// compareIndexes compares the flat, schema-wide index namespace: indexes
// are matched by Name alone, independent of which table owns them.
func compareIndexes(source, target []core.Index) IndexPartition {
	var p IndexPartition
	targetByName := indexByName(target)

	for _, si := range source {
		ti, ok := targetByName[si.Name]
		if !ok {
			p.Missing = append(p.Missing, si)
			continue
		}
		ti2 := target[ti]
		if changes := indexChanges(si, ti2); len(changes) > 0 {
			p.Modified = append(p.Modified, &IndexChange{Name: si.Name, Src: si, Tgt: ti2, Changes: changes})
		}
	}

	sourceByName := indexByName(source)
	for _, ti := range target {
		if _, ok := sourceByName[ti.Name]; !ok {
			p.Extra = append(p.Extra, ti)
		}
	}

	return p
}

// indexChanges evaluates the fixed, ordered set of index predicates.
func indexChanges(src, tgt core.Index) []FieldChange {
	var changes []FieldChange
	add := func(field, srcVal, tgtVal string) {
		changes = append(changes, FieldChange{Field: field, Src: srcVal, Tgt: tgtVal})
	}

	if src.TableName != tgt.TableName {
		add("TableName", src.TableName, tgt.TableName)
	}
	if joinCols := strings.Join(src.Columns, ","); joinCols != strings.Join(tgt.Columns, ",") {
		add("Columns", joinCols, strings.Join(tgt.Columns, ","))
	}
	if src.IsUnique != tgt.IsUnique {
		add("IsUnique", strconv.FormatBool(src.IsUnique), strconv.FormatBool(tgt.IsUnique))
	}
	if src.IsPrimaryKey != tgt.IsPrimaryKey {
		add("IsPrimaryKey", strconv.FormatBool(src.IsPrimaryKey), strconv.FormatBool(tgt.IsPrimaryKey))
	}

	return changes
}
