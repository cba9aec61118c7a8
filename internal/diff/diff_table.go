package diff

import "schemadiff/internal/core"

func compareTables(source, target []core.Table) TablePartition {
	var p TablePartition
	targetByName := indexByName(target)

	for _, st := range source {
		ti, ok := targetByName[st.FullName()]
		if !ok {
			p.Missing = append(p.Missing, st)
			continue
		}
		if td := compareTable(st, target[ti]); td != nil {
			p.Modified = append(p.Modified, td)
		}
	}

	sourceByName := indexByName(source)
	for _, tt := range target {
		if _, ok := sourceByName[tt.FullName()]; !ok {
			p.Extra = append(p.Extra, tt)
		}
	}

	return p
}

func compareTable(src, tgt core.Table) *TableDiff {
	cols := compareColumns(src.Columns, tgt.Columns)
	cons := compareConstraints(src.Constraints, tgt.Constraints)

	if len(cols.Missing) == 0 && len(cols.Extra) == 0 && len(cols.Modified) == 0 &&
		len(cons.Missing) == 0 && len(cons.Extra) == 0 && len(cons.Modified) == 0 {
		return nil
	}

	return &TableDiff{
		Name:        src.FullName(),
		Columns:     cols,
		Constraints: cons,
	}
}
