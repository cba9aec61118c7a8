package core

import "fmt"

// Validate checks the structural invariants a Schema must hold before the
// comparator can safely operate on it: every table has a name, every
// column has a name and a data type (a table with no columns is allowed),
// no duplicate table full names, no duplicate index names, no duplicate
// column names within a table, and every foreign key constraint pointing
// at columns that exist on the referenced table when that table is
// present in the same snapshot.
func (s *Schema) Validate() error {
	seenTables := make(map[string]bool, len(s.Tables))
	for _, t := range s.Tables {
		if t.Name == "" {
			return fmt.Errorf("schema %q: table has an empty name", s.Database)
		}
		if seenTables[t.FullName()] {
			return fmt.Errorf("duplicate table name %q", t.FullName())
		}
		seenTables[t.FullName()] = true

		seenColumns := make(map[string]bool, len(t.Columns))
		for _, c := range t.Columns {
			if c.Name == "" {
				return fmt.Errorf("table %q: column has an empty name", t.Name)
			}
			if c.DataType == "" {
				return fmt.Errorf("table %q: column %q has an empty data type", t.Name, c.Name)
			}
			if seenColumns[c.Name] {
				return fmt.Errorf("table %q: duplicate column name %q", t.Name, c.Name)
			}
			seenColumns[c.Name] = true
		}

		seenConstraints := make(map[string]bool, len(t.Constraints))
		for _, c := range t.Constraints {
			if c.Name != "" {
				if seenConstraints[c.Name] {
					return fmt.Errorf("table %q: duplicate constraint name %q", t.Name, c.Name)
				}
				seenConstraints[c.Name] = true
			}
			if c.Type == ConstraintForeignKey && c.ReferencedTable != "" {
				ref := s.FindTable(c.ReferencedTable)
				if ref == nil && t.Schema != "" {
					// Back-ends report the referenced table by bare name; look
					// it up in the referencing table's own namespace.
					ref = s.FindTable(t.Schema + "." + c.ReferencedTable)
				}
				if ref != nil {
					for _, rc := range c.ReferencedColumns {
						if ref.FindColumn(rc) == nil {
							return fmt.Errorf("table %q: constraint %q references unknown column %q on %q",
								t.Name, c.Name, rc, c.ReferencedTable)
						}
					}
				}
			}
		}
	}

	seenIndexes := make(map[string]bool, len(s.Indexes))
	for _, ix := range s.Indexes {
		if seenIndexes[ix.Name] {
			return fmt.Errorf("duplicate index name %q", ix.Name)
		}
		seenIndexes[ix.Name] = true
	}

	return nil
}
