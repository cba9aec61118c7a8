package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		wantErr string
	}{
		{
			name: "valid schema",
			schema: Schema{
				Tables: []Table{
					{Name: "users", Columns: []Column{{Name: "id", DataType: "integer"}, {Name: "email", DataType: "varchar"}}},
				},
			},
		},
		{
			name: "duplicate table",
			schema: Schema{
				Tables: []Table{{Name: "users"}, {Name: "users"}},
			},
			wantErr: `duplicate table name "users"`,
		},
		{
			name: "empty table name",
			schema: Schema{
				Tables: []Table{{Name: ""}},
			},
			wantErr: `schema "": table has an empty name`,
		},
		{
			name: "empty column name",
			schema: Schema{
				Tables: []Table{
					{Name: "users", Columns: []Column{{Name: "", DataType: "integer"}}},
				},
			},
			wantErr: `table "users": column has an empty name`,
		},
		{
			name: "empty column data type",
			schema: Schema{
				Tables: []Table{
					{Name: "users", Columns: []Column{{Name: "id"}}},
				},
			},
			wantErr: `table "users": column "id" has an empty data type`,
		},
		{
			name: "duplicate column",
			schema: Schema{
				Tables: []Table{
					{Name: "users", Columns: []Column{{Name: "id", DataType: "integer"}, {Name: "id", DataType: "integer"}}},
				},
			},
			wantErr: `table "users": duplicate column name "id"`,
		},
		{
			name: "duplicate index",
			schema: Schema{
				Indexes: []Index{{Name: "idx_a"}, {Name: "idx_a"}},
			},
			wantErr: `duplicate index name "idx_a"`,
		},
		{
			name: "fk references unknown column",
			schema: Schema{
				Tables: []Table{
					{Name: "orders", Constraints: []Constraint{
						{Name: "fk_user", Type: ConstraintForeignKey, ReferencedTable: "users", ReferencedColumns: []string{"missing"}},
					}},
					{Name: "users", Columns: []Column{{Name: "id"}}},
				},
			},
			wantErr: `table "orders": constraint "fk_user" references unknown column "missing" on "users"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestSchemaFind(t *testing.T) {
	s := Schema{Tables: []Table{{Name: "users", Columns: []Column{{Name: "id"}}}}}
	require.NotNil(t, s.FindTable("users"))
	require.Nil(t, s.FindTable("missing"))
	require.NotNil(t, s.FindTable("users").FindColumn("id"))
	require.Nil(t, s.FindTable("users").FindColumn("missing"))
}
