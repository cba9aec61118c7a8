// Package sqlite implements the SQLite introspection back-end on top of
// database/sql and github.com/mattn/go-sqlite3.
package sqlite

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"schemadiff/internal/apperr"
	"schemadiff/internal/core"
	"schemadiff/internal/introspect"
)

func init() {
	introspect.Register("sqlite", New)
}

type backend struct{}

func New() introspect.Backend { return backend{} }

func (backend) TestConnection(ctx context.Context, db *sql.DB) error {
	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return apperr.Connection("sqlite.TestConnection", err)
	}
	return nil
}

func (backend) ReadSchema(ctx context.Context, db *sql.DB, opts introspect.ReadOptions) (*core.Schema, error) {
	schema := &core.Schema{}

	if !opts.ShouldIntrospectSchema("") {
		return schema, nil
	}

	names, err := readTableNames(ctx, db)
	if err != nil {
		return nil, apperr.Catalog("sqlite.readTables", err)
	}

	for _, name := range names {
		if !opts.ShouldIntrospect(name) {
			continue
		}
		table := core.Table{Name: name, Properties: map[string]string{}}

		if table.Columns, err = readColumns(ctx, db, name); err != nil {
			return nil, apperr.Catalog("sqlite.readColumns", err)
		}
		if table.Constraints, err = readForeignKeys(ctx, db, name); err != nil {
			return nil, apperr.Catalog("sqlite.readConstraints", err)
		}

		schema.Tables = append(schema.Tables, table)
	}

	if opts.IncludeIndexes {
		if schema.Indexes, err = readIndexes(ctx, db, names); err != nil {
			return nil, apperr.Catalog("sqlite.readIndexes", err)
		}
	}

	if opts.IncludeViews {
		if schema.Views, err = readViews(ctx, db); err != nil {
			return nil, apperr.Catalog("sqlite.readViews", err)
		}
	}

	return schema, nil
}

func readTableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// readColumns uses PRAGMA table_info, the only portable way to discover
// column detail on SQLite since it has no information_schema.
func readColumns(ctx context.Context, db *sql.DB, table string) ([]core.Column, error) {
	rows, err := db.QueryContext(ctx, `PRAGMA table_info(`+quoteIdent(table)+`)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []core.Column
	for rows.Next() {
		var cid int
		var name, dataType string
		var notNull int
		var defaultVal sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &dataType, &notNull, &defaultVal, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, core.Column{
			Name:         name,
			DataType:     dataType,
			IsNullable:   notNull == 0,
			DefaultValue: defaultVal.String,
			IsIdentity:   pk == 1 && strings.EqualFold(dataType, "INTEGER"),
		})
	}
	return cols, rows.Err()
}

func readForeignKeys(ctx context.Context, db *sql.DB, table string) ([]core.Constraint, error) {
	rows, err := db.QueryContext(ctx, `PRAGMA foreign_key_list(`+quoteIdent(table)+`)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := map[int]*core.Constraint{}
	var order []int
	for rows.Next() {
		var id, seq int
		var refTable, from, to, onUpdate, onDelete, match string
		if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return nil, err
		}
		c, ok := byID[id]
		if !ok {
			c = &core.Constraint{
				Name:            table + "_fk_" + from,
				Type:            core.ConstraintForeignKey,
				ReferencedTable: refTable,
			}
			byID[id] = c
			order = append(order, id)
		}
		c.Columns = append(c.Columns, from)
		c.ReferencedColumns = append(c.ReferencedColumns, to)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]core.Constraint, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out, nil
}

// readIndexes walks PRAGMA index_list per table since SQLite exposes no
// schema-wide index catalog view.
func readIndexes(ctx context.Context, db *sql.DB, tables []string) ([]core.Index, error) {
	var all []core.Index
	for _, table := range tables {
		rows, err := db.QueryContext(ctx, `PRAGMA index_list(`+quoteIdent(table)+`)`)
		if err != nil {
			return nil, err
		}

		var names []struct {
			name    string
			unique  bool
			origin  string
		}
		for rows.Next() {
			var seq int
			var name, origin string
			var unique, partial int
			if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
				rows.Close()
				return nil, err
			}
			names = append(names, struct {
				name   string
				unique bool
				origin string
			}{name, unique == 1, origin})
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}

		for _, ix := range names {
			cols, err := readIndexColumns(ctx, db, ix.name)
			if err != nil {
				return nil, err
			}
			all = append(all, core.Index{
				Name:         ix.name,
				TableName:    table,
				Columns:      cols,
				IsUnique:     ix.unique,
				IsPrimaryKey: ix.origin == "pk",
			})
		}
	}
	return all, nil
}

func readIndexColumns(ctx context.Context, db *sql.DB, index string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `PRAGMA index_info(`+quoteIdent(index)+`)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var seqno, cid int
		var name sql.NullString
		if err := rows.Scan(&seqno, &cid, &name); err != nil {
			return nil, err
		}
		cols = append(cols, name.String)
	}
	return cols, rows.Err()
}

func readViews(ctx context.Context, db *sql.DB) ([]core.View, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT name, sql FROM sqlite_master WHERE type = 'view' ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []core.View
	for rows.Next() {
		var name string
		var def sql.NullString
		if err := rows.Scan(&name, &def); err != nil {
			return nil, err
		}
		views = append(views, core.View{Name: name, Definition: def.String})
	}
	return views, rows.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// DisplayName redacts a SQLite DSN. SQLite connection strings are
// filesystem paths with no credentials, so there is nothing to mask; the
// path itself is returned unchanged, prefixed with the scheme.
func (backend) DisplayName(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	path = strings.TrimPrefix(path, "sqlite://")
	return "sqlite://" + path
}
