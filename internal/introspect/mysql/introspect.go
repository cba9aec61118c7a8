// Package mysql implements the MySQL/MariaDB introspection back-end on
// top of database/sql and github.com/go-sql-driver/mysql.
package mysql

import (
	"context"
	"database/sql"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"

	"schemadiff/internal/apperr"
	"schemadiff/internal/core"
	"schemadiff/internal/introspect"
)

func init() {
	introspect.Register("mysql", New)
}

type backend struct{}

func New() introspect.Backend { return backend{} }

func (backend) TestConnection(ctx context.Context, db *sql.DB) error {
	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return apperr.Connection("mysql.TestConnection", err)
	}
	return nil
}

func (backend) ReadSchema(ctx context.Context, db *sql.DB, opts introspect.ReadOptions) (*core.Schema, error) {
	dbName, err := readCurrentDatabase(ctx, db)
	if err != nil {
		return nil, apperr.Catalog("mysql.readCurrentDatabase", err)
	}
	schema := &core.Schema{Database: dbName}

	if !opts.ShouldIntrospectSchema(dbName) {
		return schema, nil
	}

	names, err := readTableNames(ctx, db)
	if err != nil {
		return nil, apperr.Catalog("mysql.readTables", err)
	}

	for _, name := range names {
		if !opts.ShouldIntrospect(name) {
			continue
		}
		table := core.Table{Schema: dbName, Name: name, Properties: map[string]string{}}

		if table.Columns, err = readColumns(ctx, db, name); err != nil {
			return nil, apperr.Catalog("mysql.readColumns", err)
		}
		if table.Constraints, err = readConstraints(ctx, db, name); err != nil {
			return nil, apperr.Catalog("mysql.readConstraints", err)
		}

		schema.Tables = append(schema.Tables, table)
	}

	if opts.IncludeIndexes {
		if schema.Indexes, err = readIndexes(ctx, db); err != nil {
			return nil, apperr.Catalog("mysql.readIndexes", err)
		}
	}

	if opts.IncludeViews {
		if schema.Views, err = readViews(ctx, db); err != nil {
			return nil, apperr.Catalog("mysql.readViews", err)
		}
	}

	return schema, nil
}

func readCurrentDatabase(ctx context.Context, db *sql.DB) (string, error) {
	var name string
	err := db.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&name)
	return name, err
}

func readTableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		ORDER BY table_name
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

func readColumns(ctx context.Context, db *sql.DB, table string) ([]core.Column, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT
			column_name, data_type, is_nullable, column_default, extra,
			character_maximum_length, numeric_precision, numeric_scale
		FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY ordinal_position
	`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []core.Column
	for rows.Next() {
		var name, dataType, nullable, extra string
		var defaultVal sql.NullString
		var maxLen, precision, scale sql.NullInt64
		if err := rows.Scan(&name, &dataType, &nullable, &defaultVal, &extra, &maxLen, &precision, &scale); err != nil {
			return nil, err
		}
		cols = append(cols, core.Column{
			Name:         name,
			DataType:     dataType,
			IsNullable:   nullable == "YES",
			DefaultValue: defaultVal.String,
			MaxLength:    int(maxLen.Int64),
			Precision:    int(precision.Int64),
			Scale:        int(scale.Int64),
			IsIdentity:   strings.Contains(extra, "auto_increment"),
		})
	}
	return cols, rows.Err()
}

func readConstraints(ctx context.Context, db *sql.DB, table string) ([]core.Constraint, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT
			k.constraint_name, t.constraint_type, k.column_name,
			k.ordinal_position, k.referenced_table_name, k.referenced_column_name
		FROM information_schema.key_column_usage k
		JOIN information_schema.table_constraints t
			ON k.constraint_name = t.constraint_name AND k.table_schema = t.table_schema
		WHERE k.table_schema = DATABASE() AND k.table_name = ?
		ORDER BY k.constraint_name, k.ordinal_position
	`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byName := map[string]*core.Constraint{}
	var order []string
	for rows.Next() {
		var name, ctype, column string
		var ordinal int
		var refTable, refColumn sql.NullString
		if err := rows.Scan(&name, &ctype, &column, &ordinal, &refTable, &refColumn); err != nil {
			return nil, err
		}
		c, ok := byName[name]
		if !ok {
			c = &core.Constraint{Name: name, Type: mapConstraintType(ctype), ReferencedTable: refTable.String}
			byName[name] = c
			order = append(order, name)
		}
		c.Columns = append(c.Columns, column)
		if refColumn.Valid {
			c.ReferencedColumns = append(c.ReferencedColumns, refColumn.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]core.Constraint, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out, nil
}

func mapConstraintType(t string) core.ConstraintType {
	switch t {
	case "PRIMARY KEY":
		return core.ConstraintPrimaryKey
	case "FOREIGN KEY":
		return core.ConstraintForeignKey
	case "UNIQUE":
		return core.ConstraintUnique
	default:
		return core.ConstraintType(t)
	}
}

// readIndexes reads every index across every table in the current
// database, matching the MySQL/MariaDB information_schema.statistics
// view. View-backed "indexes" do not appear here since MySQL views have
// no index catalog entries of their own.
func readIndexes(ctx context.Context, db *sql.DB) ([]core.Index, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT index_name, table_name, column_name, non_unique
		FROM information_schema.statistics
		WHERE table_schema = DATABASE()
		ORDER BY index_name, seq_in_index
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byName := map[string]*core.Index{}
	var order []string
	for rows.Next() {
		var indexName, tableName, column string
		var nonUnique int
		if err := rows.Scan(&indexName, &tableName, &column, &nonUnique); err != nil {
			return nil, err
		}
		ix, ok := byName[indexName]
		if !ok {
			ix = &core.Index{
				Name:         indexName,
				TableName:    tableName,
				IsUnique:     nonUnique == 0,
				IsPrimaryKey: indexName == "PRIMARY",
			}
			byName[indexName] = ix
			order = append(order, indexName)
		}
		ix.Columns = append(ix.Columns, column)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]core.Index, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out, nil
}

func readViews(ctx context.Context, db *sql.DB) ([]core.View, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT table_name, view_definition
		FROM information_schema.views
		WHERE table_schema = DATABASE()
		ORDER BY table_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []core.View
	for rows.Next() {
		var name, def sql.NullString
		if err := rows.Scan(&name, &def); err != nil {
			return nil, err
		}
		views = append(views, core.View{Name: name.String, Definition: def.String})
	}
	return views, rows.Err()
}

// DisplayName redacts a MySQL DSN via the driver's own DSN parser rather
// than hand-rolled string splitting, so the redaction logic stays correct
// for every DSN form the driver itself accepts.
func (backend) DisplayName(dsn string) string {
	cfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return "mysql://***"
	}
	user := cfg.User
	if len(user) <= 2 {
		user += "***"
	} else {
		user = user[:2] + "***"
	}
	return "mysql://" + user + "@" + cfg.Addr + "/" + cfg.DBName
}
