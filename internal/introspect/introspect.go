// Package introspect defines the Backend contract every engine-specific
// introspection implementation satisfies, plus the registry the
// orchestrator uses to resolve one from an engine tag without branching
// on the tag itself.
package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"schemadiff/internal/core"
)

// Backend is the contract each engine-specific package implements. A
// Backend never holds open state beyond the *sql.DB handed to it by the
// caller; it is safe to share across goroutines but the orchestrator
// never calls it concurrently for the same connection.
type Backend interface {
	// ReadSchema reads the full normalized schema from db.
	ReadSchema(ctx context.Context, db *sql.DB, opts ReadOptions) (*core.Schema, error)
	// TestConnection validates that db is reachable and usable for
	// introspection (e.g. SELECT 1, or the engine's equivalent).
	TestConnection(ctx context.Context, db *sql.DB) error
	// DisplayName returns a redacted, human-safe rendering of dsn: the
	// username is masked to its first two characters followed by "***",
	// and the password, if present, is dropped entirely. If dsn cannot
	// be parsed, DisplayName falls back to "<engine>://***".
	DisplayName(dsn string) string
}

// ReadOptions narrows what ReadSchema reads.
type ReadOptions struct {
	IncludeTables      []string // empty means all
	ExcludeTables      []string
	IncludeSchemas     []string // empty means all namespaces/databases
	IncludeViews       bool
	IncludeIndexes     bool
	IncludeForeignKeys bool
}

// ShouldIntrospectSchema reports whether a schema/database namespace
// passes the IncludeSchemas filter. An empty IncludeSchemas list matches
// every namespace, including the unnamed one SQLite backends report.
func (o ReadOptions) ShouldIntrospectSchema(schema string) bool {
	if len(o.IncludeSchemas) == 0 {
		return true
	}
	for _, s := range o.IncludeSchemas {
		if s == schema {
			return true
		}
	}
	return false
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Backend{}
)

// Register adds (or replaces) the Backend constructor for an engine tag.
// Called from each backend package's init().
func Register(engine string, ctor func() Backend) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[engine] = ctor
}

// Get resolves the Backend registered for engine, or an error if none is
// registered.
func Get(engine string) (Backend, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ctor, ok := registry[engine]
	if !ok {
		return nil, fmt.Errorf("unsupported engine %q", engine)
	}
	return ctor(), nil
}

// ShouldIntrospect reports whether table name passes the include/exclude
// filters in opts. An empty IncludeTables list matches every table.
func (o ReadOptions) ShouldIntrospect(table string) bool {
	if len(o.IncludeTables) > 0 {
		found := false
		for _, t := range o.IncludeTables {
			if t == table {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, t := range o.ExcludeTables {
		if t == table {
			return false
		}
	}
	return true
}
