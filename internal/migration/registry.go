package migration

import (
	"fmt"
	"sync"

	"schemadiff/internal/core"
	"schemadiff/internal/diff"
)

// Statement is one fragment of a dialect's ALTER TABLE output: either an
// executable SQL statement tagged with its risk, or a manual-migration
// note (Unresolved set, SQL empty/advisory) describing a change the
// dialect cannot express as DDL.
type Statement struct {
	SQL        string
	Risk       core.OperationRisk
	Unresolved string
}

// Generator renders dialect-correct DDL fragments for one engine. The
// Orchestrator never branches on engine tag directly; it resolves a
// Generator from the registry once and calls through the interface.
type Generator interface {
	QuoteIdentifier(name string) string
	BeginTransaction() string
	Commit() string
	CreateTable(t core.Table) string
	AlterTable(td *diff.TableDiff) []Statement
}

var (
	registryMu sync.RWMutex
	registry   = map[Engine]func() Generator{}
)

// RegisterGenerator adds (or replaces) the Generator constructor for an
// engine tag. Called from each dialect file's init().
func RegisterGenerator(e Engine, ctor func() Generator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[e] = ctor
}

func getGenerator(e Engine) (Generator, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ctor, ok := registry[e]
	if !ok {
		return nil, fmt.Errorf("no migration generator registered for engine %q", e)
	}
	return ctor(), nil
}
