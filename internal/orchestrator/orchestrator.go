// Package orchestrator sequences schema introspection, comparison, and
// migration synthesis end to end: validate inputs, read the source
// schema, read the target schema, compare, synthesize, and report. It
// owns the only timeouts, retries, and concurrency decisions in the
// program; every other component is a pure function of its inputs.
package orchestrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"

	"schemadiff/internal/apperr"
	"schemadiff/internal/core"
	"schemadiff/internal/diff"
	"schemadiff/internal/introspect"
	"schemadiff/internal/migration"
	"schemadiff/internal/report"
)

const (
	connectionValidationWindow = 30 * time.Second
	perSchemaReadWindow        = 5 * time.Minute
	connectionRetryAttempts    = 3
	connectionRetryBaseDelay   = time.Second
	maxDSNLength               = 2000
)

// Side identifies the source or target endpoint for logging and error
// attribution.
type Side string

const (
	Source Side = "source"
	Target Side = "target"
)

// Endpoint describes one side of a comparison: its engine tag, an
// already-opened *sql.DB, and the redacted display name shown in logs
// and reports.
type Endpoint struct {
	Engine      string
	DB          *sql.DB
	DisplayName string
}

// Request is everything the orchestrator needs to run one comparison.
type Request struct {
	SourceEngine string
	SourceDSN    string
	SourceDB     *sql.DB
	TargetEngine string
	TargetDSN    string
	TargetDB     *sql.DB
	ReadOptions   introspect.ReadOptions
	MigrationTo   migration.Engine
	MigrationName string
	// Clock supplies the migration header and report timestamps. Nil
	// defaults to core.SystemClock{}; tests inject a fixed Clock.
	Clock core.Clock
}

// Result is everything a caller needs after a successful run.
type Result struct {
	Source     *core.Schema
	Target     *core.Schema
	Diff       *diff.Diff
	Report     *report.Report
	Migration  string
	Operations []core.Operation
}

// Run executes the full pipeline: validate the request, read the source
// schema then the target schema (sequentially, never in parallel),
// validate both schemas, compare them, synthesize a migration, and build
// a report. Every error returned is an *apperr.Error so the caller can
// classify it into an exit code without string matching.
func Run(ctx context.Context, log *logrus.Entry, req Request) (*Result, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	if req.SourceEngine == "" || req.TargetEngine == "" {
		return nil, apperr.Validation("orchestrator.Run", errors.New("both source and target engine must be set"))
	}
	if req.SourceDB == nil || req.TargetDB == nil {
		return nil, apperr.Validation("orchestrator.Run", errors.New("both source and target connections must be established by the caller"))
	}
	if len(req.SourceDSN) > maxDSNLength || len(req.TargetDSN) > maxDSNLength {
		return nil, apperr.Validation("orchestrator.Run", fmt.Errorf("connection string exceeds the %d character limit", maxDSNLength))
	}

	clock := req.Clock
	if clock == nil {
		clock = core.SystemClock{}
	}

	sourceBackend, err := introspect.Get(req.SourceEngine)
	if err != nil {
		return nil, apperr.Validation("orchestrator.Run", err)
	}
	targetBackend, err := introspect.Get(req.TargetEngine)
	if err != nil {
		return nil, apperr.Validation("orchestrator.Run", err)
	}

	if err := validateConnection(ctx, log, Source, sourceBackend, req.SourceDB); err != nil {
		return nil, err
	}
	if err := validateConnection(ctx, log, Target, targetBackend, req.TargetDB); err != nil {
		return nil, err
	}

	log.WithField("engine", req.SourceEngine).Info("reading source schema")
	sourceSchema, err := readSchema(ctx, Source, sourceBackend, req.SourceDB, req.ReadOptions)
	if err != nil {
		return nil, err
	}

	log.WithField("engine", req.TargetEngine).Info("reading target schema")
	targetSchema, err := readSchema(ctx, Target, targetBackend, req.TargetDB, req.ReadOptions)
	if err != nil {
		return nil, err
	}

	if err := sourceSchema.Validate(); err != nil {
		return nil, apperr.Validation("orchestrator.validateSource", err)
	}
	if err := targetSchema.Validate(); err != nil {
		return nil, apperr.Validation("orchestrator.validateTarget", err)
	}

	d := diff.Compare(*sourceSchema, *targetSchema)

	migrationResult, err := migration.Synthesize(d, req.MigrationTo, req.MigrationName, clock)
	if err != nil {
		return nil, apperr.Unexpected("orchestrator.synthesize", err)
	}

	rpt := report.Build(d, report.Metadata{
		SourceEngine: req.SourceEngine,
		TargetEngine: req.TargetEngine,
		SourceName:   sourceBackend.DisplayName(req.SourceDSN),
		TargetName:   targetBackend.DisplayName(req.TargetDSN),
		GeneratedAt:  clock.Now().UTC().Format(time.RFC3339),
	}, len(sourceSchema.Tables), len(targetSchema.Tables), migrationResult.Operations)

	return &Result{
		Source:     sourceSchema,
		Target:     targetSchema,
		Diff:       d,
		Report:     rpt,
		Migration:  migrationResult.Text,
		Operations: migrationResult.Operations,
	}, nil
}

// validateConnection probes a connection with a bounded retry: up to
// connectionRetryAttempts attempts, exponential backoff starting at
// connectionRetryBaseDelay and doubling each attempt, all within
// connectionValidationWindow. Cancellation is cooperative: a canceled
// context aborts the retry loop immediately rather than exhausting
// attempts.
func validateConnection(ctx context.Context, log *logrus.Entry, side Side, b introspect.Backend, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, connectionValidationWindow)
	defer cancel()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = connectionRetryBaseDelay
	bo.Multiplier = 2

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if tErr := b.TestConnection(ctx, db); tErr != nil {
			log.WithError(tErr).WithField("side", side).Warn("connection validation attempt failed")
			return struct{}{}, tErr
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(connectionRetryAttempts))

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return apperr.Timeout("orchestrator.validateConnection", err).WithEngine(string(side))
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return apperr.Unexpected("orchestrator.validateConnection", context.Canceled).WithEngine(string(side))
		}
		return apperr.Connection("orchestrator.validateConnection", err).WithEngine(string(side))
	}
	return nil
}

// readSchema runs one ReadSchema call inside a per-schema timeout window
// and classifies the resulting error, if any.
func readSchema(ctx context.Context, side Side, b introspect.Backend, db *sql.DB, opts introspect.ReadOptions) (*core.Schema, error) {
	ctx, cancel := context.WithTimeout(ctx, perSchemaReadWindow)
	defer cancel()

	schema, err := b.ReadSchema(ctx, db, opts)
	if err == nil {
		return schema, nil
	}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		return nil, ae.WithEngine(string(side))
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, apperr.Timeout("orchestrator.readSchema", err).WithEngine(string(side))
	}
	return nil, apperr.Unexpected("orchestrator.readSchema", err).WithEngine(string(side))
}

// ExitCode classifies err into the process exit code policy: 0 for a nil
// error, 130 for user cancellation, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return apperr.CancelExitCode
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae.Kind.ExitCode()
	}
	return 1
}
