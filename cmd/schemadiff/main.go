// Command schemadiff compares the schemas of two databases and prints a
// report plus a synthesized migration. It is a thin wrapper around
// internal/orchestrator: all the real work happens there.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/microsoft/go-mssqldb"

	"schemadiff/internal/introspect"
	_ "schemadiff/internal/introspect/mysql"
	_ "schemadiff/internal/introspect/postgres"
	_ "schemadiff/internal/introspect/sqlite"
	_ "schemadiff/internal/introspect/sqlserver"
	"schemadiff/internal/migration"
	"schemadiff/internal/orchestrator"
	"schemadiff/internal/output"
)

var (
	flagSourceDSN     string
	flagTargetDSN     string
	flagSourceEngine  string
	flagTargetEngine  string
	flagEngineType    string
	flagOutputFormat  string
	flagTables        []string
	flagIgnoreTables  []string
	flagMigrationName string
	flagVerbose       bool
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemadiff",
		Short: "Compare two database schemas and synthesize a migration",
		RunE:  runDiff,
	}

	cmd.Flags().StringVar(&flagSourceDSN, "source", "", "source database connection string (required)")
	cmd.Flags().StringVar(&flagTargetDSN, "target", "", "target database connection string (required)")
	cmd.Flags().StringVar(&flagEngineType, "type", "", "engine for both source and target: postgres, mysql, sqlserver, sqlite (required)")
	cmd.Flags().StringVar(&flagOutputFormat, "output", "console", "output format: console, json, markdown, sql")
	cmd.Flags().StringSliceVar(&flagTables, "tables", nil, "limit introspection to these tables (comma-separated)")
	cmd.Flags().StringSliceVar(&flagIgnoreTables, "ignore", nil, "exclude these tables from introspection (comma-separated)")
	cmd.Flags().StringVar(&flagMigrationName, "migration-name", "", "name for the synthesized migration (default schema_migration_<timestamp>)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("target")
	cmd.MarkFlagRequired("type")

	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	logger := logrus.New()
	if flagVerbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	log := logrus.NewEntry(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	migrationName := flagMigrationName
	if migrationName == "" {
		migrationName = fmt.Sprintf("schema_migration_%s", time.Now().UTC().Format("20060102_150405"))
	}

	sourceDB, err := sql.Open(driverName(flagEngineType), flagSourceDSN)
	if err != nil {
		return fmt.Errorf("opening source connection: %w", err)
	}
	defer sourceDB.Close()

	targetDB, err := sql.Open(driverName(flagEngineType), flagTargetDSN)
	if err != nil {
		return fmt.Errorf("opening target connection: %w", err)
	}
	defer targetDB.Close()

	req := orchestrator.Request{
		SourceEngine: flagEngineType,
		SourceDSN:    flagSourceDSN,
		SourceDB:     sourceDB,
		TargetEngine: flagEngineType,
		TargetDSN:    flagTargetDSN,
		TargetDB:     targetDB,
		ReadOptions: introspect.ReadOptions{
			IncludeTables:      flagTables,
			ExcludeTables:      flagIgnoreTables,
			IncludeViews:       true,
			IncludeIndexes:     true,
			IncludeForeignKeys: true,
		},
		MigrationTo:   migration.Engine(flagEngineType),
		MigrationName: migrationName,
	}

	result, err := orchestrator.Run(ctx, log, req)
	if err != nil {
		log.WithError(err).Error("schema comparison failed")
		os.Exit(orchestrator.ExitCode(err))
	}

	if strings.ToLower(flagOutputFormat) == "sql" {
		fmt.Println(result.Migration)
		return nil
	}

	var rendered string
	switch strings.ToLower(flagOutputFormat) {
	case "json":
		rendered, err = output.JSON(result.Report)
	case "markdown":
		rendered = output.Markdown(result.Report)
	default:
		rendered = output.Console(result.Report)
	}
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	fmt.Println(rendered)
	fmt.Println()
	fmt.Println(result.Migration)

	return nil
}

// driverName maps an engine tag to the database/sql driver name
// registered by each backend's blank import.
func driverName(engine string) string {
	switch engine {
	case "postgres":
		return "postgres"
	case "mysql":
		return "mysql"
	case "sqlserver":
		return "sqlserver"
	case "sqlite":
		return "sqlite3"
	default:
		return engine
	}
}
