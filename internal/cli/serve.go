package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"surveylex/internal/reportserver"
	"surveylex/internal/store"
)

// serveReport is a test seam for running the report server.
var serveReport = reportserver.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (used to find the database)")
		dbPath := flags.String("db", "", "DuckDB response store (default: upload.duckdb.path from config)")
		addr := flags.String("addr", "127.0.0.1:5000", "Address to listen on")
		if code, err := parseFlags(cmd, flags, args, stdout, stderr); err != nil {
			return code
		}
		if *addr == "" {
			fmt.Fprintln(stderr, "Missing --addr")
			return ExitUsage
		}

		path, err := resolveDBPath(*configPath, *dbPath)
		if err != nil {
			fmt.Fprintf(stderr, "Serve failed: %v\n", err)
			return ExitError
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		db, err := store.Open(ctx, path)
		if err != nil {
			fmt.Fprintf(stderr, "Serve failed: %v\n", err)
			return ExitError
		}
		defer db.Close()

		cfg := reportserver.Config{
			Addr:   *addr,
			DB:     db,
			Logger: slog.New(slog.NewTextHandler(stderr, nil)),
		}
		fmt.Fprintf(stdout, "Serving responses at http://%s\n", cfg.Addr)
		if err := serveReport(ctx, cfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
