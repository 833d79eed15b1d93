package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"surveylex/internal/config"
	"surveylex/internal/store"
)

// sessionExport is the document written by export for one session.
type sessionExport struct {
	Session   store.SessionRecord    `json:"session" yaml:"session"`
	Responses []store.ResponseRecord `json:"responses" yaml:"responses"`
}

// runExport builds the handler for the export command.
func runExport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (used to find the database)")
		dbPath := flags.String("db", "", "DuckDB response store (default: upload.duckdb.path from config)")
		sessionID := flags.String("session", "", "Session to export (default: every session)")
		format := flags.String("format", "yaml", "Output format: yaml|json")
		if code, err := parseFlags(cmd, flags, args, stdout, stderr); err != nil {
			return code
		}
		switch *format {
		case "yaml", "json":
		default:
			fmt.Fprintf(stderr, "invalid format %q (expected yaml|json)\n", *format)
			return ExitUsage
		}

		path, err := resolveDBPath(*configPath, *dbPath)
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		ctx := context.Background()
		db, err := store.Open(ctx, path)
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		defer db.Close()

		var sessions []store.SessionRecord
		if *sessionID != "" {
			session, err := store.GetSession(ctx, db, *sessionID)
			if err != nil {
				fmt.Fprintf(stderr, "Export failed: %v\n", err)
				return ExitError
			}
			sessions = append(sessions, session)
		} else {
			sessions, err = store.ListSessions(ctx, db)
			if err != nil {
				fmt.Fprintf(stderr, "Export failed: %v\n", err)
				return ExitError
			}
		}

		docs := make([]sessionExport, 0, len(sessions))
		for _, session := range sessions {
			responses, err := store.ListResponses(ctx, db, session.ID)
			if err != nil {
				fmt.Fprintf(stderr, "Export failed: %v\n", err)
				return ExitError
			}
			docs = append(docs, sessionExport{Session: session, Responses: responses})
		}
		if err := writeExport(stdout, *format, docs); err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

func writeExport(w io.Writer, format string, docs []sessionExport) error {
	if format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(docs)
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(docs); err != nil {
		return err
	}
	return encoder.Close()
}

// resolveDBPath returns dbPath when set, otherwise the DuckDB path of the
// project config. The database must already exist.
func resolveDBPath(configPath, dbPath string) (string, error) {
	path := strings.TrimSpace(dbPath)
	if path == "" {
		p, err := loadProject(configPath, "")
		if err != nil {
			return "", err
		}
		if p.Config.Upload.DuckDB.Path == "" {
			return "", fmt.Errorf("no --db given and upload.sink is %q", p.Config.Upload.Sink)
		}
		path = config.ResolvePath(p.Root, p.Config.Upload.DuckDB.Path)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("database not found: %w", err)
	}
	return path, nil
}
