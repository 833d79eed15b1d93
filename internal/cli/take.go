package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"surveylex/internal/session"
	"surveylex/internal/survey"
	"surveylex/internal/ui/take"
	"surveylex/internal/upload"
)

// startTake is a test seam for running the interactive survey UI.
var startTake = take.Start

// takeInput is the terminal input for the survey UI; nil means stdin.
var takeInput io.Reader

// runTake builds the handler for the take command.
func runTake(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .surveylex/config.yml)")
		surveyPath := flags.String("survey", "", "Survey definition (default: from config)")
		uiMode := flags.String("ui", "", "UI mode: auto|live|plain (default: from config)")
		noColor := flags.Bool("no-color", false, "Disable colors")
		verbose := flags.Bool("verbose", false, "Log to stderr and print the outline instead of the live UI")
		sessionID := flags.String("session", "", "Session id (default: random)")
		if code, err := parseFlags(cmd, flags, args, stdout, stderr); err != nil {
			return code
		}

		p, err := loadProject(*configPath, *surveyPath)
		if err != nil {
			fmt.Fprintf(stderr, "Take failed:\n%v\n", err)
			return ExitError
		}
		mode := p.Config.UI.Mode
		if *uiMode != "" {
			mode = *uiMode
		}
		decision, err := resolveUIMode(mode, *verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "Take failed: %v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		logger, closeLog, err := newLogger(p.Config.Log, p.Root, *verbose, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Take failed: %v\n", err)
			return ExitError
		}
		defer func() { _ = closeLog() }()

		s, err := survey.Load(p.SurveyPath())
		if err != nil {
			fmt.Fprintf(stderr, "Take failed:\n%v\n", err)
			return ExitError
		}
		if !decision.useLive {
			if err := take.WriteOutline(stdout, s); err != nil {
				fmt.Fprintf(stderr, "Take failed: %v\n", err)
				return ExitError
			}
			return ExitOK
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		sink, err := upload.Open(ctx, p.Config.Upload, p.Root)
		if err != nil {
			fmt.Fprintf(stderr, "Take failed: %v\n", err)
			return ExitError
		}
		var syncer *upload.Syncer
		if sink != nil {
			opts := upload.OptionsFromConfig(p.Config.Upload)
			opts.Logger = logger
			syncer = upload.NewSyncer(sink, opts)
			defer func() { _ = syncer.Close(context.Background()) }()
		}

		run := session.New(s, session.Options{ID: *sessionID, Logger: logger})
		_, uiErr := startTake(ctx, run, take.IO{In: takeInput, Out: stdout}, take.Options{
			NoColor: *noColor || p.Config.UI.NoColor,
			Syncer:  syncer,
			Logger:  logger,
		})
		if syncer != nil {
			if err := flush(ctx, syncer, run, logger); err != nil {
				fmt.Fprintf(stderr, "Warning: some answers were not uploaded: %v\n", err)
			}
		}
		if uiErr != nil {
			fmt.Fprintf(stderr, "Take failed: %v\n", uiErr)
			return ExitError
		}
		fmt.Fprintf(stdout, "Session %s %s\n", run.ID(), run.Status())
		return ExitOK
	}
}

// flush uploads whatever the UI left stale, such as a run abandoned by
// closing the program.
func flush(ctx context.Context, syncer *upload.Syncer, run *session.Run, logger *slog.Logger) error {
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	results := syncer.Push(flushCtx, upload.Snapshot(run, time.Now()))
	upload.Acknowledge(run, results)
	for _, result := range results {
		if result.Err != nil {
			logger.Error("final upload failed", "fragment", result.Fragment, "error", result.Err)
			return result.Err
		}
	}
	return nil
}
