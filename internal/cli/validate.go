package cli

import (
	"flag"
	"fmt"
	"io"

	"surveylex/internal/survey"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .surveylex/config.yml)")
		surveyPath := flags.String("survey", "", "Survey definition to validate (default: from config)")
		if code, err := parseFlags(cmd, flags, args, stdout, stderr); err != nil {
			return code
		}

		p, err := loadProject(*configPath, *surveyPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		s, err := survey.Load(p.SurveyPath())
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}

		questions := 0
		for _, fragment := range s.Fragments {
			questions += fragment.Len()
		}
		fmt.Fprintln(stdout, "Config OK")
		fmt.Fprintf(stdout, "Survey %s OK: %d pages, %d questions\n", s.ID, s.Len(), questions)
		return ExitOK
	}
}
