package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"surveylex/internal/config"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		dir := flags.String("dir", "", "Project directory (default: current directory)")
		if code, err := parseFlags(cmd, flags, args, stdout, stderr); err != nil {
			return code
		}

		root := *dir
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			root = wd
		}
		if err := config.Scaffold(root); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", config.ConfigPath(root))
		fmt.Fprintf(stdout, "Wrote %s\n", filepath.Join(config.ConfigDir(root), config.SurveyFileName))
		return ExitOK
	}
}
