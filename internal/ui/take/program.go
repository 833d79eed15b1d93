package take

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"surveylex/internal/session"
)

// IO holds the terminal streams for the program.
type IO struct {
	In  io.Reader
	Out io.Writer
}

// Start runs the survey in the alternate screen and blocks until the run is
// submitted or abandoned, or ctx is cancelled. A run still active when the
// program exits is abandoned.
func Start(ctx context.Context, run *session.Run, streams IO, opts Options) (Model, error) {
	if streams.Out == nil {
		streams.Out = os.Stdout
	}
	if streams.In == nil {
		streams.In = os.Stdin
	}
	if opts.Context == nil {
		opts.Context = ctx
	}
	model := NewModel(run, opts)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(streams.In),
		tea.WithOutput(streams.Out),
		tea.WithAltScreen(),
	)
	final, err := program.Run()
	if run.Status() == session.StatusActive {
		_ = run.Abandon()
	}
	if err != nil {
		return model, fmt.Errorf("run survey ui: %w", err)
	}
	out, ok := final.(Model)
	if !ok {
		return model, fmt.Errorf("run survey ui: unexpected model %T", final)
	}
	return out, nil
}
