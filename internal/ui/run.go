package ui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Options controls how programs attach to the terminal. The zero value uses
// stdin and stdout.
type Options struct {
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
}

func (o Options) programOptions(ctx context.Context) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if o.Input != nil {
		opts = append(opts, tea.WithInput(o.Input))
	}
	if o.Output != nil {
		opts = append(opts, tea.WithOutput(o.Output))
	}
	if o.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	return opts
}

// run boots m and blocks until it exits, returning the final model.
func run(ctx context.Context, m tea.Model, opts Options) (tea.Model, error) {
	program := tea.NewProgram(m, opts.programOptions(ctx)...)
	final, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("run terminal ui: %w", err)
	}
	return final, nil
}
