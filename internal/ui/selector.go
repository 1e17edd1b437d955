package ui

import (
	"context"
	"fmt"

	"cropall/internal/session"
)

// Selector asks the user for every image's crop in a terminal editor.
type Selector struct {
	Settings CropSettings
	Options  Options
}

// NewSelector returns a Selector drawing on the alternate screen.
func NewSelector(settings CropSettings) *Selector {
	return &Selector{Settings: settings, Options: Options{AltScreen: true}}
}

func (s *Selector) Select(ctx context.Context, frame session.Frame) (session.Decision, error) {
	final, err := run(ctx, NewCropModel(frame, s.Settings), s.Options)
	if err != nil {
		return session.Decision{}, err
	}
	m, ok := final.(CropModel)
	if !ok {
		return session.Decision{}, fmt.Errorf("unexpected model %T", final)
	}
	decision, done := m.Decision()
	if !done {
		return session.Decision{Action: session.ActionQuit}, nil
	}
	return decision, nil
}

var _ session.Selector = (*Selector)(nil)
