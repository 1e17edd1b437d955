package ui

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cropall/internal/cropper"
)

// ConfirmModel asks whether an existing file may be replaced.
type ConfirmModel struct {
	path     string
	answered bool
	yes      bool
	styles   styles
}

func NewConfirmModel(path string) ConfirmModel {
	return ConfirmModel{path: path, styles: newStyles()}
}

// Answer reports the choice and whether one was made.
func (m ConfirmModel) Answer() (bool, bool) { return m.yes, m.answered }

func (m ConfirmModel) Init() tea.Cmd { return nil }

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.answered, m.yes = true, true
		return m, tea.Quit
	case "n", "N", "esc", "q", "enter", "ctrl+c":
		m.answered, m.yes = true, false
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.warn.Render("File exists"),
		fmt.Sprintf("%s already exists in %s.", filepath.Base(m.path), filepath.Dir(m.path)),
		"",
		"Overwrite? "+m.styles.accent.Render("[y/N]"),
	)
	return m.styles.box.Render(body) + "\n"
}

// Confirmer prompts in the terminal before an existing output is replaced.
type Confirmer struct {
	Options Options
}

func (c Confirmer) ConfirmOverwrite(ctx context.Context, path string) (bool, error) {
	final, err := run(ctx, NewConfirmModel(path), c.Options)
	if err != nil {
		return false, err
	}
	m, ok := final.(ConfirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected model %T", final)
	}
	yes, _ := m.Answer()
	return yes, nil
}

var _ cropper.Confirmer = Confirmer{}
