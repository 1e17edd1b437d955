package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PickerModel browses directories and returns the one the user chooses.
type PickerModel struct {
	dir     string
	entries []string
	cursor  int
	offset  int
	height  int
	err     error

	done   bool
	chosen string
	styles styles
}

// NewPickerModel opens the picker in start, falling back to the working
// directory when start is empty or unreadable.
func NewPickerModel(start string) PickerModel {
	m := PickerModel{height: defaultHeight, styles: newStyles()}
	dir := strings.TrimSpace(start)
	if dir == "" {
		dir = "."
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}
	m.enter(dir)
	return m
}

// Dir returns the directory being shown.
func (m PickerModel) Dir() string { return m.dir }

// Entries returns the visible subdirectory names.
func (m PickerModel) Entries() []string { return m.entries }

// Chosen returns the selected directory; empty when the picker was cancelled.
func (m PickerModel) Chosen() (string, bool) { return m.chosen, m.done }

func (m *PickerModel) enter(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		m.err = err
		return
	}
	m.dir, m.err = dir, nil
	m.entries = nil
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if e.IsDir() {
			m.entries = append(m.entries, e.Name())
			continue
		}
		if e.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, e.Name())); err == nil && info.IsDir() {
				m.entries = append(m.entries, e.Name())
			}
		}
	}
	m.cursor, m.offset = 0, 0
}

func (m PickerModel) Init() tea.Cmd { return nil }

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter", "right", "l":
			if len(m.entries) > 0 {
				m.enter(filepath.Join(m.dir, m.entries[m.cursor]))
			}
		case "backspace", "left", "h":
			parent := filepath.Dir(m.dir)
			if parent != m.dir {
				prev := filepath.Base(m.dir)
				m.enter(parent)
				for i, name := range m.entries {
					if name == prev {
						m.cursor = i
					}
				}
			}
		case " ", ".":
			m.done, m.chosen = true, m.dir
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.done, m.chosen = true, ""
			return m, tea.Quit
		}
		m.scroll()
	}
	return m, nil
}

func (m *PickerModel) scroll() {
	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m PickerModel) listRows() int {
	return max(m.height-5, 3)
}

func (m PickerModel) View() string {
	var b strings.Builder
	end := min(m.offset+m.listRows(), len(m.entries))
	for i := m.offset; i < end; i++ {
		line := "  " + m.entries[i] + string(filepath.Separator)
		if i == m.cursor {
			line = m.styles.accent.Render("> " + m.entries[i] + string(filepath.Separator))
		}
		b.WriteString(line + "\n")
	}
	if len(m.entries) == 0 {
		b.WriteString(m.styles.muted.Render("  (no subfolders)") + "\n")
	}
	status := ""
	if m.err != nil {
		status = m.styles.warn.Render(m.err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render("Select image folder"),
		m.styles.muted.Render(m.dir),
		b.String(),
		status,
		m.styles.muted.Render("enter open  backspace up  space choose this folder  q cancel"),
	)
}

// PickDirectory runs the picker on the alternate screen. It returns "" when
// the user cancels.
func PickDirectory(ctx context.Context, start string) (string, error) {
	return PickDirectoryWith(ctx, start, Options{AltScreen: true})
}

// PickDirectoryWith is PickDirectory with explicit terminal options.
func PickDirectoryWith(ctx context.Context, start string, opts Options) (string, error) {
	final, err := run(ctx, NewPickerModel(start), opts)
	if err != nil {
		return "", err
	}
	m, ok := final.(PickerModel)
	if !ok {
		return "", fmt.Errorf("unexpected model %T", final)
	}
	chosen, _ := m.Chosen()
	return chosen, nil
}
