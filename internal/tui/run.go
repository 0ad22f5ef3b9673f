// Package tui is the terminal front end: a bubbletea editor over an
// editor.Session and a plain ANSI player.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/rigposer/internal/editor"
)

// Run starts the full-screen editor. With a file already loaded into s it
// opens straight into editing, otherwise at the library list.
func Run(s *editor.Session, opts Options) error {
	m := newModel(s, opts)
	if s.File() != "" {
		m.state = stateEditor
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	m.resolver.Release()
	return err
}
