package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// SnapshotMsg carries the expense list after a store mutation.
type SnapshotMsg struct {
	expense.Snapshot
}

// Subscription connects a store to the program: every applied mutation is turned
// into a SnapshotMsg by the command returned from Next. Only the latest
// pending snapshot is kept.
type Subscription struct {
	ch     chan expense.Snapshot
	cancel func()
}

func Subscribe(store *expense.Store) *Subscription {
	ch := make(chan expense.Snapshot, 1)

	cancel := store.Subscribe(func(snap expense.Snapshot) {
		select {
		case <-ch:
		default:
		}

		ch <- snap
	})

	return &Subscription{ch: ch, cancel: cancel}
}

// Next waits for the next snapshot. Re-issue it after every SnapshotMsg.
func (s *Subscription) Next() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-s.ch
		if !ok {
			return nil
		}

		return SnapshotMsg{Snapshot: snap}
	}
}

func (s *Subscription) Close() {
	s.cancel()
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	cardStyle  = lipgloss.NewStyle().
			Padding(0, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
