package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
	"github.com/MrJamesThe3rd/smartexpense/internal/export"
	"github.com/MrJamesThe3rd/smartexpense/internal/report"
)

type settingsState int

const (
	settingsStateMenu settingsState = iota
	settingsStatePath
	settingsStateExporting
	settingsStateConfirmClear
	settingsStateResult
)

const (
	actionExport = "export"
	actionClear  = "clear"
)

type SettingsModel struct {
	CommonModel
	store         *expense.Store
	exportService *export.Service
	storageLabel  string

	state    settingsState
	snapshot expense.Snapshot

	menu    *huh.Form
	action  *string
	form    *huh.Form
	path    *string
	confirm *bool
	spinner spinner.Model

	result string
	err    error
}

func NewSettingsModel(store *expense.Store, svc *export.Service, snap expense.Snapshot, storageLabel string) SettingsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := SettingsModel{
		store:         store,
		exportService: svc,
		storageLabel:  storageLabel,
		snapshot:      snap,
		path:          new("./exports"),
		spinner:       s,
	}
	m.menu, m.action = buildSettingsMenu()

	return m
}

func buildSettingsMenu() (*huh.Form, *string) {
	action := new(actionExport)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Data Management").
				Options(
					huh.NewOption("Export backup (JSON)", actionExport),
					huh.NewOption("Clear all data", actionClear),
				).
				Value(action),
		),
	).WithWidth(50).WithShowHelp(false)

	return form, action
}

func (m SettingsModel) Title() string { return "Settings" }

func (m SettingsModel) ShortHelp() string {
	switch m.state {
	case settingsStateResult:
		return "Esc: back"
	case settingsStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m SettingsModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if snap, ok := msg.(SnapshotMsg); ok {
		m.snapshot = snap.Snapshot
		return m, nil
	}

	switch m.state {
	case settingsStateMenu:
		return m.updateMenu(msg)
	case settingsStatePath:
		return m.updatePath(msg)
	case settingsStateExporting:
		return m.updateExporting(msg)
	case settingsStateConfirmClear:
		return m.updateConfirmClear(msg)
	case settingsStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m SettingsModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.menu.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.menu = f
	}

	if m.menu.State != huh.StateCompleted {
		return m, cmd
	}

	switch *m.action {
	case actionClear:
		m.confirm = new(false)
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Clear all data?").
					Description(fmt.Sprintf("This permanently deletes %d expenses and cannot be undone.", len(m.snapshot.Expenses))).
					Affirmative("Delete everything").
					Negative("Cancel").
					Value(m.confirm),
			),
		).WithWidth(60).WithShowHelp(false)
		m.state = settingsStateConfirmClear
	default:
		m.form = m.buildPathForm()
		m.state = settingsStatePath
	}

	return m, m.form.Init()
}

func (m SettingsModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(m.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m SettingsModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.resetMenu()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = settingsStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(*m.path))
}

func (m SettingsModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(settingsResultMsg); ok {
		m.state = settingsStateResult
		m.err = result.err
		m.result = result.body

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m SettingsModel) updateConfirmClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.resetMenu()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !*m.confirm {
		return m.resetMenu()
	}

	m.state = settingsStateExporting

	return m, tea.Batch(m.spinner.Tick, m.clearCmd())
}

func (m SettingsModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.resetMenu()
	}

	return m, nil
}

func (m SettingsModel) resetMenu() (tea.Model, tea.Cmd) {
	m.state = settingsStateMenu
	m.form = nil
	m.err = nil
	m.menu, m.action = buildSettingsMenu()

	return m, m.menu.Init()
}

func (m SettingsModel) View() string {
	var body string

	switch m.state {
	case settingsStateMenu:
		body = lipgloss.JoinVertical(lipgloss.Left, m.menu.View(), "", m.viewAbout())
	case settingsStatePath, settingsStateConfirmClear:
		body = m.form.View()
	case settingsStateExporting:
		body = fmt.Sprintf("%s Working...", m.spinner.View())
	case settingsStateResult:
		body = m.viewResult()
	}

	return lipgloss.NewStyle().Padding(1).Render(body)
}

func (m SettingsModel) viewAbout() string {
	expenses := m.snapshot.Expenses

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("About"),
		fmt.Sprintf("Stored expenses: %d", len(expenses)),
		fmt.Sprintf("Total recorded:  %s", FormatAmount(report.Total(expenses))),
		fmt.Sprintf("Storage:         %s", m.storageLabel),
		fmt.Sprintf("Backup format:   v%s", export.FormatVersion),
	))
}

func (m SettingsModel) viewResult() string {
	if m.err != nil {
		return errStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		okStyle.Bold(true).Render("Done!"),
		"",
		m.result,
	)
}

type settingsResultMsg struct {
	body string
	err  error
}

const exportTimeout = 30 * time.Second

func (m SettingsModel) runExportCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		path, err := m.exportService.ExportToDir(ctx, dir, time.Now())
		if err != nil {
			return settingsResultMsg{err: err}
		}

		return settingsResultMsg{body: fmt.Sprintf("Exported %d expenses to %s", len(m.snapshot.Expenses), path)}
	}
}

func (m SettingsModel) clearCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.store.Clear(ctx); err != nil {
			return settingsResultMsg{err: err}
		}

		return settingsResultMsg{body: "All expenses were deleted."}
	}
}
