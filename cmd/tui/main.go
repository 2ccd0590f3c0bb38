package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/smartexpense/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/smartexpense/internal/config"
	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
	"github.com/MrJamesThe3rd/smartexpense/internal/export"
	"github.com/MrJamesThe3rd/smartexpense/internal/logging"
	"github.com/MrJamesThe3rd/smartexpense/internal/storage"
)

type model struct {
	cfg           *config.Config
	store         *expense.Store
	exportService *export.Service
	sub           *view.Subscription
	snapshot      expense.Snapshot
	size          tea.WindowSizeMsg

	currentView View
	active      view.View
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewExpenses  View = 2
	ViewAdd       View = 3
	ViewReports   View = 4
	ViewSettings  View = 5
)

func newModel(cfg *config.Config, store *expense.Store, exportService *export.Service) model {
	return model{
		cfg:           cfg,
		store:         store,
		exportService: exportService,
		sub:           view.Subscribe(store),
		snapshot:      store.List(),
		currentView:   ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return m.sub.Next()
}

func (m model) open(v View) (tea.Model, tea.Cmd) {
	switch v {
	case ViewDashboard:
		m.active = view.NewHomeModel(m.snapshot, time.Now)
	case ViewExpenses:
		m.active = view.NewListModel(m.store, m.snapshot)
	case ViewAdd:
		m.active = view.NewAddModel(m.store)
	case ViewReports:
		m.active = view.NewReportsModel(m.snapshot, time.Now)
	case ViewSettings:
		m.active = view.NewSettingsModel(m.store, m.exportService, m.snapshot, m.storageLabel())
	default:
		return m, nil
	}

	m.currentView = v

	cmds := []tea.Cmd{m.active.Init()}

	if m.size.Width > 0 {
		size := m.size
		cmds = append(cmds, func() tea.Msg { return size })
	}

	return m, tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.open(ViewDashboard)
			case "2":
				return m.open(ViewExpenses)
			case "3":
				return m.open(ViewAdd)
			case "4":
				return m.open(ViewReports)
			case "5":
				return m.open(ViewSettings)
			}

			return m, nil
		}

	case tea.WindowSizeMsg:
		m.size = msg

	case view.SnapshotMsg:
		m.snapshot = msg.Snapshot
		cmds = append(cmds, m.sub.Next())

	case view.BackMsg:
		m.currentView = ViewMenu
		m.active = nil

		return m, nil
	}

	if m.active != nil {
		next, cmd := m.active.Update(msg)
		m.active = next.(view.View)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m model) storageLabel() string {
	switch m.cfg.Storage.Backend {
	case config.BackendFile:
		return "file (" + m.cfg.Storage.Dir + ")"
	case config.BackendSQLite:
		return "sqlite (" + m.cfg.Storage.SQLitePath + ")"
	case config.BackendPostgres:
		return "postgres (" + m.cfg.DB.Host + "/" + m.cfg.DB.Name + ")"
	}

	return m.cfg.Storage.Backend
}

func (m model) View() string {
	if m.currentView == ViewMenu || m.active == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s\n%s\n\n", lipgloss.NewStyle().Bold(true).Render(m.cfg.App.Name),
				lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("%d expenses", len(m.snapshot.Expenses)))) +
				"1. Dashboard\n" +
				"2. Expenses\n" +
				"3. Add Expense\n" +
				"4. Reports\n" +
				"5. Settings\n\n" +
				"q. Quit",
		)
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.active.Title() + " · " + m.active.ShortHelp())

	return m.active.View() + "\n" + help
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs only go to LOG_FILE.
	logger, logCloser, err := logging.New(cfg, io.Discard)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("failed to run TUI", "error", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	backend, err := storage.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	defer func() {
		if err := backend.Cleanup(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	store := expense.NewStore(backend.Backend,
		expense.WithKey(cfg.Storage.Key),
		expense.WithIDGenerator(expense.GeneratorFor(expense.IDScheme(cfg.Ledger.IDScheme))),
		expense.WithLogger(logger),
	)

	if err := store.Load(context.Background()); err != nil {
		return err
	}

	m := newModel(cfg, store, export.NewService(store, logger))
	defer m.sub.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}

	return nil
}
