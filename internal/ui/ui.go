package ui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"doin/internal/app"
	"doin/internal/config"
	"doin/internal/layout"
	"doin/internal/storage"
)

// pollMsg fires every poll interval and triggers a reload.
type pollMsg struct{}

// Model drives the session: it reloads the store on every poll, composes and
// paints the frame, and feeds key events through the translator and update
// engine.
type Model struct {
	store    storage.Store
	keys     app.KeyMap
	state    app.Model
	interval time.Duration
	logger   *slog.Logger
	width    int
	height   int
	err      error
}

func newModel(store storage.Store, cfg config.Config, logger *slog.Logger, tasks []storage.Task) Model {
	return Model{
		store:    store,
		keys:     app.NewKeyMap(cfg.Keys),
		state:    app.New(tasks),
		interval: cfg.Poll(),
		logger:   logger,
	}
}

// Run loads the task list and runs the interactive session until the user
// quits or a load or save fails. A failed first load returns before the
// terminal is touched. Bubble Tea restores the terminal on every exit path.
func Run(store storage.Store, cfg config.Config, logger *slog.Logger) error {
	tasks, err := store.Load()
	if err != nil {
		return err
	}
	logger.Info("loaded tasks", "path", store.Path(), "backend", storage.Backend(store), "count", len(tasks))

	applyColorProfilePreference()

	program := tea.NewProgram(newModel(store, cfg, logger, tasks), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	logger.Info("session ended")
	return nil
}

func (m Model) Init() tea.Cmd {
	return m.poll()
}

func (m Model) poll() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case pollMsg:
		return m.reload()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// reload replaces the task list with the store's current contents.
func (m Model) reload() (tea.Model, tea.Cmd) {
	tasks, err := m.store.Load()
	if err != nil {
		m.logger.Error("reload failed", "path", m.store.Path(), "err", err)
		m.err = fmt.Errorf("reload failed: %w", err)
		return m, tea.Quit
	}
	m.state = m.state.WithTasks(tasks)
	return m, m.poll()
}

// handleKey applies at most one transition per key. A transition that
// changes tasks is saved before returning, so the next reload reads it back.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.state.Mode()
	next, effect := app.Update(m.state, app.Translate(before, m.keys, msg))

	if effect == app.EffectSave {
		if err := m.store.Save(next.Tasks()); err != nil {
			m.logger.Error("save failed", "path", m.store.Path(), "err", err)
			m.err = fmt.Errorf("save failed: %w", err)
			return m, tea.Quit
		}
		m.logger.Info("saved tasks", "path", m.store.Path(), "count", len(next.Tasks()))
	}
	if after := next.Mode(); after != before {
		m.logger.Debug("mode changed", "from", before.String(), "to", after.String())
	}

	m.state = next
	if !m.state.Running() {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil || !m.state.Running() {
		return ""
	}
	tree := layout.Compose(m.state, m.keys, layout.Rect{W: m.width, H: m.height})
	return paint(tree)
}
