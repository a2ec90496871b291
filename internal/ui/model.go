package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sensing-garden/trellis/internal/prefs"
	"github.com/sensing-garden/trellis/internal/state"
)

type tab int

const (
	tabClassifications tab = iota
	tabDetections
	tabDevices
	tabEnvironment
	tabCount
)

func (t tab) title() string {
	switch t {
	case tabClassifications:
		return "Classifications"
	case tabDetections:
		return "Detections"
	case tabDevices:
		return "Devices"
	case tabEnvironment:
		return "Environment"
	default:
		return ""
	}
}

type tickMsg time.Time

// Model is the bubbletea model for the dashboard.
type Model struct {
	opts     Options
	theme    Theme
	keys     keyMap
	help     help.Model
	tables   [tabCount]table.Model
	active   tab
	snapshot state.Snapshot
	width    int
	height   int
}

func newModel(opts Options) Model {
	m := Model{
		opts:  opts,
		theme: themeByName(opts.ThemeName),
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
	for i := range m.tables {
		m.tables[i] = newTable(tab(i), m.theme)
	}
	m.snapshot = opts.Store.Snapshot()
	m.applySnapshot()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	every := m.opts.PollTick
	if every <= 0 || every > time.Second {
		every = time.Second
	}
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeTables()
		return m, nil

	case tickMsg:
		m.snapshot = m.opts.Store.Snapshot()
		m.applySnapshot()
		return m, m.tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			m.active = (m.active + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.PrevTab):
			m.active = (m.active + tabCount - 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.snapshot = m.opts.Store.Snapshot()
			m.applySnapshot()
			return m, nil
		case key.Matches(msg, m.keys.Theme):
			m.theme = nextTheme(m.theme)
			for i := range m.tables {
				applyTableStyles(&m.tables[i], m.theme)
			}
			// Best effort; a read-only config dir should not break the UI.
			_ = prefs.Save(m.opts.PrefsPath, prefs.Prefs{Theme: m.theme.Name})
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.tables[m.active], cmd = m.tables[m.active].Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	styles := m.theme.Styles()

	header := m.renderHeader(styles)
	tabs := m.renderTabs(styles)
	body := m.tables[m.active].View()
	footer := styles.Footer.Render(m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, body, footer)
}

func (m *Model) renderTabs(styles Styles) string {
	parts := make([]string, 0, tabCount)
	for t := tab(0); t < tabCount; t++ {
		if t == m.active {
			parts = append(parts, styles.TabActive.Render(t.title()))
		} else {
			parts = append(parts, styles.TabInactive.Render(t.title()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) resizeTables() {
	// Header, tab bar, and footer each take one line plus spacing.
	bodyHeight := m.height - 5
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	for i := range m.tables {
		m.tables[i].SetHeight(bodyHeight)
		if m.width > 0 {
			m.tables[i].SetWidth(m.width)
		}
	}
}

func (m *Model) applySnapshot() {
	m.tables[tabClassifications].SetRows(classificationRows(m.snapshot.Classifications))
	m.tables[tabDetections].SetRows(detectionRows(m.snapshot.Detections))
	m.tables[tabDevices].SetRows(deviceRows(m.snapshot.Devices))
	m.tables[tabEnvironment].SetRows(environmentRows(m.snapshot.Environment))
}
