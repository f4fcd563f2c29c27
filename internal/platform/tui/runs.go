package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lungbird/internal/registry"
	"github.com/vovakirdan/lungbird/internal/replay"
	"github.com/vovakirdan/lungbird/internal/storage"
)

// Run history layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the mode sidebar
	sidebarWidth       = 24  // Width of the mode sidebar
	maxRuns            = 100 // Max runs to load per mode
)

// RunsKeyMap defines the key bindings for the run history.
type RunsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Verify   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.Verify, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Verify, k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Verify: key.NewBinding(
			key.WithKeys("v", "enter"),
			key.WithHelp("v", "verify replay"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for the run history screen.
type RunsModel struct {
	modes       []registry.ModeInfo
	modeCursor  int
	store       *storage.Store
	runs        []storage.Run
	table       table.Model
	help        help.Model
	keys        RunsKeyMap
	status      string // Outcome of the last verify
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRunsModel creates the run history for every registered mode.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	m := RunsModel{
		modes:       registry.List(),
		store:       store,
		keys:        DefaultRunsKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Player", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 14},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if extra := tableWidth - 55; extra > 0 {
		columns[1].Width += min(extra, 10)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// loadRuns loads the newest runs of the selected mode.
func (m *RunsModel) loadRuns() {
	m.runs = nil
	if m.store != nil && len(m.modes) > 0 {
		runs, err := m.store.RecentRuns(m.modes[m.modeCursor].ID, maxRuns)
		if err != nil {
			m.status = "could not load runs: " + err.Error()
		} else {
			m.runs = runs
		}
	}
	m.updateTableRows()
}

func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			r.Player,
			strconv.Itoa(r.Score),
			formatPlayTime(r.Frames, r.TickRate),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatPlayTime converts a frame count to wall time at the run's rate.
func formatPlayTime(frames uint64, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 60
	}
	d := time.Duration(frames) * time.Second / time.Duration(tickRate)
	return d.Truncate(100 * time.Millisecond).String()
}

// verifySelected re-simulates the highlighted run.
func (m *RunsModel) verifySelected() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return
	}
	run := m.runs[i]
	res, err := replay.Verify(run)
	if err != nil {
		m.status = "✕ " + err.Error()
		return
	}
	m.status = fmt.Sprintf("✓ run %d verified: score %d in %d frames", run.ID, res.Score, res.Frames)
}

func (m *RunsModel) moveMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.modeCursor = (m.modeCursor + delta + len(m.modes)) % len(m.modes)
	m.status = ""
	m.loadRuns()
}

// Init initializes the run history model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run history.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.moveMode(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.moveMode(-1)
			return m, nil
		case key.Matches(msg, m.keys.Verify):
			m.verifySelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run history.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	title := "RUNS"
	if len(m.modes) > 0 {
		title = "RUNS - " + m.modes[m.modeCursor].Title
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m RunsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Modes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")
	for i, g := range m.modes {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.modeCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + g.Title))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

func (m RunsModel) renderNarrowLayout() string {
	var b strings.Builder
	if len(m.modes) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.modes[m.modeCursor].Title), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	return b.String()
}

func (m RunsModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nFinish a run to see it here.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// RunRuns shows the run history.
// Returns true if user wants to go back to menu, false if quitting.
func RunRuns(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewRunsModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(RunsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
