package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const (
	journalLimit     = 100 // rounds loaded per variant
	journalWideWidth = 64  // below this the date column is dropped
	journalChrome    = 9   // rows taken by tabs, title, stats, borders and help
)

// RoundSource is the read side of the round journal.
type RoundSource interface {
	TopRounds(gameID string, limit int) ([]storage.Round, error)
	RecentRounds(gameID string, limit int) ([]storage.Round, error)
	GameStats(gameID string) (storage.Stats, error)
}

// JournalKeyMap defines the journal viewer bindings.
type JournalKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Order key.Binding
	Help  key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Order, k.Help, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Next, k.Prev, k.Order},
		{k.Help, k.Back, k.Quit},
	}
}

// DefaultJournalKeyMap returns the default viewer bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Next:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next variant")),
		Prev:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("⇧tab", "prev variant")),
		Order: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "best/recent")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Back:  key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel browses the round journal one variant at a time.
type ScoreboardModel struct {
	source RoundSource
	games  []registry.GameInfo
	active int
	recent bool // newest first instead of best first

	rounds []storage.Round
	stats  storage.Stats
	err    error

	table  table.Model
	help   help.Model
	keys   JournalKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a journal viewer. source may be nil.
func NewScoreboardModel(source RoundSource, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		source: source,
		games:  registry.List(),
		help:   help.New(),
		keys:   DefaultJournalKeyMap(),
	}
	m.table = table.New(table.WithFocused(true), table.WithStyles(journalTableStyles()))
	m.resize(width, height)
	m.reload()
	return m
}

func journalTableStyles() table.Styles {
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
	return s
}

// columns sizes the table for the current width. Rows are rebuilt by the
// caller since their arity follows the columns.
func (m *ScoreboardModel) columns() []table.Column {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 6},
		{Title: "Length", Width: 6},
		{Title: "Cause", Width: 8},
		{Title: "Ticks", Width: 7},
	}
	if m.width >= journalWideWidth {
		cols = append(cols, table.Column{Title: "Played", Width: 12})
	}
	return cols
}

func (m *ScoreboardModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.table.SetHeight(max(3, height-journalChrome))
	m.fillRows()
}

// reload fetches rounds and stats for the active variant.
func (m *ScoreboardModel) reload() {
	m.rounds, m.stats, m.err = nil, storage.Stats{}, nil
	if m.source != nil && len(m.games) > 0 {
		id := m.games[m.active].ID
		if m.recent {
			m.rounds, m.err = m.source.RecentRounds(id, journalLimit)
		} else {
			m.rounds, m.err = m.source.TopRounds(id, journalLimit)
		}
		if m.err == nil {
			m.stats, m.err = m.source.GameStats(id)
		}
	}
	m.fillRows()
	m.table.GotoTop()
}

func (m *ScoreboardModel) fillRows() {
	wide := m.width >= journalWideWidth
	rows := make([]table.Row, 0, len(m.rounds))
	for i, r := range m.rounds {
		row := table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Length),
			r.Cause,
			strconv.FormatUint(r.Ticks, 10),
		}
		if wide {
			row = append(row, r.CreatedAt.Local().Format("Jan 02 15:04"))
		}
		rows = append(rows, row)
	}
	m.table.SetRows(rows)
}

func (m *ScoreboardModel) cycle(step int) {
	if len(m.games) == 0 {
		return
	}
	m.active = (m.active + step + len(m.games)) % len(m.games)
	m.reload()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		case key.Matches(msg, m.keys.Order):
			m.recent = !m.recent
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	journalTabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	journalActiveTabStyle = journalTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	journalTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	journalBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	journalNoteStyle      = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	tabs := make([]string, 0, len(m.games))
	for i, g := range m.games {
		style := journalTabStyle
		if i == m.active {
			style = journalActiveTabStyle
		}
		tabs = append(tabs, style.Render(g.Title))
	}

	title := "BEST ROUNDS"
	if m.recent {
		title = "RECENT ROUNDS"
	}

	var body string
	switch {
	case m.err != nil:
		body = journalNoteStyle.Render("Journal unavailable: " + m.err.Error())
	case len(m.rounds) == 0:
		body = journalNoteStyle.Render("No rounds recorded yet. Finish a round to fill the journal.")
	default:
		body = m.table.View()
	}

	view := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
		journalTitleStyle.Render(title),
		journalNoteStyle.Render(m.statsLine()),
		journalBoxStyle.Render(body),
		m.help.View(m.keys),
	)
	if m.width <= 0 || m.height <= 0 {
		return view
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, view)
}

func (m ScoreboardModel) statsLine() string {
	if m.stats.Rounds == 0 {
		return " "
	}
	return fmt.Sprintf("%d rounds · best %d · average %.1f", m.stats.Rounds, m.stats.Best, m.stats.AvgScore)
}

// IsGoingBack reports whether the player asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the journal viewer on its own.
func RunScoreboard(source RoundSource, width, height int) error {
	p := tea.NewProgram(NewScoreboardModel(source, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
