package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewScoreboard
)

// SessionModel manages the full session flow: menu -> game -> menu, with
// the round journal one key away. It is the top-level model for both local
// and SSH play.
type SessionModel struct {
	env        Env
	config     core.RuntimeConfig
	view       sessionView
	menu       MenuModel
	game       *Model
	scoreboard *ScoreboardModel
	quitting   bool
	err        error
}

// NewSessionModel creates a session starting at the variant menu. When
// gameID names a registered variant, the session starts in that game
// instead and Back returns to the menu.
func NewSessionModel(env Env, cfg core.RuntimeConfig, gameID string) SessionModel {
	if env.SessionID == "" {
		env.SessionID = uuid.NewString()
	}
	env = env.withDefaults()

	m := SessionModel{
		env:    env,
		config: cfg,
		menu:   NewMenuModel(cfg),
	}
	if gameID != "" {
		if err := m.startGame(gameID); err != nil {
			m.err = err
		}
	}
	return m
}

// startGame swaps the view to a fresh instance of the given variant.
func (m *SessionModel) startGame(gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	gm := NewModel(game, m.env, m.config)
	m.game = &gm
	m.view = viewGame
	return nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.view == viewGame && m.game != nil {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update routes messages to the active view.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode. The menu quits its own
// program on selection; the session swallows that and switches views.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		sb := NewScoreboardModel(m.env.Rounds, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		m.view = viewScoreboard
		return m, sb.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		if err := m.startGame(selected.GameID); err != nil {
			// Menu only lists registered variants
			m.env.Logger.Error("cannot start game", "game", selected.GameID, "err", err)
			m.menu = NewMenuModel(m.config)
			return m, nil
		}
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when a round is running.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.env.Logger.Debug("back to menu", "game", m.game.game.ID(), "high", m.game.game.State().HighScore)
		m.game = nil
		m.view = viewMenu
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScoreboard handles updates when the journal is shown.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scoreboard.IsGoingBack() {
		m.scoreboard = nil
		m.view = viewMenu
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the active view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewScoreboard:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// SessionID returns the identifier rounds of this session are journalled under.
func (m SessionModel) SessionID() string {
	return m.env.SessionID
}

// Err returns the error the session failed to start with, if any.
func (m SessionModel) Err() error {
	return m.err
}

// RunSession runs a local session in the alternate screen until the player quits.
func RunSession(env Env, cfg core.RuntimeConfig, gameID string) error {
	model := NewSessionModel(env, cfg, gameID)
	if err := model.Err(); err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: run session: %w", err)
	}
	return nil
}
