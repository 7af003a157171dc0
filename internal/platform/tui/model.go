package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Journal records finished rounds.
type Journal interface {
	SaveRound(r storage.Round) (storage.Round, error)
}

// Publisher fans game snapshots out to spectators.
type Publisher interface {
	Publish(sessionID, gameID string, snapshot any)
}

// Env carries the collaborators a session reports to. Nil fields are skipped.
type Env struct {
	Journal       Journal
	Rounds        RoundSource // read side shown by the journal viewer
	Publisher     Publisher
	Logger        *log.Logger
	Renderer      *lipgloss.Renderer
	SessionID     string
	Player        string
	ScreenshotDir string // defaults to ~/.snake/screenshots
}

func (e Env) withDefaults() Env {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	if e.Player == "" {
		e.Player = "local"
	}
	return e
}

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	renderer   *ScreenRenderer
	env        Env
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	published  uint64 // last snapshot generation sent to the publisher
	chain      uint64 // tick chain this model drives
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, env Env, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	env = env.withDefaults()

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer:   NewScreenRenderer(env.Renderer),
		env:        env,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		chain:      nextChain(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.env.Logger.Debug("round started", "game", m.game.ID(), "session", m.env.SessionID, "seed", m.config.Seed)
	return tickCmd(m.chain, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Chain != m.chain {
			// Left over from a model this one replaced.
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Keys are collected into the input
// frame and handed to the game on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && m.pausedAfterInput() {
		m.backToMenu = true
	}

	return m, nil
}

// pausedAfterInput reports whether the game will be paused once the input
// collected since the last tick is applied. A pending Pause toggles it.
func (m Model) pausedAfterInput() bool {
	return m.game.State().Paused != m.inputFrame.Has(core.ActionPause)
}

// handleResize re-projects the game onto the new window size.
// The round continues undisturbed.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick runs one frame of the game.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, ev := range result.Events {
		if ev.Kind == core.EventRoundOver {
			m.recordRound(ev)
		}
	}
	m.publish()

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.chain, m.config.TickRate)
}

// recordRound logs a finished round and writes it to the journal.
// Journal failures are logged and otherwise ignored.
func (m Model) recordRound(ev core.Event) {
	m.env.Logger.Info("round over",
		"game", m.game.ID(),
		"player", m.env.Player,
		"score", ev.Score,
		"high", m.gameState.HighScore,
		"length", ev.Length,
		"cause", ev.Cause,
		"ticks", ev.Ticks,
	)

	if m.env.Journal == nil {
		return
	}
	_, err := m.env.Journal.SaveRound(storage.Round{
		SessionID: m.env.SessionID,
		GameID:    m.game.ID(),
		Score:     ev.Score,
		Length:    ev.Length,
		Cause:     ev.Cause,
		Ticks:     ev.Ticks,
	})
	if err != nil {
		m.env.Logger.Warn("journal write failed", "game", m.game.ID(), "err", err)
	}
}

// publish sends a snapshot when the game changed since the last one.
func (m *Model) publish() {
	if m.env.Publisher == nil {
		return
	}
	snap, ok := m.game.(registry.Snapshotter)
	if !ok {
		return
	}
	gen := snap.Generation()
	if gen == m.published {
		return
	}
	m.published = gen
	m.env.Publisher.Publish(m.env.SessionID, m.game.ID(), snap.SnapshotValue())
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	path, err := writeScreenshot(m.env.ScreenshotDir, m.game.ID(), m.screen, time.Now())
	if err != nil {
		m.env.Logger.Warn("screenshot failed", "err", err)
		return
	}
	m.env.Logger.Info("screenshot saved", "path", path)
}

func writeScreenshot(dir, gameID string, s *core.Screen, now time.Time) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: screenshot dir: %w", err)
		}
		dir = filepath.Join(home, ".snake", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: screenshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", gameID, now.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(s.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen)
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}
