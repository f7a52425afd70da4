package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/portfolio-drive/internal/config"
	"github.com/vovakirdan/portfolio-drive/internal/core"
	"github.com/vovakirdan/portfolio-drive/internal/registry"
	"github.com/vovakirdan/portfolio-drive/internal/storage"
)

// phase is the top-level screen of a session.
type phase int

const (
	phaseStart   phase = iota // Start screen with the Start Game button
	phasePlaying              // Game running; never left once entered
	phaseScores               // Scoreboard opened from the start screen
)

// Options configures a drive session.
type Options struct {
	Store   *storage.Store // May be nil; results are then not recorded
	Logger  *log.Logger    // May be nil; logs are then discarded
	Config  config.DriveConfig
	Player  string          // Name recorded with level results
	Context context.Context // Bounds asset loading; defaults to Background
}

// configReporter is implemented by games that load their own config on Reset.
type configReporter interface {
	ConfigError() error
}

// assetMsg reports the outcome of loading one game asset.
type assetMsg struct {
	name string
	data []byte
	err  error
}

// Model is the Bubble Tea model of a drive session: intro modal, start
// screen, the running game and its popups.
type Model struct {
	game    registry.Game
	screen  *core.Screen
	store   *storage.Store
	logger  *log.Logger
	cfg     config.DriveConfig
	runtime core.RuntimeConfig
	ctx     context.Context
	player  string

	keys  KeyMap
	help  help.Model
	input core.InputFrame
	hold  *holdTracker
	tick  uint64

	phase      phase
	introOpen  bool
	popup      *core.Popup
	state      core.GameState
	lastResult int64 // Row of the latest completion, until its level is left
	scoreboard ScoreboardModel
	quitting   bool
}

// NewModel creates a session model for the given game.
func NewModel(game registry.Game, rt core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	player := opts.Player
	if player == "" {
		player = storage.AnonymousPlayer
	}

	h := help.New()
	h.Width = rt.ScreenW

	return Model{
		game:      game,
		screen:    core.NewScreen(rt.ScreenW, max(rt.ScreenH-1, 1)),
		store:     opts.Store,
		logger:    logger,
		cfg:       opts.Config,
		runtime:   rt,
		ctx:       ctx,
		player:    player,
		keys:      DefaultKeyMap(),
		help:      h,
		input:     core.NewInputFrame(),
		hold:      newHoldTracker(opts.Config.Input.HoldInitial(), opts.Config.Input.HoldRepeat(), rt.TickRate),
		phase:     phaseStart,
		introOpen: true,
	}
}

// Init sets the window title. The tick loop starts with the game.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.game.Title())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.phase == phaseScores {
		return m.updateScores(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if m.phase != phasePlaying {
			return m, nil
		}
		return m.handleTick()

	case assetMsg:
		m.game.AssetLoaded(msg.name, msg.data, msg.err)
		if msg.err != nil {
			m.logger.Warn("asset failed to load", "asset", msg.name, "error", msg.err)
		} else {
			m.logger.Debug("asset ready", "asset", msg.name)
		}
		m.state = m.game.State()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	// The intro modal takes every other key while open
	if m.introOpen {
		switch m.keys.PlatformAction(msg) {
		case core.ActionClose:
			m.introOpen = false
		case core.ActionConfirm:
			m.introOpen = false
			return m.startGame()
		}
		return m, nil
	}

	if m.popup != nil {
		switch m.keys.PlatformAction(msg) {
		case core.ActionConfirm, core.ActionClose:
			m.popup = nil
			return m, nil
		}
	}

	if key.Matches(msg, m.keys.Contact) {
		m.openPopup(m.cfg.Content.Contact)
		return m, nil
	}

	switch m.phase {
	case phaseStart:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			return m.startGame()
		case key.Matches(msg, m.keys.Scores):
			m.openScores()
		}
	case phasePlaying:
		if a := m.keys.GameAction(msg); a != core.ActionNone {
			m.hold.press(a, m.tick, &m.input)
		}
	}

	return m, nil
}

// handleMouse processes left clicks on the intro, popups and buttons.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	x, y := msg.X, msg.Y

	if m.introOpen {
		l := m.introLayout()
		switch {
		case l.Confirm.Contains(x, y):
			m.introOpen = false
			return m.startGame()
		case l.Close.Contains(x, y), !l.Box.Contains(x, y):
			m.introOpen = false
		}
		return m, nil
	}

	if m.popup != nil {
		l := m.popupLayout()
		if l.Confirm.Contains(x, y) || l.Close.Contains(x, y) {
			m.popup = nil
		}
		return m, nil
	}

	switch {
	case m.contactRect().Contains(x, y):
		m.openPopup(m.cfg.Content.Contact)
	case m.phase == phaseStart && m.startButton().Contains(x, y):
		return m.startGame()
	}
	return m, nil
}

// resize follows the terminal size. The game keeps its state.
func (m *Model) resize(width, height int) {
	m.runtime.ScreenW = width
	m.runtime.ScreenH = height
	m.screen.Resize(width, max(height-1, 1))
	m.help.Width = width
}

// startGame hides the start screen, resets the game, requests its assets
// and starts the tick loop. Later calls do nothing.
func (m Model) startGame() (tea.Model, tea.Cmd) {
	if m.phase == phasePlaying {
		return m, nil
	}
	m.phase = phasePlaying

	m.game.Reset(m.runtime)
	if r, ok := m.game.(configReporter); ok {
		if err := r.ConfigError(); err != nil {
			m.logger.Warn("game config unusable, using defaults", "error", err)
		}
	}
	m.state = m.game.State()
	m.drainEvents()

	cmds := []tea.Cmd{tickCmd(m.runtime.TickRate)}
	for _, a := range m.game.Assets() {
		cmds = append(cmds, loadAssetCmd(m.ctx, a))
	}
	m.logger.Info("game started", "player", m.player, "seed", m.runtime.Seed)
	return m, tea.Batch(cmds...)
}

// loadAssetCmd loads an asset off the update loop.
func loadAssetCmd(ctx context.Context, a core.Asset) tea.Cmd {
	return func() tea.Msg {
		data, err := a.Load(ctx)
		return assetMsg{name: a.Name, data: data, err: err}
	}
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.tick++
	m.hold.expire(m.tick, &m.input)

	result := m.game.Step(m.input)
	m.state = result.State

	// Clear input for next frame
	m.input.Clear()

	m.drainEvents()

	return m, tickCmd(m.runtime.TickRate)
}

// drainEvents shows popups, logs and records the game's display events.
func (m *Model) drainEvents() {
	for _, e := range m.game.Events() {
		switch e := e.(type) {
		case core.LevelStartedEvent:
			m.logger.Debug("level started", "level", e.Level)

		case core.CollisionEvent:
			m.logger.Info("collision", "level", e.Level)
			m.openPopup(e.Popup)

		case core.LevelCompletedEvent:
			m.logger.Info("level completed",
				"level", e.Level,
				"ticks", e.Ticks,
				"distance", e.Distance,
				"collisions", e.Collisions,
			)
			m.openPopup(e.Popup)
			m.saveResult(e)

		case core.AdvancedEvent:
			m.logger.Debug("advanced", "from", e.From, "to", e.To, "manual", e.Manual)
			if e.Manual {
				m.markManualAdvance()
			}
			m.lastResult = 0
		}
	}
}

// saveResult records a level completion. Best effort: the game continues
// regardless.
func (m *Model) saveResult(e core.LevelCompletedEvent) {
	if m.store == nil {
		return
	}

	id, err := m.store.SaveLevelResult(storage.LevelResult{
		Player:     m.player,
		Level:      e.Level,
		Ticks:      e.Ticks,
		Distance:   e.Distance,
		Collisions: e.Collisions,
	})
	if err != nil {
		m.logger.Warn("could not save level result", "level", e.Level, "error", err)
		return
	}
	m.lastResult = id
}

func (m *Model) markManualAdvance() {
	if m.store == nil || m.lastResult == 0 {
		return
	}
	if err := m.store.MarkManualAdvance(m.lastResult); err != nil {
		m.logger.Warn("could not update level result", "error", err)
	}
}

// openPopup shows a popup, replacing any popup already shown.
func (m *Model) openPopup(p core.Popup) {
	m.popup = &p
}

func (m Model) introLayout() popupLayout {
	return layoutPopup(m.cfg.Content.Intro, "Start", m.screen.Width(), m.screen.Height())
}

func (m Model) popupLayout() popupLayout {
	return layoutPopup(*m.popup, "OK", m.screen.Width(), m.screen.Height())
}

// openScores switches to the scoreboard.
func (m *Model) openScores() {
	m.scoreboard = NewScoreboardModel(m.store, m.runtime.ScreenW, m.runtime.ScreenH, m.runtime.TickRate)
	m.scoreboard.embedded = true
	m.phase = phaseScores
}

// updateScores forwards messages to the scoreboard until it is left.
func (m Model) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(wsm.Width, wsm.Height)
	}

	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.phase = phaseStart
		return m, nil
	}
	return m, cmd
}

// compose draws the current session state into the screen buffer.
func (m Model) compose() {
	if m.phase == phasePlaying {
		m.game.Render(m.screen)
	} else {
		m.renderStart(m.screen)
	}

	c := m.contactRect()
	m.screen.DrawTextColored(c.X, c.Y, contactLabel, core.ColorAccent)

	switch {
	case m.introOpen:
		m.introLayout().draw(m.screen)
	case m.popup != nil:
		m.popupLayout().draw(m.screen)
	}
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	m.compose()

	dir := config.UserPath("screenshots")
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.phase == phaseScores {
		return m.scoreboard.View()
	}

	m.compose()
	bar := m.help.View(m.keys.helpFor(m.phase, m.introOpen, m.popup != nil))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(bar)
}

// IntroOpen reports whether the intro modal is shown.
func (m Model) IntroOpen() bool {
	return m.introOpen
}

// Popup returns the popup currently shown, if any.
func (m Model) Popup() (core.Popup, bool) {
	if m.popup == nil {
		return core.Popup{}, false
	}
	return *m.popup, true
}

// Started reports whether the game has been started.
func (m Model) Started() bool {
	return m.phase == phasePlaying
}

// Run starts the Bubble Tea program for a local session.
func Run(game registry.Game, rt core.RuntimeConfig, opts Options) error {
	model := NewModel(game, rt, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks on the intro, popups and buttons
	)

	_, err := p.Run()
	return err
}
