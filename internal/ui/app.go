package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/axedeck/internal/axeos"
	"github.com/five82/axedeck/internal/prefs"
	"github.com/five82/axedeck/internal/registry"
	"github.com/five82/axedeck/internal/shell"
	"github.com/five82/axedeck/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewMiners View = iota
	ViewLogs
	ViewTray
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    axeos.MinerClient
	Registry  *registry.Registry
	Store     *state.Store
	Guard     *shell.CloseGuard
	Logger    *zap.Logger
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
	LogPath   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    axeos.MinerClient
	registry  *registry.Registry
	store     *state.Store
	guard     *shell.CloseGuard
	logger    *zap.Logger
	prefsPath string
	logPath   string
	pollTick  time.Duration
	keys      keyMap
	now       func() time.Time

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	miners      []registry.Miner
	selectedRow int
	states      map[string]state.MinerState
	lastUpdated time.Time

	// Detail pane
	detailViewport viewport.Model
	showRaw        bool

	// Log view
	logViewport viewport.Model
	logLines    []string
	logErr      error

	// Action feedback
	status    statusLine
	pending   map[string]string // address -> in-flight action label
	lastAlert uint64

	showHelp bool
	modal    Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	guard := opts.Guard
	if guard == nil {
		guard = shell.NewCloseGuard(prefs.CloseAsk)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	m := Model{
		ctx:         ctx,
		client:      opts.Client,
		registry:    opts.Registry,
		store:       store,
		guard:       guard,
		logger:      logger,
		prefsPath:   prefsPath,
		logPath:     opts.LogPath,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		now:         time.Now,
		theme:       GetTheme(opts.ThemeName),
		currentView: ViewMiners,
		states:      map[string]state.MinerState{},
		pending:     map[string]string{},

		detailViewport: viewport.New(0, 0),
		logViewport:    viewport.New(0, 0),
	}
	m.reloadMiners()
	m.selectActive()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if miner, ok := m.selectedMiner(); ok {
		cmds = append(cmds, m.fetchTelemetryCmd(miner.Address))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeViewports()
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.states = map[string]state.MinerState(msg)
		m.lastUpdated = m.now()
		m.updateDetailViewport()
		m.collectAlerts()
		return m, nil

	case telemetryMsg:
		return m.handleTelemetry(msg)

	case restartMsg:
		return m.handleRestart(msg)

	case settingsMsg:
		return m.handleSettings(msg)

	case logsMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		m.updateLogViewport()
		return m, nil

	case addMinerMsg:
		return m.handleAddMiner(msg)

	case renameMinerMsg:
		return m.handleRenameMiner(msg)

	case settingsSubmitMsg:
		m.pending[msg.address] = "Applying settings"
		return m, m.applySettingsCmd(msg.address, msg.patch)

	case confirmedMsg:
		return m.handleConfirmed(msg)

	case closeChoiceMsg:
		return m.handleCloseChoice(msg)
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.currentView == ViewTray {
		return m.renderTray()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.currentView == ViewTray {
		return m.handleTrayKey(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Close):
		return m.requestClose()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		name := m.theme.Name
		m.savePrefs(func(p *prefs.Prefs) { p.Theme = name })
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case key.Matches(msg, m.keys.ResetClose):
		m.guard.Reset()
		m.savePrefs(func(p *prefs.Prefs) { p.CloseAction = prefs.CloseAsk })
		m.setStatus(statusInfo, "Close choice cleared; closing will ask again")
		return m, nil

	case key.Matches(msg, m.keys.ViewLogs):
		m.currentView = ViewLogs
		return m, m.readLogsCmd()

	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewMiners
		return m, nil
	}

	switch m.currentView {
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleMinersKey(msg)
	}
}

// handleTick processes the UI refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{fetchSnapshotCmd(m.store), tickCmd(m.pollTick)}
	if m.currentView == ViewLogs {
		cmds = append(cmds, m.readLogsCmd())
	}
	if m.status.text != "" && m.now().Sub(m.status.at) > StatusTTL {
		m.status = statusLine{}
	}
	return m, tea.Batch(cmds...)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	switch m.currentView {
	case ViewLogs:
		b.WriteString(m.renderLogs())
	default:
		b.WriteString(m.renderMiners())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

// savePrefs applies fn to the persisted preferences. Failures are logged
// and shown but never interrupt the UI.
func (m *Model) savePrefs(fn func(*prefs.Prefs)) {
	if err := prefs.Update(m.prefsPath, fn); err != nil {
		m.logger.Warn("save preferences failed", zap.String("path", m.prefsPath), zap.Error(err))
		m.setStatus(statusError, "save preferences: "+err.Error())
	}
}

func (m *Model) resizeViewports() {
	contentHeight := max(m.height-chromeRows, 3)
	_, detailWidth := m.paneWidths()
	m.detailViewport.Width = max(detailWidth-4, 1)
	m.detailViewport.Height = max(contentHeight-2, 1)
	m.logViewport.Width = max(m.width-4, 1)
	m.logViewport.Height = max(contentHeight-2, 1)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		// Cancelled by a signal; not an error for the caller.
		return nil
	}
	return err
}
