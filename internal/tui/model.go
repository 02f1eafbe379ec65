package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hugo-lorenzo-mato/splitview/internal/clip"
	"github.com/hugo-lorenzo-mato/splitview/internal/events"
	"github.com/hugo-lorenzo-mato/splitview/internal/logging"
	"github.com/hugo-lorenzo-mato/splitview/internal/splitview"
)

const (
	// DefaultFrameInterval is how often the host size is polled.
	DefaultFrameInterval = 50 * time.Millisecond
	// DoubleClickInterval is the longest gap between two presses on the
	// same handle that still counts as a double-click.
	DoubleClickInterval = 400 * time.Millisecond

	scrollLines = 3
)

// Clipboard copies text somewhere the user can paste it from.
type Clipboard interface {
	Copy(text string) (clip.Result, error)
}

type click struct {
	view *splitview.View
	at   time.Time
}

// Model is the bubbletea model hosting one container.
type Model struct {
	container *splitview.Container
	scheduler *splitview.ManualScheduler
	host      *Host

	panes   map[string]*Pane
	content map[string]string
	initial map[string]float64
	theme   string
	styles  Styles

	focus     string // view id
	drag      *splitview.Drag
	hovered   *splitview.View
	lastClick click
	now       func() time.Time

	keys         KeyMap
	help         help.Model
	showHelp     bool
	showFullHelp bool
	input        textinput.Model
	commandMode  bool

	status    string
	statusErr bool

	bus           *events.EventBus
	adapter       *EventBusAdapter
	logs          <-chan LogMsg
	clipboard     Clipboard
	frameInterval time.Duration
	logger        *logging.Logger

	width  int
	height int
	ready  bool
}

// Option configures the model.
type Option func(*Model)

// WithEventBus connects the model to bus. Reset requests and external size
// changes arrive through it, and direction changes are published on it.
func WithEventBus(bus *events.EventBus) Option {
	return func(m *Model) {
		m.bus = bus
	}
}

// WithLogHandler shows records from h in the status bar.
func WithLogHandler(h *LogHandler) Option {
	return func(m *Model) {
		if h != nil {
			m.logs = h.Messages()
		}
	}
}

// WithClipboard sets where `y` copies sizes to.
func WithClipboard(c Clipboard) Option {
	return func(m *Model) {
		if c != nil {
			m.clipboard = c
		}
	}
}

// WithContent sets the markdown shown in each view, keyed by view name.
func WithContent(content map[string]string) Option {
	return func(m *Model) {
		for name, md := range content {
			m.content[name] = md
		}
	}
}

// WithInitialSizes sets view sizes, keyed by view name, applied once the
// container is first laid out.
func WithInitialSizes(sizes map[string]float64) Option {
	return func(m *Model) {
		for name, size := range sizes {
			m.initial[name] = size
		}
	}
}

// WithTheme selects the glamour style and color scheme.
func WithTheme(theme string) Option {
	return func(m *Model) {
		m.theme = theme
		m.styles = NewStyles(SchemeFor(theme))
	}
}

// WithShowHelp toggles the short help line under the status bar.
func WithShowHelp(show bool) Option {
	return func(m *Model) {
		m.showHelp = show
	}
}

// WithFrameInterval sets how often the host size is polled.
func WithFrameInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.frameInterval = d
		}
	}
}

// WithLogger sets the model logger.
func WithLogger(logger *logging.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a model for c. The container must use scheduler; the model
// advances it once per frame and mounts c on the first window size.
func New(c *splitview.Container, scheduler *splitview.ManualScheduler, opts ...Option) Model {
	input := textinput.New()
	input.Prompt = ":"
	input.Placeholder = "size <view> <cells> | direction [row|column] | reset [view] | remove <view>"

	m := Model{
		container:     c,
		scheduler:     scheduler,
		host:          NewHost(0, 0),
		panes:         make(map[string]*Pane),
		content:       make(map[string]string),
		initial:       make(map[string]float64),
		theme:         "dark",
		styles:        NewStyles(DarkScheme),
		now:           time.Now,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		showHelp:      true,
		input:         input,
		clipboard:     clip.New(),
		frameInterval: DefaultFrameInterval,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.input.PromptStyle = m.styles.Prompt
	if m.bus != nil {
		m.adapter = NewEventBusAdapter(m.bus)
	}
	return m
}

// Close releases the event bus subscription.
func (m Model) Close() {
	if m.adapter != nil {
		m.adapter.Close()
	}
}

// Init starts polling and listening.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.frameTick()}
	if m.adapter != nil {
		cmds = append(cmds, waitForEventBusUpdate(m.adapter))
	}
	if m.logs != nil {
		cmds = append(cmds, waitForLog(m.logs))
	}
	return tea.Batch(cmds...)
}

func (m Model) frameTick() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return FrameMsg{Time: t}
	})
}

func (m Model) footerHeight() int {
	if m.showHelp {
		return 2
	}
	return 1
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-2, 0)
		m.host.Set(msg.Width, msg.Height-m.footerHeight())
		if !m.ready {
			m.ready = true
			if err := m.container.Mount(m.host); err != nil {
				m.setError(err)
				return m, nil
			}
			m.applyInitialSizes()
			return m, nil
		}
		m.scheduler.Advance()
		return m, nil

	case FrameMsg:
		m.scheduler.Advance()
		if m.drag != nil && !m.drag.Active() {
			m.drag = nil
		}
		return m, m.frameTick()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case ResetRequestedMsg:
		m.container.Equalize()
		m.setStatus("views equalized")
		return m, m.waitForBus()

	case LayoutChangedMsg:
		return m, m.waitForBus()

	case ConfigReloadedMsg:
		m.setStatus("config reloaded: " + msg.Path)
		return m, m.waitForBus()

	case LogMsg:
		m.status = msg.Message
		m.statusErr = msg.Level == "error" || msg.Level == "warn"
		if m.logs == nil {
			return m, nil
		}
		return m, waitForLog(m.logs)

	case ClipboardMsg:
		if msg.Err != nil {
			m.setError(msg.Err)
			return m, nil
		}
		m.setStatus(msg.Result.String())
		return m, nil
	}

	return m, nil
}

func (m *Model) applyInitialSizes() {
	for _, v := range m.container.Views() {
		size, ok := m.initial[v.Name()]
		if !ok || size <= 0 {
			continue
		}
		if _, err := v.SetSize(size); err != nil {
			m.setError(err)
		}
	}
}

func (m Model) waitForBus() tea.Cmd {
	if m.adapter == nil {
		return nil
	}
	return waitForEventBusUpdate(m.adapter)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.commandMode {
		return m.handleCommandKey(msg)
	}
	if m.showFullHelp {
		if msg.Type == tea.KeyEsc || key.Matches(msg, m.keys.Help) {
			m.showFullHelp = false
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Focus):
		m.focusNext()

	case key.Matches(msg, m.keys.Left):
		m.nudge(splitview.Row, -1)

	case key.Matches(msg, m.keys.Right):
		m.nudge(splitview.Row, 1)

	case key.Matches(msg, m.keys.Up):
		m.nudge(splitview.Column, -1)

	case key.Matches(msg, m.keys.Down):
		m.nudge(splitview.Column, 1)

	case key.Matches(msg, m.keys.Direction):
		d := toggled(m.container.Direction())
		if err := m.setDirection(d); err != nil {
			m.setError(err)
		} else {
			m.setStatus("direction " + d.String())
		}

	case key.Matches(msg, m.keys.Copy):
		return m, m.copySizes()

	case key.Matches(msg, m.keys.Command):
		m.commandMode = true
		m.input.Reset()
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.showFullHelp = !m.showFullHelp
	}
	return m, nil
}

func (m Model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.commandMode = false
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		line := m.input.Value()
		m.commandMode = false
		m.input.Blur()
		status, err := m.execute(line)
		if err != nil {
			m.setError(err)
		} else if status != "" {
			m.setStatus(status)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// nudge grows or shrinks the focused view by one cell when axis is the
// layout direction, and scrolls its pane otherwise.
func (m *Model) nudge(axis splitview.Direction, delta int) {
	v := m.focusedView()
	if v == nil {
		return
	}
	if m.container.Direction() != axis {
		if axis == splitview.Column {
			p := m.pane(v)
			if delta < 0 {
				p.ScrollUp(1)
			} else {
				p.ScrollDown(1)
			}
		}
		return
	}
	if _, err := v.SetSize(float64(v.Size() + delta)); err != nil {
		m.setError(err)
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := splitview.Point{X: msg.X, Y: msg.Y}
	host := m.host.Size()
	if (p.X >= host.Width || p.Y >= host.Height) && m.drag == nil {
		return *m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.press(p)
		case tea.MouseButtonWheelUp:
			if v, ok := m.container.ViewAt(p); ok {
				m.pane(v).ScrollUp(scrollLines)
			}
		case tea.MouseButtonWheelDown:
			if v, ok := m.container.ViewAt(p); ok {
				m.pane(v).ScrollDown(scrollLines)
			}
		}

	case tea.MouseActionMotion:
		if m.drag != nil && m.drag.Active() {
			m.drag.Move(p)
			return *m, nil
		}
		m.hover(p)

	case tea.MouseActionRelease:
		m.endDrag()
	}
	return *m, nil
}

func (m *Model) press(p splitview.Point) {
	v, ok := m.container.HandleAt(p)
	if !ok {
		if v, ok := m.container.ViewAt(p); ok {
			m.focus = v.ID()
		}
		return
	}

	now := m.now()
	if m.lastClick.view == v && now.Sub(m.lastClick.at) <= DoubleClickInterval {
		m.lastClick = click{}
		m.endDrag()
		if err := m.requestReset(v); err != nil {
			m.setError(err)
		}
		return
	}
	m.lastClick = click{view: v, at: now}

	m.endDrag()
	d, err := m.container.BeginDrag(v, p)
	if err != nil {
		m.setError(err)
		return
	}
	m.drag = d
	m.logger.WithView(viewLabel(v)).Debug("drag started", "x", p.X, "y", p.Y)
}

func (m *Model) endDrag() {
	if m.drag == nil {
		return
	}
	m.drag.End()
	m.drag = nil
}

func (m *Model) hover(p splitview.Point) {
	v, ok := m.container.HandleAt(p)
	if m.hovered != nil && (!ok || v != m.hovered) {
		_ = m.container.SetHover(m.hovered, false)
		m.hovered = nil
	}
	if ok && m.hovered == nil {
		if err := m.container.SetHover(v, true); err == nil {
			m.hovered = v
		}
	}
}

// requestReset emits a request-reset for v. Without an event bus nothing
// would answer it, so the model equalizes directly.
func (m *Model) requestReset(v *splitview.View) error {
	if err := m.container.RequestReset(v); err != nil {
		return err
	}
	if m.adapter == nil {
		m.container.Equalize()
		m.setStatus("views equalized")
	}
	return nil
}

func (m *Model) setDirection(d splitview.Direction) error {
	previous := m.container.Direction()
	if err := m.container.SetDirection(d); err != nil {
		return err
	}
	if previous != d && m.bus != nil {
		m.bus.Publish(events.NewDirectionChangedEvent(m.container.ID(), d.String()))
	}
	return nil
}

func (m *Model) focusedView() *splitview.View {
	views := m.container.Views()
	for _, v := range views {
		if v.ID() == m.focus {
			return v
		}
	}
	if len(views) > 0 {
		return views[0]
	}
	return nil
}

func (m *Model) focusNext() {
	views := m.container.Views()
	if len(views) == 0 {
		return
	}
	current := m.focusedView()
	for i, v := range views {
		if v == current {
			m.focus = views[(i+1)%len(views)].ID()
			return
		}
	}
}

func (m *Model) pane(v *splitview.View) *Pane {
	p, ok := m.panes[v.ID()]
	if !ok {
		content, found := m.content[v.Name()]
		if !found {
			content = "# " + viewLabel(v) + "\n"
		}
		p = NewPane(content, m.theme)
		m.panes[v.ID()] = p
	}
	return p
}

func (m Model) copySizes() tea.Cmd {
	text := FormatSizes(m.container)
	cb := m.clipboard
	return func() tea.Msg {
		res, err := cb.Copy(text)
		return ClipboardMsg{Result: res, Err: err}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
	m.logger.Debug("tui command failed", "error", err)
}

// FormatSizes renders the linked views as "name=size" pairs.
func FormatSizes(c *splitview.Container) string {
	views := c.Views()
	parts := make([]string, len(views))
	for i, v := range views {
		parts[i] = fmt.Sprintf("%s=%d", viewLabel(v), v.Size())
	}
	return strings.Join(parts, " ")
}
