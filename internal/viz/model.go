package viz

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pyramid/internal/dataset"
	"github.com/san-kum/pyramid/internal/loader"
	"github.com/san-kum/pyramid/internal/playback"
)

const (
	width    = 80
	height   = 24
	animFPS  = 30
	minSpeed = 0.25
	maxSpeed = 64
	// settled is the distance below which a bar snaps to its target.
	settled = 1e-3
)

var ErrNoDatasets = errors.New("viz: no datasets to show")

type DataState int

const (
	Loading DataState = iota
	Ready
	Error
)

func (s DataState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("DataState(%d)", int(s))
	}
}

// Snapshot is what the view renders from.
type Snapshot struct {
	State   DataState
	Frame   int
	Playing bool
	Dataset *dataset.Dataset
	Err     error
}

// FrameTickMsg carries one playback timer tick into the program.
type FrameTickMsg struct {
	Timer playback.Timer
}

type loadedMsg struct {
	seq  int
	name string
	ds   *dataset.Dataset
	err  error
}

type animMsg time.Time

type Options struct {
	Names   []string
	Loader  loader.Loader
	Dialect dataset.Dialect
	Speed   float64
	Repeat  bool
	Theme   string
	Locale  string
}

// bar is one spring-animated bar length, as a fraction of the axis.
type bar struct {
	pos, vel, target float64
}

// Model is the pyramid view. All state changes happen in Update.
type Model struct {
	names   []string
	current int
	load    loader.Loader
	dialect dataset.Dialect

	ctrl  *playback.Controller
	state DataState
	ds    *dataset.Dataset
	err   error
	seq   int

	left, right []bar
	spring      harmonica.Spring
	animating   bool

	spinner spinner.Model
	help    help.Model
	keys    keyMap
	theme   Theme
	styles  styles
	num     Formatter

	width, height int
}

// NewModel builds a view in the Loading state for opts.Names[0]. Ticks
// from timers made by sched must come back as FrameTickMsg.
func NewModel(sched playback.Scheduler, opts Options) Model {
	dialect := opts.Dialect
	if dialect.Sentinel == "" {
		dialect = dataset.DefaultDialect()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	theme := GetTheme(opts.Theme)
	m := Model{
		names:   append([]string(nil), opts.Names...),
		load:    opts.Loader,
		dialect: dialect,
		ctrl:    playback.NewController(sched, playback.Options{Speed: opts.Speed, Repeat: opts.Repeat}),
		state:   Loading,
		seq:     1,
		spring:  harmonica.NewSpring(harmonica.FPS(animFPS), 6.0, 1.0),
		spinner: sp,
		help:    help.New(),
		keys:    defaultKeyMap(),
		theme:   theme,
		styles:  newStyles(theme),
		num:     NewFormatter(opts.Locale),
		width:   width,
		height:  height,
	}
	if len(m.names) == 0 || m.load == nil {
		m.state, m.err = Error, ErrNoDatasets
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.state != Loading {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) Snapshot() Snapshot {
	return Snapshot{
		State:   m.state,
		Frame:   m.ctrl.Frame(),
		Playing: m.ctrl.Playing(),
		Dataset: m.ds,
		Err:     m.err,
	}
}

// Name returns the dataset being shown or loaded.
func (m Model) Name() string {
	if len(m.names) == 0 {
		return ""
	}
	return m.names[m.current]
}

// Close cancels playback. It is safe to call more than once.
func (m Model) Close() { m.ctrl.Close() }

// Open starts loading name, adding it to the dataset list if needed. Any
// load still in flight is superseded.
func (m Model) Open(name string) (Model, tea.Cmd) {
	idx := -1
	for i, n := range m.names {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.names = append(m.names, name)
		idx = len(m.names) - 1
	}
	m.current = idx
	if m.load == nil {
		m.state, m.err = Error, ErrNoDatasets
		return m, nil
	}
	return m.reload()
}

func (m Model) reload() (Model, tea.Cmd) {
	m.seq++
	m.state, m.ds, m.err = Loading, nil, nil
	m.left, m.right, m.animating = nil, nil, false
	m.ctrl.Unload()
	return m, tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) loadCmd() tea.Cmd {
	seq, name, l, dialect := m.seq, m.Name(), m.load, m.dialect
	return func() tea.Msg {
		log.Printf("viz: loading %q (seq %d)", name, seq)
		text, err := l.LoadText(context.Background(), name)
		if err != nil {
			return loadedMsg{seq: seq, name: name, err: err}
		}
		ds, err := dialect.Build(text)
		return loadedMsg{seq: seq, name: name, ds: ds, err: err}
	}
}

func animTick() tea.Cmd {
	return tea.Tick(time.Second/animFPS, func(t time.Time) tea.Msg { return animMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		if m.state != Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case loadedMsg:
		return m.loaded(msg)
	case FrameTickMsg:
		if m.ctrl.Tick(msg.Timer) {
			return m, m.retarget()
		}
	case animMsg:
		return m, m.stepAnimation()
	}
	return m, nil
}

func (m Model) loaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq {
		log.Printf("viz: dropping stale load of %q (seq %d, want %d)", msg.name, msg.seq, m.seq)
		return m, nil
	}
	if msg.err != nil {
		log.Printf("viz: load of %q failed: %v", msg.name, msg.err)
		m.state, m.ds, m.err = Error, nil, msg.err
		m.ctrl.Unload()
		return m, nil
	}

	ds := msg.ds
	log.Printf("viz: loaded %q: %d frames, %d+%d groups", msg.name, ds.Frames(), len(ds.Left), len(ds.Right))
	m.state, m.ds, m.err = Ready, ds, nil
	m.left = make([]bar, len(ds.Left))
	m.right = make([]bar, len(ds.Right))
	m.ctrl.Load(ds.Frames())
	return m, m.retarget()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Toggle):
		m.ctrl.Handle(playback.TogglePlay)
	case key.Matches(msg, m.keys.Back):
		m.ctrl.Handle(playback.StepBack)
		return m, m.retarget()
	case key.Matches(msg, m.keys.Forward):
		m.ctrl.Handle(playback.StepForward)
		return m, m.retarget()
	case key.Matches(msg, m.keys.Stop):
		m.ctrl.Handle(playback.CancelPlayback)
	case key.Matches(msg, m.keys.Faster):
		m.setSpeed(m.ctrl.Speed() * 2)
	case key.Matches(msg, m.keys.Slower):
		m.setSpeed(m.ctrl.Speed() / 2)
	case key.Matches(msg, m.keys.Repeat):
		m.ctrl.SetRepeat(!m.ctrl.Repeat())
	case key.Matches(msg, m.keys.Theme):
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
	case key.Matches(msg, m.keys.Next):
		if len(m.names) < 2 {
			return m, nil
		}
		m.current = (m.current + 1) % len(m.names)
		return m.reload()
	}
	return m, nil
}

func (m *Model) setSpeed(s float64) {
	s = min(max(s, minSpeed), maxSpeed)
	if err := m.ctrl.SetSpeed(s); err != nil {
		log.Printf("viz: %v", err)
	}
}

// retarget points every bar at the current frame and starts the
// animation loop if it is not running.
func (m *Model) retarget() tea.Cmd {
	if m.state != Ready || m.ds == nil {
		return nil
	}
	f := m.ctrl.Frame()
	for i, s := range m.ds.Left {
		m.left[i].target = m.fraction(-s.Values[f])
	}
	for i, s := range m.ds.Right {
		m.right[i].target = m.fraction(s.Values[f])
	}
	if m.animating {
		return nil
	}
	m.animating = true
	return animTick()
}

func (m *Model) fraction(v float64) float64 {
	if m.ds.MaxValue <= 0 {
		return 0
	}
	return v / m.ds.MaxValue
}

func (m *Model) stepAnimation() tea.Cmd {
	moving := false
	for _, bars := range [][]bar{m.left, m.right} {
		for i := range bars {
			b := &bars[i]
			b.pos, b.vel = m.spring.Update(b.pos, b.vel, b.target)
			if math.Abs(b.pos-b.target) < settled && math.Abs(b.vel) < settled {
				b.pos, b.vel = b.target, 0
				continue
			}
			moving = true
		}
	}
	if !moving {
		m.animating = false
		return nil
	}
	return animTick()
}

func (m Model) View() string {
	switch m.state {
	case Loading:
		return fmt.Sprintf("\n  %s loading %s…\n", m.spinner.View(), m.styles.value.Render(m.Name()))
	case Error:
		return "\n  " + m.styles.err.Render("error: "+m.err.Error()) + "\n\n  " +
			m.help.ShortHelpView([]key.Binding{m.keys.Next, m.keys.Quit}) + "\n"
	}
	return m.viewReady()
}

func (m Model) viewReady() string {
	ds, f := m.ds, m.ctrl.Frame()
	st := m.styles

	var s strings.Builder
	s.WriteString(st.title.Render(ds.Title) + "\n")
	s.WriteString(st.label.Render("time ") + st.value.Render(ds.Times[f]))
	if src := ds.Sources[f]; src != "" {
		s.WriteString(st.label.Render("   source ") + st.value.Render(src))
	}
	s.WriteString("\n\n")

	pyr := m.pyramid()
	s.WriteString(pyr + "\n")

	left, right := ds.Shares(f)
	shares := st.left.Render("◀ "+m.num.Percent(left)) + "   " +
		st.value.Render(m.num.Number(ds.Totals[f])) + "   " +
		st.right.Render(m.num.Percent(right)+" ▶")
	s.WriteString(center(shares, lipgloss.Width(pyr)) + "\n")
	s.WriteString(st.muted.Render(fmt.Sprintf("axis 0 – %s %s", m.num.Number(ds.Scaled(ds.MaxValue)), ds.Label)) + "\n\n")

	state := "■ stopped"
	if m.ctrl.Playing() {
		state = "▶ playing"
	}
	repeat := ""
	if m.ctrl.Repeat() {
		repeat = " ↻"
	}
	s.WriteString(st.status.Render(state) + st.label.Render(fmt.Sprintf("  ×%g%s  %d/%d  ", m.ctrl.Speed(), repeat, f+1, ds.Frames())))
	s.WriteString(st.label.Render(ProgressBar(f, ds.Frames(), 30)) + "\n")

	if ds.Frames() > 1 {
		totals := make([]float64, ds.Frames())
		for i, v := range ds.Totals {
			totals[i] = ds.Scaled(v)
		}
		chart := asciigraph.Plot(totals, asciigraph.Height(4), asciigraph.Width(min(max(m.width-12, 10), 60)), asciigraph.Caption(ds.Label))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	s.WriteString(m.help.View(m.keys))
	return s.String()
}

// pyramid renders one line per group with the last group on top.
func (m Model) pyramid() string {
	groups := m.ds.Groups()
	labelW := 2
	for _, g := range groups {
		labelW = max(labelW, lipgloss.Width(g)+2)
	}
	barW := max((m.width-labelW-4)/2, 10)

	lines := make([]string, 0, len(groups))
	for i := len(groups) - 1; i >= 0; i-- {
		l := padLeft(BarLeft(pos(m.left, i), barW), barW)
		r := padRight(Bar(pos(m.right, i), barW), barW)
		lines = append(lines, m.styles.left.Render(l)+m.styles.label.Render(center(groups[i], labelW))+m.styles.right.Render(r))
	}
	return strings.Join(lines, "\n")
}

func pos(bars []bar, i int) float64 {
	if i >= len(bars) {
		return 0
	}
	return bars[i].pos
}
