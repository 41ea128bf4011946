package viz

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/pyramid/internal/dataset"
	"github.com/san-kum/pyramid/internal/loader"
	"github.com/san-kum/pyramid/internal/playback"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

const census = `Nacional
,Censo,,Conteo
,1990,1995,2000
0-4,100,120,140
5-9,90,100,110
Mujeres
0-4,95,115,150
5-9,85,99,105
`

type mapLoader map[string]string

func (l mapLoader) LoadText(_ context.Context, name string) (string, error) {
	text, ok := l[name]
	if !ok {
		return "", &loader.LoadError{Name: name, Err: os.ErrNotExist}
	}
	return text, nil
}

type fakeTimer struct{ stopped bool }

func (t *fakeTimer) Stop() { t.stopped = true }

type fakeScheduler struct{ timers []*fakeTimer }

func (s *fakeScheduler) Every(time.Duration) playback.Timer {
	t := &fakeTimer{}
	s.timers = append(s.timers, t)
	return t
}

func newTestModel(names ...string) (Model, *fakeScheduler) {
	sched := &fakeScheduler{}
	m := NewModel(sched, Options{
		Names:  names,
		Loader: mapLoader{"census": census, "bad": "only\ntwo"},
		Speed:  4,
		Locale: "en",
	})
	return m, sched
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

// ready runs the pending load synchronously.
func ready(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, m.loadCmd()())
	return m
}

func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	m, _ = update(t, m, k)
	return m
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLoadingThenReady(t *testing.T) {
	m, _ := newTestModel("census")

	if snap := m.Snapshot(); snap.State != Loading || snap.Dataset != nil {
		t.Fatalf("expected loading snapshot, got %+v", snap)
	}
	if !strings.Contains(m.View(), "loading census") {
		t.Errorf("loading view missing name:\n%s", m.View())
	}
	if m.Init() == nil {
		t.Error("expected Init to start the load")
	}

	m = ready(t, m)
	snap := m.Snapshot()
	if snap.State != Ready || snap.Frame != 0 || snap.Playing {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.Dataset.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", snap.Dataset.Frames())
	}

	view := m.View()
	for _, want := range []string{"Nacional", "1990", "Censo", "0-4", "5-9"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestOldestGroupOnTop(t *testing.T) {
	m, _ := newTestModel("census")
	m = ready(t, m)
	pyr := m.pyramid()
	if strings.Index(pyr, "5-9") > strings.Index(pyr, "0-4") {
		t.Errorf("expected 5-9 above 0-4:\n%s", pyr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		want error
	}{
		{"missing", loader.ErrLoadFailure},
		{"bad", dataset.ErrMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(tt.name)
			m = ready(t, m)

			snap := m.Snapshot()
			if snap.State != Error || !errors.Is(snap.Err, tt.want) {
				t.Fatalf("expected error state wrapping %v, got %+v", tt.want, snap)
			}
			if snap.Dataset != nil {
				t.Error("error state must not keep a dataset")
			}
			if !strings.Contains(m.View(), "error:") {
				t.Errorf("error view missing message:\n%s", m.View())
			}

			m = press(t, m, keySpace)
			if m.Snapshot().Playing {
				t.Error("keys must be ignored in the error state")
			}
		})
	}
}

func TestNoDatasets(t *testing.T) {
	m := NewModel(&fakeScheduler{}, Options{})
	if m.Snapshot().State != Error || !errors.Is(m.Snapshot().Err, ErrNoDatasets) {
		t.Errorf("expected ErrNoDatasets, got %+v", m.Snapshot())
	}
	if m.Init() != nil {
		t.Error("expected no command without datasets")
	}
}

func TestKeysBeforeReady(t *testing.T) {
	m, sched := newTestModel("census")
	for _, k := range []tea.KeyMsg{keySpace, keyUp, keyDown, keyLeft} {
		m = press(t, m, k)
	}
	if len(sched.timers) != 0 || m.Snapshot().Frame != 0 || m.Snapshot().State != Loading {
		t.Errorf("expected keys ignored while loading, got %+v", m.Snapshot())
	}
}

func TestPlayback(t *testing.T) {
	m, sched := newTestModel("census")
	m = ready(t, m)

	m = press(t, m, keySpace)
	if !m.Snapshot().Playing || len(sched.timers) != 1 {
		t.Fatalf("expected one armed timer, got %d", len(sched.timers))
	}
	timer := m.ctrl.Armed()

	m, cmd := update(t, m, FrameTickMsg{Timer: timer})
	if m.Snapshot().Frame != 1 {
		t.Errorf("expected frame 1, got %d", m.Snapshot().Frame)
	}
	if cmd == nil {
		t.Error("expected animation to start on frame change")
	}

	m, _ = update(t, m, FrameTickMsg{Timer: timer})
	m, _ = update(t, m, FrameTickMsg{Timer: timer})
	if snap := m.Snapshot(); snap.Frame != 2 || snap.Playing {
		t.Errorf("expected stop at last frame, got %+v", snap)
	}
	if !sched.timers[0].stopped {
		t.Error("expected timer cancelled at the end")
	}
}

func TestStepKeys(t *testing.T) {
	m, _ := newTestModel("census")
	m = ready(t, m)

	m = press(t, m, keyUp)
	if f := m.Snapshot().Frame; f != 2 {
		t.Errorf("up from frame 0: expected 2, got %d", f)
	}
	m = press(t, m, keyDown)
	if f := m.Snapshot().Frame; f != 0 {
		t.Errorf("down from last frame: expected 0, got %d", f)
	}

	m = press(t, m, keySpace)
	m = press(t, m, keyLeft)
	if m.Snapshot().Playing {
		t.Error("left must stop playback")
	}
	if f := m.Snapshot().Frame; f != 0 {
		t.Errorf("left must not move the frame, got %d", f)
	}
}

func TestIgnoresForeignTicks(t *testing.T) {
	m, _ := newTestModel("census")
	m = ready(t, m)

	m = press(t, m, keySpace)
	old := m.ctrl.Armed()
	m = press(t, m, keySpace)

	m, _ = update(t, m, FrameTickMsg{Timer: old})
	m, _ = update(t, m, FrameTickMsg{Timer: &fakeTimer{}})
	if f := m.Snapshot().Frame; f != 0 {
		t.Errorf("expected stale ticks ignored, got frame %d", f)
	}
}

func TestSpeedAndRepeat(t *testing.T) {
	m, sched := newTestModel("census")
	m = ready(t, m)

	m = press(t, m, runes("+"))
	if s := m.ctrl.Speed(); s != 8 {
		t.Errorf("expected speed 8, got %v", s)
	}
	for i := 0; i < 10; i++ {
		m = press(t, m, runes("-"))
	}
	if s := m.ctrl.Speed(); s != minSpeed {
		t.Errorf("expected speed clamped to %v, got %v", minSpeed, s)
	}

	m = press(t, m, runes("r"))
	m = press(t, m, keySpace)
	timer := m.ctrl.Armed()
	for i := 0; i < 3; i++ {
		m, _ = update(t, m, FrameTickMsg{Timer: timer})
	}
	if snap := m.Snapshot(); snap.Frame != 0 || !snap.Playing {
		t.Errorf("expected wrap with repeat, got %+v", snap)
	}
	if len(sched.timers) != 1 {
		t.Errorf("expected a single timer, got %d", len(sched.timers))
	}
}

func TestStaleLoadDropped(t *testing.T) {
	m, _ := newTestModel("missing", "census")
	first := m.loadCmd()

	m = press(t, m, runes("n"))
	if m.Name() != "census" || m.Snapshot().State != Loading {
		t.Fatalf("expected census loading, got %q %v", m.Name(), m.Snapshot().State)
	}

	m, _ = update(t, m, first())
	if m.Snapshot().State != Loading {
		t.Fatalf("stale result must be dropped, got %+v", m.Snapshot())
	}

	m = ready(t, m)
	if m.Snapshot().State != Ready {
		t.Errorf("expected ready, got %+v", m.Snapshot())
	}
}

func TestNextDatasetStopsPlayback(t *testing.T) {
	m, sched := newTestModel("census", "bad")
	m = ready(t, m)
	m = press(t, m, keySpace)

	m = press(t, m, runes("n"))
	if m.Snapshot().Playing || !sched.timers[0].stopped {
		t.Error("switching datasets must cancel playback")
	}

	m = ready(t, m)
	if m.Snapshot().State != Error {
		t.Errorf("expected error for bad dataset, got %+v", m.Snapshot())
	}

	m = press(t, m, runes("n"))
	m = ready(t, m)
	if m.Snapshot().State != Ready || m.Name() != "census" {
		t.Errorf("expected census again, got %q %+v", m.Name(), m.Snapshot())
	}
}

func TestOpen(t *testing.T) {
	m, _ := newTestModel("census")
	m = ready(t, m)

	m, cmd := m.Open("bad")
	if cmd == nil || m.Name() != "bad" || m.Snapshot().State != Loading {
		t.Fatalf("expected bad loading, got %q %+v", m.Name(), m.Snapshot())
	}
	m, _ = m.Open("census")
	if m.Name() != "census" || len(m.names) != 2 {
		t.Errorf("expected existing name reused, got %v", m.names)
	}
}

func TestAnimationSettles(t *testing.T) {
	m, _ := newTestModel("census")
	m = ready(t, m)

	var cmd tea.Cmd = func() tea.Msg { return nil }
	for i := 0; i < 1000 && cmd != nil; i++ {
		m, cmd = update(t, m, animMsg(time.Now()))
	}
	if cmd != nil {
		t.Fatal("animation never settled")
	}

	ds := m.Snapshot().Dataset
	for i, b := range m.right {
		want := ds.Right[i].Values[0] / ds.MaxValue
		if b.pos != want {
			t.Errorf("right bar %d: expected %v, got %v", i, want, b.pos)
		}
	}
	for i, b := range m.left {
		if b.pos <= 0 {
			t.Errorf("left bar %d should be positive, got %v", i, b.pos)
		}
	}
}

func TestThemeAndHelpKeys(t *testing.T) {
	m, _ := newTestModel("census")
	m = press(t, m, runes("t"))
	if m.theme.Name != ThemeNames()[1] {
		t.Errorf("expected second theme, got %s", m.theme.Name)
	}
	m = press(t, m, runes("?"))
	if !m.help.ShowAll {
		t.Error("expected full help")
	}
}

func TestQuit(t *testing.T) {
	m, sched := newTestModel("census")
	m = ready(t, m)
	m = press(t, m, keySpace)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !sched.timers[0].stopped {
		t.Error("quit must cancel the timer")
	}
}
