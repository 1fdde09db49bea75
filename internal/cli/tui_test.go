package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/juju/clock/testclock"

	"github.com/matzehuels/tutte/pkg/core/animate"
	"github.com/matzehuels/tutte/pkg/pipeline"
)

func newTestAnimateModel(t *testing.T) animateModel {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	opts := pipeline.Options{Nodes: 12, Seed: 7}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	runner := pipeline.NewRunner(log.New(io.Discard))
	g, seed, err := runner.Generate(ctx, opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	acfg := opts.AnimateConfig()
	acfg.Clock = testclock.NewClock(time.Now())
	sched, err := animate.New(acfg)
	if err != nil {
		t.Fatalf("animate.New() error: %v", err)
	}
	sched.Load(g)
	t.Cleanup(func() { sched.Stop() })

	return newAnimateModel(ctx, sched, runner, opts, seed)
}

func press(m animateModel, key string) (animateModel, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(animateModel), cmd
}

func TestAnimateModelSelection(t *testing.T) {
	m := newTestAnimateModel(t)
	n := m.graph.Len()

	m, _ = press(m, "tab")
	if m.selected != 1 {
		t.Errorf("after tab selected = %d, want 1", m.selected)
	}
	m, _ = press(m, "shift+tab")
	m, _ = press(m, "shift+tab")
	if m.selected != n-1 {
		t.Errorf("after wrapping selected = %d, want %d", m.selected, n-1)
	}
}

func TestAnimateModelNudge(t *testing.T) {
	m := newTestAnimateModel(t)
	before := m.graph.Vertices[0].Pos

	m, _ = press(m, "up")
	after := m.sched.Snapshot().Vertices[0].Pos

	step := nudgeFraction * m.opts.Radius
	if after.X != before.X || after.Y != before.Y+step {
		t.Errorf("after up pos = %v, want (%v, %v)", after, before.X, before.Y+step)
	}
	if m.graph.Vertices[0].Pos != after {
		t.Error("model snapshot not refreshed after move")
	}
}

func TestAnimateModelBoundary(t *testing.T) {
	m := newTestAnimateModel(t)

	var interior = -1
	for _, v := range m.graph.Vertices {
		if !v.Boundary {
			interior = v.ID
			break
		}
	}
	if interior < 0 {
		t.Fatal("generated graph has no interior vertex")
	}
	for m.selected != interior {
		m, _ = press(m, "tab")
	}

	m, _ = press(m, "b")
	if !m.sched.Snapshot().Vertices[interior].Boundary {
		t.Fatalf("vertex %d not marked boundary after b", interior)
	}

	m, _ = press(m, "o")
	if m.sched.Snapshot().Vertices[interior].Boundary {
		t.Errorf("vertex %d still boundary after o", interior)
	}
	if m.graph.Vertices[interior].Boundary {
		t.Error("model snapshot not refreshed after reset")
	}
}

func TestAnimateModelStartStop(t *testing.T) {
	m := newTestAnimateModel(t)

	m, _ = press(m, "space")
	if got := m.sched.State(); got != animate.Running {
		t.Fatalf("after space state = %v, want Running", got)
	}
	if m.status.State != animate.Running {
		t.Errorf("model status = %v, want Running", m.status.State)
	}

	m, _ = press(m, "space")
	if got := m.sched.State(); got != animate.Idle {
		t.Errorf("after second space state = %v, want Idle", got)
	}
}

func TestAnimateModelTickHandoff(t *testing.T) {
	m := newTestAnimateModel(t)
	snap := m.sched.Snapshot()
	snap.Vertices[0].Pos.X += 1

	go m.onTick(animate.Tick{Graph: snap, N: 1, Planar: true})

	msg := m.Init()()
	tick, ok := msg.(tickMsg)
	if !ok {
		t.Fatalf("Init() command returned %T, want tickMsg", msg)
	}

	next, cmd := m.Update(tick)
	m = next.(animateModel)
	if cmd == nil {
		t.Error("tick did not re-arm the listener")
	}
	if m.graph != snap {
		t.Error("model did not adopt the tick's graph")
	}
	if !m.status.Planar {
		t.Error("model did not adopt the tick's planarity")
	}
}

func TestAnimateModelListenerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cmd := waitForTick(ctx, make(chan animate.Tick))
	cancel()
	if msg := cmd(); msg != nil {
		t.Errorf("cancelled listener returned %T, want nil", msg)
	}
}

func TestAnimateModelQuit(t *testing.T) {
	m := newTestAnimateModel(t)
	m, _ = press(m, "space")

	_, cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
	if got := m.sched.State(); got != animate.Idle {
		t.Errorf("state after quit = %v, want Idle", got)
	}
}

func TestAnimateModelView(t *testing.T) {
	m := newTestAnimateModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(animateModel)

	view := m.View()
	for _, want := range []string{appName, "idle", "seed 7", "vertex", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines != m.height {
		t.Errorf("View() has %d lines, want %d", lines, m.height)
	}
}

func TestCanvasLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           [][2]int
	}{
		{"horizontal", 0, 0, 3, 0, [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"vertical", 1, 3, 1, 0, [][2]int{{1, 0}, {1, 1}, {1, 2}, {1, 3}}},
		{"diagonal", 0, 0, 2, 2, [][2]int{{0, 0}, {1, 1}, {2, 2}}},
		{"point", 2, 2, 2, 2, [][2]int{{2, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCanvas(4, 4)
			c.line(tt.x0, tt.y0, tt.x1, tt.y1)

			set := 0
			for _, k := range c.cells {
				if k == cellEdge {
					set++
				}
			}
			if set != len(tt.want) {
				t.Errorf("line set %d cells, want %d", set, len(tt.want))
			}
			for _, p := range tt.want {
				if c.cells[p[1]*c.width+p[0]] != cellEdge {
					t.Errorf("cell %v not set", p)
				}
			}
		})
	}
}

func TestCanvasRanks(t *testing.T) {
	c := newCanvas(2, 1)
	c.set(0, 0, cellPlanar)
	c.set(0, 0, cellEdge)
	c.set(5, 5, cellEdge)

	if c.cells[0] != cellPlanar {
		t.Errorf("edge overwrote vertex: cell = %d", c.cells[0])
	}
	if got := c.String(); !strings.ContainsRune(got, glyphVertex) {
		t.Errorf("String() = %q, want a vertex glyph", got)
	}
}
