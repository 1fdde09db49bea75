package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/tutte/pkg/core/animate"
	"github.com/matzehuels/tutte/pkg/core/planar"
	"github.com/matzehuels/tutte/pkg/core/planarity"
	"github.com/matzehuels/tutte/pkg/pipeline"
	"github.com/matzehuels/tutte/pkg/render/sink"
)

// Panel styles
var (
	panelKeyStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	panelDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	panelErrStyle  = lipgloss.NewStyle().Foreground(colorRed)
	panelGoodStyle = lipgloss.NewStyle().Foreground(colorGreen)
)

const (
	// chromeLines is the number of terminal rows taken by the header and
	// footer around the canvas.
	chromeLines = 4

	// nudgeFraction is the share of the sampling radius an arrow key moves
	// the selected vertex.
	nudgeFraction = 0.05
)

// =============================================================================
// animate command
// =============================================================================

// animateCommand creates the animate command, an interactive terminal view
// of the relaxation.
func (c *CLI) animateCommand() *cobra.Command {
	var (
		flags     optionFlags
		autostart bool
	)

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Watch a graph relax in the terminal",
		Long: `Generate a random planar graph and relax it interactively.

Each tick takes one relaxation step and re-checks planarity. Interior
vertices turn pink once no edges cross.

Keys:
  space        start or stop the animation
  tab/shift+tab select the next or previous vertex
  arrows, hjkl move the selected vertex
  b            toggle the selected vertex's boundary flag
  o            restore the convex hull as the boundary
  g            generate a new graph
  q            quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolve(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runAnimate(cmd.Context(), opts, autostart)
		},
	}

	cmd.Flags().BoolVar(&autostart, "start", false, "start the animation right away")
	flags.addGenerateFlags(cmd.Flags())
	flags.addRelaxFlags(cmd.Flags())
	flags.addAnimateFlags(cmd.Flags())

	return cmd
}

func (c *CLI) runAnimate(ctx context.Context, opts pipeline.Options, autostart bool) error {
	runner := c.newRunner()
	g, seed, err := runner.Generate(ctx, opts)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	// The scheduler logs every run; keep it off the alternate screen.
	acfg := opts.AnimateConfig()
	acfg.Logger = nil
	sched, err := animate.New(acfg)
	if err != nil {
		return err
	}
	sched.Load(g)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newAnimateModel(ctx, sched, runner, opts, seed)
	if autostart {
		if err := sched.Start(ctx, nil, m.onTick); err != nil {
			return err
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	sched.Stop()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("animate: %w", err)
	}

	if fm, ok := final.(animateModel); ok {
		st := sched.Status()
		printInfo("Stopped after %d ticks", st.Ticks)
		printStats(fm.graph.Analyze(), fm.seed)
	}
	return nil
}

// =============================================================================
// animateModel
// =============================================================================

// tickMsg carries one scheduler tick into the bubbletea loop.
type tickMsg animate.Tick

// animateModel is the bubbletea model for the animate command. The
// scheduler owns the graph; the model keeps the latest snapshot for
// drawing and sends every edit through the scheduler.
type animateModel struct {
	ctx    context.Context
	sched  *animate.Scheduler
	runner *pipeline.Runner
	opts   pipeline.Options
	ticks  chan animate.Tick
	onTick func(animate.Tick)

	graph    *planar.Graph
	seed     uint64
	status   animate.Status
	frame    []r2.Vec
	selected int

	width, height int
	err           error
}

func newAnimateModel(ctx context.Context, sched *animate.Scheduler, runner *pipeline.Runner, opts pipeline.Options, seed uint64) animateModel {
	ticks := make(chan animate.Tick)
	m := animateModel{
		ctx:    ctx,
		sched:  sched,
		runner: runner,
		opts:   opts,
		ticks:  ticks,
		seed:   seed,
		width:  80,
		height: 24,
	}
	// Ticks are handed over one at a time so the scheduler never runs
	// ahead of the screen. Quitting cancels ctx, which releases a pending
	// send.
	m.onTick = func(t animate.Tick) {
		select {
		case ticks <- t:
		case <-ctx.Done():
		}
	}
	m.reload()
	return m
}

// reload takes a fresh snapshot and pins the frame to its positions, so
// later frames of the same graph share one coordinate system.
func (m *animateModel) reload() {
	m.refresh()
	m.frame = m.graph.Positions()
	m.selected = min(m.selected, m.graph.Len()-1)
}

// refresh takes a fresh snapshot after an edit. While idle, planarity is
// re-checked here since no tick will do it.
func (m *animateModel) refresh() {
	m.graph = m.sched.Snapshot()
	m.status = m.sched.Status()
	if m.status.State == animate.Idle {
		m.status.Planar = planarity.Graph(m.graph)
	}
}

func waitForTick(ctx context.Context, ticks <-chan animate.Tick) tea.Cmd {
	return func() tea.Msg {
		select {
		case t := <-ticks:
			return tickMsg(t)
		case <-ctx.Done():
			return nil
		}
	}
}

func (m animateModel) Init() tea.Cmd {
	return waitForTick(m.ctx, m.ticks)
}

func (m animateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.graph = msg.Graph
		m.status = m.sched.Status()
		m.status.Planar = msg.Planar
		return m, waitForTick(m.ctx, m.ticks)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		m.err = nil
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.sched.Stop()
			return m, tea.Quit
		case " ":
			m.toggleRun()
		case "tab":
			m.selected = (m.selected + 1) % m.graph.Len()
		case "shift+tab":
			m.selected = (m.selected - 1 + m.graph.Len()) % m.graph.Len()
		case "up", "k":
			m.nudge(0, 1)
		case "down", "j":
			m.nudge(0, -1)
		case "left", "h":
			m.nudge(-1, 0)
		case "right", "l":
			m.nudge(1, 0)
		case "b":
			if _, err := m.sched.ToggleBoundary(m.selected); err != nil {
				m.err = err
			}
			m.refresh()
		case "o":
			if err := m.sched.ResetBoundary(); err != nil {
				m.err = err
			}
			m.refresh()
		case "g":
			m.regenerate()
		}
	}
	return m, nil
}

func (m *animateModel) toggleRun() {
	if m.sched.State() == animate.Running {
		m.sched.Stop()
	} else if err := m.sched.Start(m.ctx, nil, m.onTick); err != nil {
		m.err = err
	}
	m.refresh()
}

func (m *animateModel) nudge(dx, dy float64) {
	step := nudgeFraction * m.opts.Radius
	pos := m.graph.Vertices[m.selected].Pos
	if err := m.sched.SetPosition(m.selected, pos.X+dx*step, pos.Y+dy*step); err != nil {
		m.err = err
	}
	m.refresh()
}

func (m *animateModel) regenerate() {
	opts := m.opts
	opts.RandomSeed = true
	g, seed, err := m.runner.Generate(m.ctx, opts)
	if err != nil {
		m.err = err
		return
	}
	m.sched.Load(g)
	m.seed = seed
	m.selected = 0
	m.reload()
}

func (m animateModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName))
	b.WriteString("  ")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	cv := newCanvas(m.width, max(m.height-chromeLines, 1))
	cv.draw(m.graph, m.viewport(), m.status.Planar, m.selected)
	b.WriteString(cv.String())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(panelErrStyle.Render(m.err.Error()))
	} else {
		b.WriteString(m.selectionLine())
	}
	b.WriteString("\n")
	b.WriteString(panelDimStyle.Render("space run  tab select  ←↑↓→ move  b boundary  o outer  g new  q quit"))

	return b.String()
}

func (m animateModel) statusLine() string {
	var parts []string
	if m.status.State == animate.Running {
		parts = append(parts, panelGoodStyle.Render("● running"))
	} else {
		parts = append(parts, panelDimStyle.Render("○ idle"))
	}
	parts = append(parts, fmt.Sprintf("tick %s", StyleNumber.Render(fmt.Sprint(m.status.Ticks))))
	if m.status.Ticks > 0 {
		parts = append(parts, fmt.Sprintf("Δ %s", StyleNumber.Render(fmt.Sprintf("%.2g", m.status.MaxDisplacement))))
	}
	if m.status.Planar {
		parts = append(parts, panelGoodStyle.Render("planar"))
	} else {
		parts = append(parts, StyleWarning.Render("crossing"))
	}
	if m.status.Converged {
		parts = append(parts, panelGoodStyle.Render("converged"))
	}
	parts = append(parts, panelDimStyle.Render(fmt.Sprintf("seed %d", m.seed)))
	return strings.Join(parts, "  ")
}

func (m animateModel) selectionLine() string {
	v := m.graph.Vertices[m.selected]
	kind := "interior"
	if v.Boundary {
		kind = "boundary"
	}
	return fmt.Sprintf("%s %s  %s  (%.1f, %.1f)",
		panelKeyStyle.Render("vertex"), StyleValue.Render(fmt.Sprint(v.ID)),
		panelDimStyle.Render(kind), v.Pos.X, v.Pos.Y)
}

// viewport maps the pinned frame onto the canvas area.
func (m animateModel) viewport() sink.Viewport {
	return frameViewport(m.frame, m.width, max(m.height-chromeLines, 1))
}
