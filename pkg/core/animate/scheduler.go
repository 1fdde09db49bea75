package animate

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/matzehuels/tutte/pkg/core/planar"
	"github.com/matzehuels/tutte/pkg/core/planarity"
	"github.com/matzehuels/tutte/pkg/core/relax"
	"github.com/matzehuels/tutte/pkg/errors"
	"github.com/matzehuels/tutte/pkg/observability"
)

// State is the scheduler's run state.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

var (
	// ErrStopped is the cancellation cause of a run ended by [Scheduler.Stop].
	ErrStopped = stderrors.New("animation stopped")

	// ErrRestarted is the cancellation cause of a run superseded by a new
	// [Scheduler.Start] or [Scheduler.Load].
	ErrRestarted = stderrors.New("animation restarted")

	// ErrNoGraph is returned when the scheduler has no graph to operate on.
	ErrNoGraph = errors.New(errors.ErrCodeNotFound, "no graph loaded")
)

// Tick is the state handed to the view layer after each step.
type Tick struct {
	// Graph is a snapshot owned by the receiver.
	Graph *planar.Graph

	// N counts the ticks of the current run, starting at 1.
	N int

	MaxDisplacement float64
	Planar          bool

	// Converged is set on the tick whose displacement fell below the
	// threshold. No tick follows it.
	Converged bool

	// Final is set on the last tick of a run, whether it converged or hit
	// the tick limit.
	Final bool
}

// Status summarizes the scheduler for display.
type Status struct {
	State           State
	Ticks           int
	MaxDisplacement float64
	Planar          bool
	Converged       bool
}

// Scheduler drives a relaxation engine at a fixed period until the drawing
// converges or the run is stopped. At most one run is active at a time.
//
// The scheduler owns its graph. Each tick steps and verifies it under the
// scheduler's lock and then delivers a cloned snapshot to the tick callback
// outside the lock, so callbacks may call back into the scheduler (Stop,
// Snapshot, the mutation methods) without deadlocking. Mutations are
// applied between ticks.
type Scheduler struct {
	cfg    Config
	engine *relax.Engine

	mu     sync.Mutex
	graph  *planar.Graph
	state  State
	run    uint64
	cancel context.CancelCauseFunc
	done   chan struct{}
	status Status
}

// New creates a scheduler with the given configuration.
func New(cfg Config) (*Scheduler, error) {
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "animation config validation failed")
	}
	done := make(chan struct{})
	close(done)
	return &Scheduler{
		cfg:    cfg,
		engine: relax.New(cfg.Relax),
		done:   done,
	}, nil
}

// Start begins a run from g, which is cloned; later changes to g are not
// seen. A nil g restarts from the scheduler's current graph, keeping its
// positions and velocities. A run that is already active is cancelled
// first.
//
// onTick, if not nil, is called from the run's goroutine after every tick.
// The run also ends when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context, g *planar.Graph, onTick func(Tick)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g != nil {
		s.graph = g.Clone()
	}
	if s.graph == nil {
		return ErrNoGraph
	}
	s.cancelLocked(ErrRestarted)

	runCtx, cancel := context.WithCancelCause(ctx)
	s.run++
	s.state = Running
	s.cancel = cancel
	s.done = make(chan struct{})
	s.status = Status{State: Running, Planar: planarity.Graph(s.graph)}

	s.cfg.Logger.Info("animation started",
		"vertices", s.graph.Len(), "edges", len(s.graph.Edges), "period", s.cfg.Period)
	go s.loop(runCtx, s.run, onTick, s.done)
	return nil
}

// Stop ends the active run, if any, and reports whether one was running.
// No further tick starts after Stop returns. The current positions are
// kept.
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked(ErrStopped)
}

// Load replaces the scheduler's graph with a clone of g, stopping any
// active run.
func (s *Scheduler) Load(g *planar.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(ErrRestarted)
	s.graph = g.Clone()
	s.status = Status{Planar: g != nil && planarity.Graph(g)}
}

// cancelLocked moves to Idle. The caller holds s.mu.
func (s *Scheduler) cancelLocked(cause error) bool {
	if s.state != Running {
		return false
	}
	s.cancel(cause)
	s.state = Idle
	s.status.State = Idle
	s.run++
	return true
}

// State returns the current run state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns the state and the results of the latest tick.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Done returns a channel that is closed when the current run's goroutine
// has exited. It is already closed when no run was ever started.
func (s *Scheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Wait blocks until the current run ends or ctx is cancelled.
func (s *Scheduler) Wait(ctx context.Context) error {
	select {
	case <-s.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a clone of the current graph, or nil if none is loaded.
func (s *Scheduler) Snapshot() *planar.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Clone()
}

// SetBoundary sets the boundary flag of vertex id.
func (s *Scheduler) SetBoundary(id int, boundary bool) error {
	return s.mutate(func(g *planar.Graph) error {
		if err := errors.ValidateVertexID(id, g.Len()); err != nil {
			return err
		}
		return g.SetBoundary(id, boundary)
	})
}

// ToggleBoundary flips the boundary flag of vertex id and returns the new
// value.
func (s *Scheduler) ToggleBoundary(id int) (bool, error) {
	var now bool
	err := s.mutate(func(g *planar.Graph) error {
		if err := errors.ValidateVertexID(id, g.Len()); err != nil {
			return err
		}
		var err error
		now, err = g.ToggleBoundary(id)
		return err
	})
	return now, err
}

// SetPosition moves vertex id to (x, y). Its velocity is kept; the
// planarity signal updates on the next tick.
func (s *Scheduler) SetPosition(id int, x, y float64) error {
	return s.mutate(func(g *planar.Graph) error {
		if err := errors.ValidateVertexID(id, g.Len()); err != nil {
			return err
		}
		if err := errors.ValidateCoordinate(x, y); err != nil {
			return err
		}
		return g.SetPosition(id, x, y)
	})
}

// ResetBoundary restores the generator's hull as the boundary set.
func (s *Scheduler) ResetBoundary() error {
	return s.mutate(func(g *planar.Graph) error {
		g.ResetBoundary()
		return nil
	})
}

func (s *Scheduler) mutate(fn func(*planar.Graph) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graph == nil {
		return ErrNoGraph
	}
	return fn(s.graph)
}

func (s *Scheduler) loop(ctx context.Context, run uint64, onTick func(Tick), done chan struct{}) {
	defer close(done)

	start := s.cfg.Clock.Now()
	for {
		timer := s.cfg.Clock.NewTimer(s.cfg.Period)
		select {
		case <-ctx.Done():
			timer.Stop()
			ticks := s.abandon(run)
			reason := context.Cause(ctx).Error()
			s.cfg.Logger.Debug("animation cancelled", "ticks", ticks, "reason", reason)
			observability.Embedding().OnStop(ctx, ticks, reason)
			return
		case <-timer.Chan():
		}

		t, ok := s.tick(run)
		if !ok {
			return
		}
		observability.Embedding().OnTick(ctx, t.N, t.MaxDisplacement, t.Planar)
		if onTick != nil {
			onTick(t)
		}

		if t.Converged {
			elapsed := s.cfg.Clock.Now().Sub(start)
			s.cfg.Logger.Info("animation converged",
				"ticks", t.N, "planar", t.Planar, "elapsed", elapsed.Round(time.Millisecond))
			observability.Embedding().OnConverged(ctx, t.N, t.Planar, elapsed)
			return
		}
		if t.Final {
			s.cfg.Logger.Info("animation reached tick limit",
				"ticks", t.N, "displacement", t.MaxDisplacement, "planar", t.Planar)
			observability.Embedding().OnStop(ctx, t.N, "tick limit reached")
			return
		}
	}
}

// abandon moves to Idle if run is still the active run, which happens when
// the caller's context is cancelled, and returns the ticks taken.
func (s *Scheduler) abandon(run uint64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == run && s.state == Running {
		s.state = Idle
		s.status.State = Idle
		s.run++
	}
	return s.status.Ticks
}

// tick performs one step of run. It reports false when run is no longer
// the active run.
func (s *Scheduler) tick(run uint64) (Tick, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.run != run || s.state != Running {
		return Tick{}, false
	}

	disp := s.engine.Step(s.graph)
	n := s.status.Ticks + 1
	converged := s.engine.Converged(disp)
	final := converged || (s.cfg.MaxTicks > 0 && n >= s.cfg.MaxTicks)

	isPlanar := s.status.Planar
	if final || n%s.cfg.CheckEvery == 0 {
		isPlanar = planarity.Graph(s.graph)
	}

	s.status = Status{
		State:           Running,
		Ticks:           n,
		MaxDisplacement: disp,
		Planar:          isPlanar,
		Converged:       converged,
	}
	if final {
		s.state = Idle
		s.status.State = Idle
		s.cancel(nil)
	}

	s.cfg.Logger.Debug("tick", "n", n, "displacement", disp, "planar", isPlanar)
	return Tick{
		Graph:           s.graph.Clone(),
		N:               n,
		MaxDisplacement: disp,
		Planar:          isPlanar,
		Converged:       converged,
		Final:           final,
	}, true
}
