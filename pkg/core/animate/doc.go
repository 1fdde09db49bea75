// Package animate runs the relaxation engine on a fixed-period timer.
//
// A [Scheduler] is Idle or Running. [Scheduler.Start] clones the graph it
// is given and ticks every [Config.Period] (50ms by default): each tick
// takes one relaxation step, re-checks planarity and hands a snapshot to
// the caller's tick callback. The run ends when the step displacement falls
// below the engine's threshold, when [Scheduler.Stop] is called, or when the
// caller's context is cancelled. Starting again while running cancels the
// previous run first, so there is never more than one tick stream.
//
// The timer comes from a [github.com/juju/clock.Clock], which lets tests
// drive ticks with testclock instead of sleeping.
//
//	s, err := animate.New(animate.Config{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	err = s.Start(ctx, g, func(t animate.Tick) {
//	    render(t.Graph, t.Planar)
//	})
//	...
//	s.Wait(ctx)
package animate
