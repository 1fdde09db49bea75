package animate

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"

	"github.com/matzehuels/tutte/pkg/core/relax"
)

// DefaultPeriod is the wall-clock time between two ticks.
const DefaultPeriod = 50 * time.Millisecond

// Config defines the configuration of a [Scheduler].
type Config struct {
	// The time between subsequent ticks. If not specified, DefaultPeriod
	// is used.
	Period time.Duration

	// Options for the relaxation engine driven by the scheduler. Zero
	// fields select the engine defaults.
	Relax relax.Options

	// Planarity is re-checked every CheckEvery ticks; ticks in between
	// report the last result. The final tick of a run is always checked.
	// If not specified, every tick is checked.
	CheckEvery int

	// MaxTicks ends a run after this many ticks even if it has not
	// converged. Zero means no limit.
	MaxTicks int

	// A clock instance for generating tick events. If not specified, the
	// default wall-clock will be used instead.
	Clock clock.Clock

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *log.Logger
}

func (config *Config) validate() error {
	var err error

	if config.Period < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for tick period, must be > 0"))
	} else if config.Period == 0 {
		config.Period = DefaultPeriod
	}

	if config.CheckEvery < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for check interval, must be > 0"))
	} else if config.CheckEvery == 0 {
		config.CheckEvery = 1
	}

	if config.MaxTicks < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for max ticks, must be >= 0"))
	}

	if config.Relax.Momentum < 0 || config.Relax.Momentum >= 1 {
		err = multierror.Append(err, fmt.Errorf("invalid value for momentum, must be in (0, 1) or 0 for the default"))
	}

	if config.Relax.Gain < 0 || config.Relax.Gain > 1 {
		err = multierror.Append(err, fmt.Errorf("invalid value for gain, must be in (0, 1] or 0 for the default"))
	}

	if config.Relax.Threshold < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for convergence threshold, must be > 0 or 0 for the default"))
	}

	// Zero relax fields select the engine defaults; record them here so
	// callers see the effective values.
	config.Relax = relax.New(config.Relax).Options()

	if config.Clock == nil {
		config.Clock = clock.WallClock
	}

	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}

	return err
}
