package server

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"

	"github.com/matzehuels/tutte/pkg/cache"
	"github.com/matzehuels/tutte/pkg/pipeline"
)

// DefaultListenAddr is used when Config.ListenAddr is empty.
const DefaultListenAddr = ":8080"

// Config defines the configuration of a [Service].
type Config struct {
	// Address to listen for incoming requests. If not specified,
	// DefaultListenAddr is used.
	ListenAddr string

	// Defaults for generated graphs and for the animation. Requests may
	// override the generation fields.
	Options pipeline.Options

	// Cache for rendered drawings. If not specified, nothing is cached.
	Cache cache.Cache

	// A clock instance for the animation ticks. If not specified, the
	// default wall-clock will be used instead.
	Clock clock.Clock

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *log.Logger
}

func (config *Config) validate() error {
	var err error

	if config.ListenAddr == "" {
		config.ListenAddr = DefaultListenAddr
	}

	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Options.Logger == nil {
		config.Options.Logger = config.Logger
	}

	if oerr := config.Options.ValidateAndSetDefaults(); oerr != nil {
		err = multierror.Append(err, fmt.Errorf("invalid options: %w", oerr))
	}

	if config.Cache == nil {
		config.Cache = cache.NewNullCache()
	}

	if config.Clock == nil {
		config.Clock = clock.WallClock
	}

	return err
}
