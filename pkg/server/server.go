package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/tutte/pkg/buildinfo"
	"github.com/matzehuels/tutte/pkg/core/animate"
	"github.com/matzehuels/tutte/pkg/core/planar"
	"github.com/matzehuels/tutte/pkg/pipeline"
)

const (
	graphEndpoint          = "/graph"
	graphSVGEndpoint       = "/graph.svg"
	animationEndpoint      = "/animation"
	animationStartEndpoint = "/animation/start"
	animationStopEndpoint  = "/animation/stop"
	boundaryEndpoint       = "/vertices/{id}/boundary"
	positionEndpoint       = "/vertices/{id}/position"
	boundaryResetEndpoint  = "/boundary/reset"
)

// Service serves a single interactive embedding.
type Service struct {
	config Config
	router *chi.Mux
	runner *pipeline.Runner
	sched  *animate.Scheduler

	mu       sync.RWMutex
	revision string
	seed     uint64
	// runCtx parents every animation run; Run replaces it so shutdown
	// cancels the animation.
	runCtx context.Context
}

// New creates and returns a fully configured service instance.
func New(config Config) (*Service, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("server: config validation failed: %w", err)
	}

	acfg := config.Options.AnimateConfig()
	acfg.Clock = config.Clock
	acfg.Logger = config.Logger
	sched, err := animate.New(acfg)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	svc := &Service{
		config: config,
		router: chi.NewRouter(),
		runner: &pipeline.Runner{Logger: config.Logger, Cache: config.Cache},
		sched:  sched,
		runCtx: context.Background(),
	}

	svc.router.Use(middleware.Recoverer, svc.observe)

	svc.router.Post(graphEndpoint, svc.generateGraph)
	svc.router.Get(graphEndpoint, svc.getGraph)
	svc.router.Get(graphSVGEndpoint, svc.getGraphSVG)
	svc.router.Get(animationEndpoint, svc.getAnimation)
	svc.router.Post(animationStartEndpoint, svc.startAnimation)
	svc.router.Post(animationStopEndpoint, svc.stopAnimation)
	svc.router.Put(boundaryEndpoint, svc.putBoundary)
	svc.router.Put(positionEndpoint, svc.putPosition)
	svc.router.Post(boundaryResetEndpoint, svc.resetBoundary)

	svc.router.NotFound(svc.notFound)

	return svc, nil
}

// Name returns the name of the service.
func (svc *Service) Name() string { return "tutte" }

// Handler returns the service's HTTP handler.
func (svc *Service) Handler() http.Handler { return svc.router }

// Scheduler returns the scheduler driving the service's graph.
func (svc *Service) Scheduler() *animate.Scheduler { return svc.sched }

// Load replaces the served graph, as if it had been generated with seed.
func (svc *Service) Load(g *planar.Graph, seed uint64) string {
	svc.sched.Load(g)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.revision = uuid.NewString()
	svc.seed = seed
	return svc.revision
}

// Run executes the service and blocks until the context gets cancelled
// or an error occurs. A running animation is stopped on return.
func (svc *Service) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", svc.config.ListenAddr)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	svc.mu.Lock()
	svc.runCtx = ctx
	svc.mu.Unlock()
	defer svc.sched.Stop()

	srv := &http.Server{
		Addr:    svc.config.ListenAddr,
		Handler: svc.router,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	svc.config.Logger.Info("started service", "addr", l.Addr().String(), "version", buildinfo.Version)

	if err = srv.Serve(l); err == http.ErrServerClosed {
		// Server closed gracefully.
		err = nil
	}

	return err
}

func (svc *Service) meta() (revision string, seed uint64, ctx context.Context) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.revision, svc.seed, svc.runCtx
}
