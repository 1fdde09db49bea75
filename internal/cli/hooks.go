package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// loggingHooks reports embedding and server events to the CLI logger at
// debug level. It is registered by --verbose.
type loggingHooks struct {
	logger *log.Logger
}

func newLoggingHooks(l *log.Logger) *loggingHooks {
	return &loggingHooks{logger: l.WithPrefix("hooks")}
}

func (h *loggingHooks) OnGenerate(_ context.Context, vertices, edges int, seed uint64, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("generate failed", "vertices", vertices, "seed", seed, "err", err)
		return
	}
	h.logger.Debug("generate", "vertices", vertices, "edges", edges, "seed", seed, "duration", d)
}

func (h *loggingHooks) OnTick(_ context.Context, tick int, maxDisp float64, planar bool) {
	h.logger.Debug("tick", "n", tick, "displacement", maxDisp, "planar", planar)
}

func (h *loggingHooks) OnConverged(_ context.Context, ticks int, planar bool, d time.Duration) {
	h.logger.Debug("converged", "ticks", ticks, "planar", planar, "duration", d)
}

func (h *loggingHooks) OnStop(_ context.Context, ticks int, reason string) {
	h.logger.Debug("stopped", "ticks", ticks, "reason", reason)
}

func (h *loggingHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *loggingHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}
