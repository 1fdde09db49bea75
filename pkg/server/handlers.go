package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tutte/pkg/core/animate"
	"github.com/matzehuels/tutte/pkg/errors"
	"github.com/matzehuels/tutte/pkg/pipeline"
	"github.com/matzehuels/tutte/pkg/render/sink"
)

const maxBodyBytes = 1 << 20

type generateRequest struct {
	Nodes      int     `json:"nodes"`
	Seed       uint64  `json:"seed"`
	Radius     float64 `json:"radius"`
	RandomSeed bool    `json:"random_seed"`
}

type graphResponse struct {
	State string `json:"state"`
	sink.Snapshot
}

type statusResponse struct {
	State           string  `json:"state"`
	Ticks           int     `json:"ticks"`
	MaxDisplacement float64 `json:"max_displacement"`
	Planar          bool    `json:"planar"`
	Converged       bool    `json:"converged"`
	Revision        string  `json:"revision,omitempty"`
}

type boundaryRequest struct {
	Boundary *bool `json:"boundary"`
}

type boundaryResponse struct {
	ID       int  `json:"id"`
	Boundary bool `json:"boundary"`
}

type positionRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type errorResponse struct {
	Code  errors.Code `json:"code,omitempty"`
	Error string      `json:"error"`
}

func (svc *Service) generateGraph(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(r, &req); err != nil {
		svc.writeError(w, err)
		return
	}

	defaults := svc.config.Options
	opts := pipeline.Options{
		Nodes:      defaults.Nodes,
		Radius:     defaults.Radius,
		Seed:       defaults.Seed,
		RandomSeed: defaults.RandomSeed || req.RandomSeed,
		Logger:     svc.config.Logger,
	}
	if req.Nodes != 0 {
		opts.Nodes = req.Nodes
	}
	if req.Radius != 0 {
		opts.Radius = req.Radius
	}
	if req.Seed != 0 {
		opts.Seed = req.Seed
		opts.RandomSeed = false
	}

	g, seed, err := svc.runner.Generate(r.Context(), opts)
	if err != nil {
		svc.writeError(w, err)
		return
	}
	revision := svc.Load(g, seed)
	svc.config.Logger.Info("generated graph", "vertices", g.Len(), "edges", len(g.Edges), "seed", seed, "revision", revision)

	svc.writeGraph(w, http.StatusCreated)
}

func (svc *Service) getGraph(w http.ResponseWriter, _ *http.Request) {
	svc.writeGraph(w, http.StatusOK)
}

func (svc *Service) writeGraph(w http.ResponseWriter, status int) {
	g := svc.sched.Snapshot()
	if g == nil {
		svc.writeError(w, animate.ErrNoGraph)
		return
	}
	st := svc.sched.Status()
	revision, seed, _ := svc.meta()

	snap := sink.NewSnapshot(g,
		sink.WithJSONPlanar(st.Planar),
		sink.WithJSONRun(st.Ticks, st.Converged),
		sink.WithJSONSeed(seed),
		sink.WithJSONRevision(revision))
	writeJSON(w, status, graphResponse{State: st.State.String(), Snapshot: snap})
}

func (svc *Service) getGraphSVG(w http.ResponseWriter, r *http.Request) {
	g := svc.sched.Snapshot()
	if g == nil {
		svc.writeError(w, animate.ErrNoGraph)
		return
	}
	st := svc.sched.Status()

	opts := svc.config.Options
	opts.Formats = []string{pipeline.FormatSVG}
	artifacts, err := svc.runner.Render(r.Context(), g, opts, pipeline.RenderInfo{
		Embedding: pipeline.Embedding{Steps: st.Ticks, Planar: st.Planar},
	})
	if err != nil {
		svc.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[pipeline.FormatSVG])
}

func (svc *Service) getAnimation(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, svc.status())
}

func (svc *Service) startAnimation(w http.ResponseWriter, _ *http.Request) {
	_, _, ctx := svc.meta()
	if err := svc.sched.Start(ctx, nil, nil); err != nil {
		svc.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, svc.status())
}

func (svc *Service) stopAnimation(w http.ResponseWriter, _ *http.Request) {
	svc.sched.Stop()
	writeJSON(w, http.StatusOK, svc.status())
}

func (svc *Service) putBoundary(w http.ResponseWriter, r *http.Request) {
	id, err := vertexID(r)
	if err != nil {
		svc.writeError(w, err)
		return
	}
	var req boundaryRequest
	if err := decodeBody(r, &req); err != nil {
		svc.writeError(w, err)
		return
	}

	var now bool
	if req.Boundary == nil {
		now, err = svc.sched.ToggleBoundary(id)
	} else {
		now = *req.Boundary
		err = svc.sched.SetBoundary(id, now)
	}
	if err != nil {
		svc.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boundaryResponse{ID: id, Boundary: now})
}

func (svc *Service) putPosition(w http.ResponseWriter, r *http.Request) {
	id, err := vertexID(r)
	if err != nil {
		svc.writeError(w, err)
		return
	}
	var req positionRequest
	if err := decodeBody(r, &req); err != nil {
		svc.writeError(w, err)
		return
	}
	if req.X == nil || req.Y == nil {
		svc.writeError(w, errors.New(errors.ErrCodeInvalidInput, "position requires x and y"))
		return
	}

	if err := svc.sched.SetPosition(id, *req.X, *req.Y); err != nil {
		svc.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (svc *Service) resetBoundary(w http.ResponseWriter, _ *http.Request) {
	if err := svc.sched.ResetBoundary(); err != nil {
		svc.writeError(w, err)
		return
	}
	svc.writeGraph(w, http.StatusOK)
}

func (svc *Service) notFound(w http.ResponseWriter, r *http.Request) {
	svc.writeError(w, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
}

func (svc *Service) status() statusResponse {
	st := svc.sched.Status()
	revision, _, _ := svc.meta()
	return statusResponse{
		State:           st.State.String(),
		Ticks:           st.Ticks,
		MaxDisplacement: st.MaxDisplacement,
		Planar:          st.Planar,
		Converged:       st.Converged,
		Revision:        revision,
	}
}

func (svc *Service) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		svc.config.Logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Code: errors.GetCode(err), Error: errors.UserMessage(err)})
}

func vertexID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid vertex id %q", raw)
	}
	return id, nil
}

// decodeBody decodes an optional JSON body into v. An empty body leaves v
// untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !stderrors.Is(err, io.EOF) {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
