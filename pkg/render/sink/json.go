package sink

import (
	"encoding/json"

	"github.com/matzehuels/tutte/pkg/core/planar"
	"github.com/matzehuels/tutte/pkg/core/planarity"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	planar    *bool
	seed      uint64
	revision  string
	ticks     int
	converged bool
	indent    bool
}

// WithJSONPlanar records the given planarity instead of recomputing it.
func WithJSONPlanar(ok bool) JSONOption { return func(r *jsonRenderer) { r.planar = &ok } }

// WithJSONSeed records the generator seed, so the graph can be generated
// again.
func WithJSONSeed(seed uint64) JSONOption { return func(r *jsonRenderer) { r.seed = seed } }

// WithJSONRevision records an identifier for the graph instance.
func WithJSONRevision(id string) JSONOption { return func(r *jsonRenderer) { r.revision = id } }

// WithJSONRun records how many relaxation steps produced the drawing and
// whether they converged.
func WithJSONRun(ticks int, converged bool) JSONOption {
	return func(r *jsonRenderer) { r.ticks, r.converged = ticks, converged }
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// Snapshot is the JSON form of a drawing.
type Snapshot struct {
	Revision  string         `json:"revision,omitempty"`
	Seed      uint64         `json:"seed,omitempty"`
	Planar    bool           `json:"planar"`
	Ticks     int            `json:"ticks,omitempty"`
	Converged bool           `json:"converged,omitempty"`
	Vertices  []VertexJSON   `json:"vertices"`
	Edges     []EdgeJSON     `json:"edges"`
	Hull      []int          `json:"hull,omitempty"`
	Stats     planarStatJSON `json:"stats"`
}

type VertexJSON struct {
	ID       int     `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	Boundary bool    `json:"boundary"`
	Color    string  `json:"color"`
}

type EdgeJSON struct {
	From int `json:"from"`
	To   int `json:"to"`

	// Crossing marks edges that properly cross at least one other edge.
	Crossing bool `json:"crossing,omitempty"`
}

type planarStatJSON struct {
	Vertices   int `json:"vertices"`
	Edges      int `json:"edges"`
	Boundary   int `json:"boundary"`
	Interior   int `json:"interior"`
	Components int `json:"components"`
	Crossings  int `json:"crossings"`
}

// NewSnapshot builds the JSON form of g.
func NewSnapshot(g *planar.Graph, opts ...JSONOption) Snapshot {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	isPlanar := false
	if r.planar != nil {
		isPlanar = *r.planar
	} else {
		isPlanar = planarity.Graph(g)
	}

	stats := g.Analyze()
	crossings := planarity.Crossings(g.Positions(), g.Edges)
	out := Snapshot{
		Revision:  r.revision,
		Seed:      r.seed,
		Planar:    isPlanar,
		Ticks:     r.ticks,
		Converged: r.converged,
		Vertices:  make([]VertexJSON, len(g.Vertices)),
		Edges:     make([]EdgeJSON, len(g.Edges)),
		Hull:      g.Hull,
		Stats: planarStatJSON{
			Vertices:   stats.Vertices,
			Edges:      stats.Edges,
			Boundary:   stats.Boundary,
			Interior:   stats.Interior,
			Components: stats.Components,
			Crossings:  len(crossings),
		},
	}
	for i, v := range g.Vertices {
		out.Vertices[i] = VertexJSON{
			ID:       v.ID,
			X:        v.Pos.X,
			Y:        v.Pos.Y,
			VX:       v.Vel.X,
			VY:       v.Vel.Y,
			Boundary: v.Boundary,
			Color:    VertexColor(v, isPlanar),
		}
	}
	for i, e := range g.Edges {
		out.Edges[i] = EdgeJSON{From: e.From, To: e.To}
	}
	for _, c := range crossings {
		out.Edges[c.A].Crossing = true
		out.Edges[c.B].Crossing = true
	}
	return out
}

// RenderJSON serializes g as a [Snapshot]. The output is an export format;
// nothing in tutte reads it back.
func RenderJSON(g *planar.Graph, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	snap := NewSnapshot(g, opts...)
	if r.indent {
		return json.MarshalIndent(snap, "", "  ")
	}
	return json.Marshal(snap)
}
