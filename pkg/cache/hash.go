package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"github.com/matzehuels/tutte/pkg/core/planar"
)

// ArtifactKeyOpts are the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Renderer string  `json:"renderer"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Labels   bool    `json:"labels"`

	// Planar is the planarity recorded by a relaxation run, or nil when
	// the renderer derives it from the drawing.
	Planar *bool `json:"planar,omitempty"`
}

// ArtifactKey returns the cache key for one rendering of the drawing
// identified by graphHash.
func ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// GraphHash digests everything about g that a renderer can see: vertex
// positions and boundary flags, and the edge list. Velocities are left
// out since they are not drawn. Positions are hashed bit for bit, so any
// movement at all yields a new hash.
func GraphHash(g *planar.Graph) string {
	h := sha256.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	put(uint64(len(g.Vertices)))
	for _, v := range g.Vertices {
		put(math.Float64bits(v.Pos.X))
		put(math.Float64bits(v.Pos.Y))
		if v.Boundary {
			put(1)
		} else {
			put(0)
		}
	}
	put(uint64(len(g.Edges)))
	for _, e := range g.Edges {
		put(uint64(e.From))
		put(uint64(e.To))
	}
	return hex.EncodeToString(h.Sum(nil))
}
