package errors

import (
	"math"
	"strings"
)

// MinVertices is the smallest vertex count that has a triangulation.
const MinVertices = 3

// MaxVertices bounds generation requests coming from untrusted callers
// (HTTP, config files). The verifier is O(E²) per tick, so larger graphs
// make every animation tick proportionally slower.
const MaxVertices = 5000

// ValidateVertexCount rejects vertex counts that cannot be triangulated or
// exceed [MaxVertices].
func ValidateVertexCount(n int) error {
	if n < MinVertices {
		return New(ErrCodeInvalidVertexCount, "need at least %d vertices, got %d", MinVertices, n)
	}
	if n > MaxVertices {
		return New(ErrCodeInvalidVertexCount, "too many vertices (max %d), got %d", MaxVertices, n)
	}
	return nil
}

// ValidateVertexID checks that id indexes a graph with n vertices.
func ValidateVertexID(id, n int) error {
	if id < 0 || id >= n {
		return New(ErrCodeUnknownVertex, "vertex %d does not exist (graph has %d vertices)", id, n)
	}
	return nil
}

// ValidateCoordinate rejects NaN and infinite coordinates.
// The relaxation never produces them from finite input, so they can only
// enter through the interactive position hook.
func ValidateCoordinate(x, y float64) error {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return New(ErrCodeInvalidInput, "coordinates must be finite, got (%v, %v)", x, y)
	}
	return nil
}

// ValidateFormat checks that format is one of the supported output formats.
func ValidateFormat(format string, supported ...string) error {
	for _, s := range supported {
		if format == s {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(supported, ", "))
}
