package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// CollinearEpsilon is the tolerance on the raw cross product below which
// three points are classified as collinear by [Orientation].
const CollinearEpsilon = 1e-10

// Turn classifies the orientation of an ordered point triple.
type Turn int

const (
	Collinear Turn = iota
	Clockwise
	CounterClockwise
)

func (t Turn) String() string {
	switch t {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	default:
		return "collinear"
	}
}

// Orientation classifies the triple (p, q, r) by the sign of
//
//	(q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
//
// Values within [CollinearEpsilon] of zero are [Collinear]. A positive
// value is [Clockwise] in a y-up coordinate system.
func Orientation(p, q, r r2.Vec) Turn {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	if math.Abs(val) < CollinearEpsilon {
		return Collinear
	}
	if val > 0 {
		return Clockwise
	}
	return CounterClockwise
}

// SegmentsCross reports whether segments p1q1 and p2q2 properly cross.
// Only the generic case is detected: collinear overlaps, where every
// orientation is [Collinear], count as non-crossing.
func SegmentsCross(p1, q1, p2, q2 r2.Vec) bool {
	o1 := Orientation(p1, q1, p2)
	o2 := Orientation(p1, q1, q2)
	o3 := Orientation(p2, q2, p1)
	o4 := Orientation(p2, q2, q1)
	return o1 != o2 && o3 != o4
}

// TriArea returns twice the signed area of triangle abc. It is positive
// when a, b, c are in counter-clockwise order.
func TriArea(a, b, c r2.Vec) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
