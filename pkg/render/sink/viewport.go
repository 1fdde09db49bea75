package sink

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Viewport maps plane coordinates into a width×height frame with a
// uniform scale, so the drawing keeps its aspect ratio. The plane's y axis
// points up; the frame's points down.
type Viewport struct {
	Width, Height float64

	scale  float64
	center r2.Vec
}

// Fit returns a viewport that shows every point in pts inside a
// width×height frame, leaving padding on each side. An empty or
// single-point set is centered at scale 1.
func Fit(pts []r2.Vec, width, height, padding float64) Viewport {
	vp := Viewport{Width: width, Height: height, scale: 1}
	if len(pts) == 0 {
		return vp
	}

	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = r2.Vec{X: min(lo.X, p.X), Y: min(lo.Y, p.Y)}
		hi = r2.Vec{X: max(hi.X, p.X), Y: max(hi.Y, p.Y)}
	}
	vp.center = r2.Scale(0.5, r2.Add(lo, hi))

	availW, availH := width-2*padding, height-2*padding
	spanX, spanY := hi.X-lo.X, hi.Y-lo.Y
	switch {
	case availW <= 0 || availH <= 0:
	case spanX == 0 && spanY == 0:
	case spanX == 0:
		vp.scale = availH / spanY
	case spanY == 0:
		vp.scale = availW / spanX
	default:
		vp.scale = min(availW/spanX, availH/spanY)
	}
	return vp
}

// Map converts a plane point into frame coordinates.
func (vp Viewport) Map(p r2.Vec) r2.Vec {
	d := r2.Scale(vp.scale, r2.Sub(p, vp.center))
	return r2.Vec{X: vp.Width/2 + d.X, Y: vp.Height/2 - d.Y}
}

// Unmap converts frame coordinates back into the plane.
func (vp Viewport) Unmap(f r2.Vec) r2.Vec {
	d := r2.Vec{X: f.X - vp.Width/2, Y: vp.Height/2 - f.Y}
	return r2.Add(vp.center, r2.Scale(1/vp.scale, d))
}

// Scale returns the number of frame units per plane unit.
func (vp Viewport) Scale() float64 { return vp.scale }
