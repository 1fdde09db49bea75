package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/tutte/pkg/core/planar"
	"github.com/matzehuels/tutte/pkg/render/sink"
)

const (
	glyphEdge     = '·'
	glyphVertex   = '●'
	glyphSelected = '◉'
)

var (
	styleCanvasEdge     = lipgloss.NewStyle().Foreground(colorDim)
	styleCanvasBoundary = lipgloss.NewStyle().Foreground(colorBoundary)
	styleCanvasPlanar   = lipgloss.NewStyle().Foreground(colorPlanar)
	styleCanvasTangled  = lipgloss.NewStyle().Foreground(colorTangled)
	styleCanvasSelected = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellEdge
	cellBoundary
	cellPlanar
	cellTangled
	cellSelected
)

// canvas is a character grid for drawing graphs in the terminal. Terminal
// cells are roughly twice as tall as they are wide, so the plane is mapped
// onto a frame of width×2·height and rows are halved when plotting.
type canvas struct {
	width, height int
	cells         []cellKind
}

func newCanvas(width, height int) *canvas {
	width, height = max(width, 1), max(height, 1)
	return &canvas{width: width, height: height, cells: make([]cellKind, width*height)}
}

// frameViewport fits pts into a canvas of the given size.
func frameViewport(pts []r2.Vec, width, height int) sink.Viewport {
	return sink.Fit(pts, float64(max(width, 1)), float64(2*max(height, 1)), 1)
}

func (c *canvas) cell(p r2.Vec) (int, int) {
	return int(p.X), int(p.Y / 2)
}

// set marks a cell, keeping whatever of higher rank is already there.
func (c *canvas) set(x, y int, k cellKind) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	i := y*c.width + x
	c.cells[i] = max(c.cells[i], k)
}

// line plots the segment between two cells with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, cellEdge)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// draw plots g through vp. selected is a vertex ID or -1.
func (c *canvas) draw(g *planar.Graph, vp sink.Viewport, isPlanar bool, selected int) {
	n := g.Len()
	for _, e := range g.Edges {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			continue
		}
		x0, y0 := c.cell(vp.Map(g.Vertices[e.From].Pos))
		x1, y1 := c.cell(vp.Map(g.Vertices[e.To].Pos))
		c.line(x0, y0, x1, y1)
	}
	for _, v := range g.Vertices {
		x, y := c.cell(vp.Map(v.Pos))
		kind := cellTangled
		switch {
		case v.ID == selected:
			kind = cellSelected
		case v.Boundary:
			kind = cellBoundary
		case isPlanar:
			kind = cellPlanar
		}
		c.set(x, y, kind)
	}
}

// String renders the grid, styling runs of equal cells together.
func (c *canvas) String() string {
	var b strings.Builder
	for y := range c.height {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.cells[y*c.width : (y+1)*c.width]
		for x := 0; x < len(row); {
			end := x + 1
			for end < len(row) && row[end] == row[x] {
				end++
			}
			b.WriteString(renderRun(row[x], end-x))
			x = end
		}
	}
	return b.String()
}

func renderRun(k cellKind, n int) string {
	switch k {
	case cellEdge:
		return styleCanvasEdge.Render(strings.Repeat(string(glyphEdge), n))
	case cellBoundary:
		return styleCanvasBoundary.Render(strings.Repeat(string(glyphVertex), n))
	case cellPlanar:
		return styleCanvasPlanar.Render(strings.Repeat(string(glyphVertex), n))
	case cellTangled:
		return styleCanvasTangled.Render(strings.Repeat(string(glyphVertex), n))
	case cellSelected:
		return styleCanvasSelected.Render(strings.Repeat(string(glyphSelected), n))
	default:
		return strings.Repeat(" ", n)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
