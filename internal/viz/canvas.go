package viz

import (
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/collide/internal/geom"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// circleSegments is the number of chords used to outline a disc.
const circleSegments = 24

// Canvas is a grid of Braille cells addressed in sub-pixels: Width*2 by
// Height*4 dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) cell(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, pixelMap[y%4][x%2], true
}

// Set turns on the dot at sub-pixel (x, y). Dots off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= bit
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= bit
	}
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws from (x0, y0) to (x1, y1) with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.Height * (c.Width*3 + 1))
	for i, row := range c.Grid {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}

// Viewport maps world coordinates onto a canvas, keeping the aspect ratio of
// the world box. The y axis points up.
type Viewport struct {
	World  geom.AABB
	canvas *Canvas
	scale  float32
	offset mgl32.Vec2
}

// NewViewport fits world (padded by margin) into c.
func NewViewport(c *Canvas, world geom.AABB, margin float32) *Viewport {
	world = world.Expand(margin)
	w := math32.Max(world.Max.X()-world.Min.X(), 1e-3)
	h := math32.Max(world.Max.Y()-world.Min.Y(), 1e-3)
	pw, ph := float32(c.Width*2-1), float32(c.Height*4-1)
	scale := math32.Min(pw/w, ph/h)
	// center the unused axis
	offset := mgl32.Vec2{(pw - w*scale) / 2, (ph - h*scale) / 2}
	return &Viewport{World: world, canvas: c, scale: scale, offset: offset}
}

// Project returns the sub-pixel of world point p.
func (v *Viewport) Project(p mgl32.Vec2) (int, int) {
	x := (p.X()-v.World.Min.X())*v.scale + v.offset.X()
	y := (v.World.Max.Y()-p.Y())*v.scale + v.offset.Y()
	return int(math32.Round(x)), int(math32.Round(y))
}

func (v *Viewport) Line(a, b mgl32.Vec2) {
	x0, y0 := v.Project(a)
	x1, y1 := v.Project(b)
	v.canvas.DrawLine(x0, y0, x1, y1)
}

// Circle outlines the disc of radius r around center.
func (v *Viewport) Circle(center mgl32.Vec2, r float32) {
	prev := center.Add(mgl32.Vec2{r, 0})
	for i := 1; i <= circleSegments; i++ {
		a := 2 * math32.Pi * float32(i) / circleSegments
		next := center.Add(mgl32.Vec2{r * math32.Cos(a), r * math32.Sin(a)})
		v.Line(prev, next)
		prev = next
	}
}

// Shape outlines s. Dilated shapes are drawn as their base plus a disc at
// every vertex.
func (v *Viewport) Shape(s geom.Shape) {
	switch s := s.(type) {
	case *geom.Polygon:
		v.polygon(s)
	case *geom.Dilated:
		if len(s.Base.Vertices) > 1 {
			v.polygon(s.Base)
		}
		for _, p := range s.Base.Vertices {
			v.Circle(p, s.Radius)
		}
	}
}

func (v *Viewport) polygon(p *geom.Polygon) {
	vs := p.Vertices
	if len(vs) == 1 {
		x, y := v.Project(vs[0])
		v.canvas.Set(x, y)
		return
	}
	for i, a := range vs {
		if len(vs) == 2 && i == 1 {
			break
		}
		v.Line(a, vs[(i+1)%len(vs)])
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
