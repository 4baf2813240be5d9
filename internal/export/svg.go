// Package export writes scenario snapshots as SVG.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/collide/internal/geom"
	"github.com/san-kum/collide/internal/scenario"
	"github.com/san-kum/collide/internal/viz"
)

const background = "#0a0a0a"

func header(sb *strings.Builder, width, height float32) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// CanvasToSVG converts a Braille canvas to SVG, one dot per set sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, theme viz.Theme, scale float32) string {
	if canvas == nil {
		return ""
	}

	var sb strings.Builder
	header(&sb, float32(canvas.Width*2)*scale, float32(canvas.Height*4)*scale)
	fmt.Fprintf(&sb, "<g fill=%q>\n", string(theme.Accent))

	r := scale * 0.4
	for y := range canvas.Height * 4 {
		for x := range canvas.Width * 2 {
			if canvas.IsSet(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					float32(x)*scale+scale/2, float32(y)*scale+scale/2, r)
			}
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// frame maps world coordinates to SVG user units with y pointing up.
type frame struct {
	world  geom.AABB
	scale  float32
	height float32
}

func newFrame(world geom.AABB, width, height int) frame {
	w := math32.Max(world.Max.X()-world.Min.X(), 1e-3)
	h := math32.Max(world.Max.Y()-world.Min.Y(), 1e-3)
	return frame{
		world:  world,
		scale:  math32.Min(float32(width)/w, float32(height)/h),
		height: float32(height),
	}
}

func (f frame) point(p mgl32.Vec2) (float32, float32) {
	return (p.X() - f.world.Min.X()) * f.scale, f.height - (p.Y()-f.world.Min.Y())*f.scale
}

func (f frame) points(vs []mgl32.Vec2) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		x, y := f.point(v)
		parts[i] = fmt.Sprintf("%.2f,%.2f", x, y)
	}
	return strings.Join(parts, " ")
}

// SceneToSVG draws every body of s as it stands at t. Dilated shapes are
// stroked with round joins, which traces their Minkowski outline exactly.
func SceneToSVG(s *scenario.Scenario, t float32, theme viz.Theme, width, height int) string {
	world := s.Bounds(t).Expand(0.5)
	f := newFrame(world, width, height)

	var sb strings.Builder
	header(&sb, float32(width), float32(height))
	fmt.Fprintf(&sb, "<g fill=%q stroke=%q stroke-linejoin=\"round\" stroke-linecap=\"round\">\n",
		string(theme.Primary), string(theme.Primary))

	for _, b := range s.Bodies {
		fmt.Fprintf(&sb, "<g id=%q>\n", b.Name)
		writeShape(&sb, f, b.Kin.InstantShape(t))
		x, y := f.point(b.Center(t))
		fmt.Fprintf(&sb, "<text x=\"%.2f\" y=\"%.2f\" fill=%q stroke=\"none\" font-size=\"10\">%s</text>\n",
			x+4, y-4, string(theme.Text), b.Name)
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func writeShape(sb *strings.Builder, f frame, s geom.Shape) {
	var (
		vs     []mgl32.Vec2
		radius float32
	)
	switch s := s.(type) {
	case *geom.Polygon:
		vs = s.Vertices
	case *geom.Dilated:
		vs, radius = s.Base.Vertices, s.Radius
	default:
		return
	}

	width := math32.Max(2*radius*f.scale, 1)
	switch len(vs) {
	case 1:
		x, y := f.point(vs[0])
		fmt.Fprintf(sb, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\"/>\n", x, y, math32.Max(radius*f.scale, 2))
	case 2:
		x0, y0 := f.point(vs[0])
		x1, y1 := f.point(vs[1])
		fmt.Fprintf(sb, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"%.2f\"/>\n", x0, y0, x1, y1, width)
	default:
		fmt.Fprintf(sb, "<polygon points=%q stroke-width=\"%.2f\"/>\n", f.points(vs), width)
	}
}

// WriteSceneSVG writes the scene at t to path, or to w when path is empty.
func WriteSceneSVG(w io.Writer, path string, s *scenario.Scenario, t float32, theme viz.Theme) error {
	svg := SceneToSVG(s, t, theme, 640, 480)
	if path == "" {
		_, err := io.WriteString(w, svg)
		return err
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
