package kinematics

import (
	"fmt"
	"strings"
)

// Describe renders the structure of a mapper, e.g.
// "transformed(static, translation)".
func Describe(m Mapper) string {
	var d describer
	m.Accept(&d)
	return d.String()
}

type describer struct {
	strings.Builder
}

func (d *describer) VisitStaticAffine(*StaticAffine) { d.WriteString("static") }

func (d *describer) VisitTranslation(m *Translation) {
	switch m.Trajectory.(type) {
	case *Linear:
		d.WriteString("translation(linear)")
	case *Eased:
		d.WriteString("translation(eased)")
	default:
		d.WriteString("translation")
	}
}

func (d *describer) VisitRotation(m *Rotation) {
	fmt.Fprintf(d, "rotation(%.2f,%.2f)", m.Pivot.X(), m.Pivot.Y())
}

func (d *describer) VisitTransformed(m *Transformed) {
	d.WriteString("transformed(")
	m.Original.Accept(d)
	d.WriteString(", ")
	m.Transformer.Accept(d)
	d.WriteString(")")
}

func (d *describer) VisitMirror(m *Mirror) {
	d.WriteString("mirror(")
	m.Delegate().Accept(d)
	d.WriteString(")")
}
