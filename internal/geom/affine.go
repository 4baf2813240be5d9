package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Affine is a 2D homogeneous point transform.
type Affine = mgl32.Mat3

func Identity() Affine {
	return mgl32.Ident3()
}

func Translation(v mgl32.Vec2) Affine {
	return mgl32.Translate2D(v.X(), v.Y())
}

func Rotation(angle float32) Affine {
	return mgl32.HomogRotate2D(angle)
}

// RotationAbout rotates by angle around pivot.
func RotationAbout(pivot mgl32.Vec2, angle float32) Affine {
	return Translation(pivot).Mul3(Rotation(angle)).Mul3(Translation(pivot.Mul(-1)))
}

func Scale(sx, sy float32) Affine {
	return mgl32.Scale2D(sx, sy)
}

func ApplyPoint(a Affine, p mgl32.Vec2) mgl32.Vec2 {
	return a.Mul3x1(p.Vec3(1)).Vec2()
}

// MaxScale returns the largest singular value of the linear part of a, i.e.
// the Lipschitz constant of the transform.
func MaxScale(a Affine) float32 {
	m00, m01 := a.At(0, 0), a.At(0, 1)
	m10, m11 := a.At(1, 0), a.At(1, 1)

	trace := m00*m00 + m01*m01 + m10*m10 + m11*m11
	det := m00*m11 - m01*m10
	disc := trace*trace - 4*det*det
	if disc < 0 {
		disc = 0
	}
	return math32.Sqrt((trace + math32.Sqrt(disc)) / 2)
}

func reflects(a Affine) bool {
	return a.At(0, 0)*a.At(1, 1)-a.At(0, 1)*a.At(1, 0) < 0
}
