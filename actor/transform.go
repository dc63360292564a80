package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform represents a rigid pose in 3D space, stored as a column-major 4x4 matrix.
// Only rotations and translations are composed into it, so the upper-left 3x3 block
// stays orthonormal.
type Transform struct {
	Matrix mgl64.Mat4
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{Matrix: mgl64.Ident4()}
}

// RotateX rotates the whole transform (translation included) around the world X axis
func (t Transform) RotateX(angle float64) Transform {
	return Transform{Matrix: mgl64.HomogRotate3DX(angle).Mul4(t.Matrix)}
}

// RotateY rotates the whole transform (translation included) around the world Y axis
func (t Transform) RotateY(angle float64) Transform {
	return Transform{Matrix: mgl64.HomogRotate3DY(angle).Mul4(t.Matrix)}
}

// RotateZ rotates the whole transform (translation included) around the world Z axis
func (t Transform) RotateZ(angle float64) Transform {
	return Transform{Matrix: mgl64.HomogRotate3DZ(angle).Mul4(t.Matrix)}
}

// RotateAxis rotates the transform around a world axis going through the origin.
// axis must be normalized.
func (t Transform) RotateAxis(axis mgl64.Vec3, angle float64) Transform {
	return Transform{Matrix: mgl64.HomogRotate3D(angle, axis).Mul4(t.Matrix)}
}

// Translate moves the transform by d in world space
func (t Transform) Translate(d mgl64.Vec3) Transform {
	m := t.Matrix
	m[12] += d.X()
	m[13] += d.Y()
	m[14] += d.Z()
	return Transform{Matrix: m}
}

// WithPosition returns a copy of the transform whose translation is p
func (t Transform) WithPosition(p mgl64.Vec3) Transform {
	m := t.Matrix
	m[12], m[13], m[14] = p.X(), p.Y(), p.Z()
	return Transform{Matrix: m}
}

// Position reads the translation column
func (t Transform) Position() mgl64.Vec3 {
	return mgl64.Vec3{t.Matrix[12], t.Matrix[13], t.Matrix[14]}
}

// Rotation returns the 3x3 rotation block
func (t Transform) Rotation() mgl64.Mat3 {
	return t.Matrix.Mat3()
}

// Apply transforms a point from local to world space
func (t Transform) Apply(point mgl64.Vec3) mgl64.Vec3 {
	return t.Matrix.Mul4x1(point.Vec4(1)).Vec3()
}

// ApplyRotation transforms a direction, ignoring the translation
func (t Transform) ApplyRotation(direction mgl64.Vec3) mgl64.Vec3 {
	return t.Matrix.Mat3().Mul3x1(direction)
}

// Mul composes two transforms: the result applies other first, then t
func (t Transform) Mul(other Transform) Transform {
	return Transform{Matrix: t.Matrix.Mul4(other.Matrix)}
}

// IsOrthonormal reports whether the rotation block is orthonormal within tolerance
func (t Transform) IsOrthonormal(tolerance float64) bool {
	r := t.Rotation()
	p := r.Transpose().Mul3(r)
	ident := mgl64.Ident3()
	for i := range p {
		if math.Abs(p[i]-ident[i]) > tolerance {
			return false
		}
	}
	return true
}
