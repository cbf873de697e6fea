// Package frame implements the homogeneous-transform algebra used for
// task-level robot programming: 4x4 rigid transforms (Frames) that
// represent the pose of one coordinate frame relative to another, plus
// the elementary builders Trans, RotX, RotY and RotZ that poses are
// composed from.
package frame

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Vector is a point or direction in 3-D space. Workspace coordinates are
// millimetres throughout.
type Vector = r3.Vector

// Frame is a 4x4 homogeneous transform: a 3x3 orthonormal rotation and a
// translation. Frames compose with Mul (not commutative) and invert with
// Inv. The zero value is not useful; start from Identity or a builder.
type Frame struct {
	m mgl64.Mat4
}

// Identity returns the identity transform.
func Identity() Frame {
	return Frame{mgl64.Ident4()}
}

// Trans returns a pure translation by (x, y, z).
func Trans(x, y, z float64) Frame {
	return Frame{mgl64.Translate3D(x, y, z)}
}

// RotX returns a pure rotation about the x axis by the given angle in degrees.
func RotX(degrees float64) Frame {
	return Frame{mgl64.HomogRotate3DX(mgl64.DegToRad(degrees))}
}

// RotY returns a pure rotation about the y axis by the given angle in degrees.
func RotY(degrees float64) Frame {
	return Frame{mgl64.HomogRotate3DY(mgl64.DegToRad(degrees))}
}

// RotZ returns a pure rotation about the z axis by the given angle in degrees.
func RotZ(degrees float64) Frame {
	return Frame{mgl64.HomogRotate3DZ(mgl64.DegToRad(degrees))}
}

// Mul composes two transforms. f.Mul(g) is the pose g expressed in the
// frame produced by f.
func (f Frame) Mul(g Frame) Frame {
	return Frame{f.m.Mul4(g.m)}
}

// Inv returns the closed-form rigid-transform inverse: the rotation is
// transposed and the translation rotated and negated. This is cheaper and
// better conditioned than a general 4x4 inversion.
func (f Frame) Inv() Frame {
	rt := f.m.Mat3().Transpose()
	t := f.m.Col(3).Vec3()
	ti := rt.Mul3x1(t).Mul(-1)

	m := rt.Mat4()
	m.SetCol(3, mgl64.Vec4{ti[0], ti[1], ti[2], 1})
	return Frame{m}
}

// Origin returns the translation component.
func (f Frame) Origin() Vector {
	c := f.m.Col(3)
	return Vector{X: c[0], Y: c[1], Z: c[2]}
}

// Approach returns the z axis of the frame's rotation, the direction the
// end effector points along.
func (f Frame) Approach() Vector {
	c := f.m.Col(2)
	return Vector{X: c[0], Y: c[1], Z: c[2]}
}

// Rotation returns the 3x3 rotation submatrix.
func (f Frame) Rotation() mgl64.Mat3 {
	return f.m.Mat3()
}

// Orientation returns the rotation as a unit quaternion.
func (f Frame) Orientation() quat.Number {
	q := mgl64.Mat4ToQuat(f.m)
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}

// ApproxEqual reports whether two frames agree element-wise within tol.
func (f Frame) ApproxEqual(g Frame, tol float64) bool {
	return f.m.ApproxEqualThreshold(g.m, tol)
}

// String renders the rotation and translation components row by row.
func (f Frame) String() string {
	s := ""
	for r := 0; r < 4; r++ {
		s += fmt.Sprintf("[%8.3f %8.3f %8.3f %10.3f]\n",
			f.m.At(r, 0), f.m.At(r, 1), f.m.At(r, 2), f.m.At(r, 3))
	}
	return s
}

// Dist returns the distance between the origins of two frames.
func Dist(a, b Frame) float64 {
	d := a.Origin().Sub(b.Origin())
	return math.Sqrt(d.Dot(d))
}
