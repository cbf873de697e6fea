package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-6

func TestBuilders(t *testing.T) {
	f := Trans(10, -20, 30)
	assert.Equal(t, Vector{X: 10, Y: -20, Z: 30}, f.Origin())
	assert.True(t, f.Rotation().ApproxEqualThreshold(Identity().Rotation(), tol))

	// RotZ(90) maps x onto y
	g := RotZ(90).Mul(Trans(1, 0, 0))
	assert.InDelta(t, 0, g.Origin().X, tol)
	assert.InDelta(t, 1, g.Origin().Y, tol)

	// RotY(90) maps z onto x
	h := RotY(90)
	a := h.Approach()
	assert.InDelta(t, 1, a.X, tol)
	assert.InDelta(t, 0, a.Z, tol)

	// RotX(90) maps z onto -y
	a = RotX(90).Approach()
	assert.InDelta(t, -1, a.Y, tol)
}

func TestInvTimesSelfIsIdentity(t *testing.T) {
	frames := []Frame{
		Trans(1, 2, 3),
		RotX(37),
		Trans(100, -50, 20).Mul(RotY(180)).Mul(RotZ(-90)),
		RotZ(12).Mul(RotY(34)).Mul(RotX(56)).Mul(Trans(7, 8, 9)),
	}
	for _, f := range frames {
		assert.True(t, f.Inv().Mul(f).ApproxEqual(Identity(), tol), "inv(A)*A != I for\n%s", f)
		assert.True(t, f.Mul(f.Inv()).ApproxEqual(Identity(), tol), "A*inv(A) != I for\n%s", f)
	}
}

func TestMulAssociative(t *testing.T) {
	a := Trans(0, 187, 216).Mul(RotZ(90))
	b := RotY(90).Mul(Trans(0, 0, -100))
	c := RotX(-45).Mul(Trans(5, 5, 5))

	assert.True(t, a.Mul(b).Mul(c).ApproxEqual(a.Mul(b.Mul(c)), tol))
}

func TestMulNotCommutative(t *testing.T) {
	a := Trans(100, 0, 0)
	b := RotZ(90)
	assert.False(t, a.Mul(b).ApproxEqual(b.Mul(a), tol))
}

func TestRotationStaysOrthonormal(t *testing.T) {
	f := Identity()
	for i := 0; i < 360; i++ {
		f = f.Mul(RotZ(1)).Mul(RotY(0.5)).Mul(RotX(-0.25))
	}
	r := f.Rotation()
	assert.InDelta(t, 1, r.Det(), tol)
	assert.True(t, r.Mul3(r.Transpose()).ApproxEqualThreshold(Identity().Rotation(), tol))
}

func TestOrientationQuaternionIsUnit(t *testing.T) {
	q := Trans(1, 2, 3).Mul(RotZ(30)).Mul(RotY(-60)).Orientation()
	n := math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	assert.InDelta(t, 1, n, tol)
}

func TestDist(t *testing.T) {
	assert.InDelta(t, 5, Dist(Trans(3, 4, 0), Identity()), tol)
}
