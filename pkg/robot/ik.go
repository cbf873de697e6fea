package robot

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/cogrob/al5d/pkg/frame"
)

// ErrUnreachable reports a target pose outside the arm's workspace.
var ErrUnreachable = errors.New("target pose outside the reachable workspace")

const (
	radToDeg = 180 / math.Pi
	degToRad = math.Pi / 180

	// tolerance on the law-of-cosines argument at the annulus boundary
	cosTol = 1e-9
)

// SolveIK computes the five joint angles that place the joint-5 (wrist)
// frame at target, expressed in the robot base frame. The solution is
// closed-form, after Mazurov and Goldsmith, adapted so that joint 5 is
// embedded in the wrist: the solver positions the wrist pivot and takes
// the wrist pitch and roll from the target orientation.
//
// seed is the previously commanded pose. It only matters when the wrist
// sits on the base axis, where the base yaw is undetermined and the seed
// value is kept.
//
// The elbow-up branch of the two-solution planar subproblem is always
// chosen; the elbow-down branch folds the forearm into the work surface.
func SolveIK(geom Geometry, seed JointAngles, target frame.Frame) (JointAngles, error) {
	p := target.Origin()
	rot := target.Rotation()

	// Joint 1: the base yaw fixes the vertical plane the rest of the
	// solution lives in.
	theta1 := seed[BaseYaw]
	if math.Hypot(p.X, p.Y) > 1e-9 {
		theta1 = math.Atan2(p.Y, p.X)
	}
	c1, s1 := math.Cos(theta1), math.Sin(theta1)

	// Absolute pitch of the approach vector within that plane.
	ax, ay, az := rot.At(0, 2), rot.At(1, 2), rot.At(2, 2)
	pitch := math.Atan2(az, ax*c1+ay*s1)

	// Reduce to the planar two-link problem at the wrist pivot: project
	// the target into the plane and back the wrist offset out along the
	// approach vector.
	wr := p.X*c1 + p.Y*s1 - geom.WristOffset*math.Cos(pitch)
	wz := p.Z - geom.BaseHeight - geom.WristOffset*math.Sin(pitch)

	// Law of cosines for the elbow. An argument outside [-1, 1] means the
	// wrist pivot is outside the annulus the two links can reach; poses on
	// the annulus boundary land within rounding noise of ±1 and are kept.
	c3 := (wr*wr + wz*wz - geom.Humerus*geom.Humerus - geom.Ulna*geom.Ulna) /
		(2 * geom.Humerus * geom.Ulna)
	if c3 < -1-cosTol || c3 > 1+cosTol {
		return JointAngles{}, errors.Wrapf(ErrUnreachable,
			"reach %.1f mm, annulus [%.1f, %.1f] mm",
			math.Hypot(wr, wz),
			math.Abs(geom.Humerus-geom.Ulna), geom.Humerus+geom.Ulna)
	}
	c3 = math.Max(-1, math.Min(1, c3))
	theta3 := -math.Acos(c3)
	theta2 := math.Atan2(wz, wr) +
		math.Atan2(geom.Ulna*math.Sin(-theta3), geom.Humerus+geom.Ulna*math.Cos(theta3))

	// Joint 4 takes up whatever pitch the arm itself does not provide.
	theta4 := pitch - theta2 - theta3

	// Joint 5 is the residual rotation about the approach axis.
	noRoll := mgl64.Rotate3DZ(theta1).Mul3(mgl64.Rotate3DY(math.Pi/2 - pitch))
	rel := noRoll.Transpose().Mul3(rot)
	theta5 := math.Atan2(rel.At(1, 0), rel.At(0, 0))

	return JointAngles{theta1, theta2, theta3, theta4, theta5}, nil
}

// ForwardKinematics returns the pose of the joint-5 frame for a set of
// joint angles, as a chain of elementary transforms. SolveIK is its exact
// inverse for poses inside the workspace.
func ForwardKinematics(geom Geometry, angles JointAngles) frame.Frame {
	return frame.RotZ(angles[BaseYaw] * radToDeg).
		Mul(frame.Trans(0, 0, geom.BaseHeight)).
		Mul(frame.RotY(-angles[Shoulder] * radToDeg)).
		Mul(frame.Trans(geom.Humerus, 0, 0)).
		Mul(frame.RotY(-angles[Elbow] * radToDeg)).
		Mul(frame.Trans(geom.Ulna, 0, 0)).
		Mul(frame.RotY(-angles[WristPitch] * radToDeg)).
		Mul(frame.Trans(geom.WristOffset, 0, 0)).
		Mul(frame.RotY(90)). // align the frame's z axis with the approach direction
		Mul(frame.RotZ(angles[WristRoll] * radToDeg))
}
