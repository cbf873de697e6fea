package robot

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cogrob/al5d/pkg/frame"
)

const ikTol = 1e-6

// testGeometry matches the planar dimensions used in the course notes:
// shoulder pivot at the origin, AL5D-class link lengths.
func testGeometry() Geometry {
	return Geometry{BaseHeight: 0, Humerus: 146, Ulna: 187}
}

func TestSolveIKReferencePose(t *testing.T) {
	geom := testGeometry()
	target := frame.Trans(0, 187, 216)

	angles, err := SolveIK(geom, JointAngles{}, target)
	require.NoError(t, err)

	// a target on the +y axis puts the base yaw at 90°
	assert.InDelta(t, 90, angles[BaseYaw]*radToDeg, 0.5)

	// the solution reproduces the wrist position
	got := ForwardKinematics(geom, angles)
	assert.InDelta(t, 0, frame.Dist(got, target), 1e-6)

	// elbow-up: the elbow angle is on the negative branch
	assert.Less(t, angles[Elbow], 0.0)
}

func TestSolveIKRoundTrip(t *testing.T) {
	geom := DefaultGeometry()

	// joint sets spread over the working range
	seeds := []JointAngles{
		HomeJointAngles(),
		{0.2, 1.3, -1.1, -0.4, 0.6},
		{-0.8, 1.9, -2.0, 0.3, -1.2},
		{1.2, 0.7, -0.5, -1.4, 0.0},
		{0.0, 2.4, -2.4, 0.8, 1.0},
		{-1.4, 1.0, -1.6, -0.2, -0.3},
	}

	for _, want := range seeds {
		target := ForwardKinematics(geom, want)
		got, err := SolveIK(geom, JointAngles{}, target)
		require.NoError(t, err, "angles %v", want)

		for _, j := range AllJoints() {
			assert.InDelta(t, want[j], got[j], ikTol, "joint %s of %v", j, want)
		}
		assert.True(t, ForwardKinematics(geom, got).ApproxEqual(target, ikTol))
	}
}

func TestSolveIKUnreachable(t *testing.T) {
	geom := testGeometry()

	tests := []struct {
		name   string
		target frame.Frame
	}{
		{"beyond full extension", frame.Trans(0, geom.Humerus+geom.Ulna+50, 0)},
		{"inside inner annulus", frame.Trans(0, 10, 10)},
		{"far above", frame.Trans(0, 0, geom.Humerus+geom.Ulna+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			angles, err := SolveIK(geom, JointAngles{}, tt.target)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnreachable), "error %v", err)
			// no NaN-bearing angles escape
			for _, a := range angles {
				assert.False(t, math.IsNaN(a))
			}
		})
	}
}

func TestSolveIKAnnulusBoundary(t *testing.T) {
	geom := testGeometry()

	// arm straight out and arm fully folded sit exactly on the annulus
	// boundary; rounding in the forward kinematics must not push them out
	tests := []struct {
		name   string
		angles JointAngles
	}{
		{"full extension", JointAngles{0.3, 1.0, 0, -0.2, 0}},
		{"full fold", JointAngles{0, 1.5, -math.Pi, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := ForwardKinematics(geom, tt.angles)
			got, err := SolveIK(geom, JointAngles{}, target)
			require.NoError(t, err)
			for _, a := range got {
				require.False(t, math.IsNaN(a))
			}
			assert.True(t, ForwardKinematics(geom, got).ApproxEqual(target, 1e-5))
		})
	}
}

func TestSolveIKDownwardApproach(t *testing.T) {
	geom := DefaultGeometry()

	// grasp-from-above pose: approach pointing straight down
	target := frame.Trans(100, 150, 80).Mul(frame.RotY(180)).Mul(frame.RotZ(-90))
	angles, err := SolveIK(geom, JointAngles{}, target)
	require.NoError(t, err)

	a := ForwardKinematics(geom, angles).Approach()
	assert.InDelta(t, 0, a.X, ikTol)
	assert.InDelta(t, 0, a.Y, ikTol)
	assert.InDelta(t, -1, a.Z, ikTol)
	assert.InDelta(t, 0, frame.Dist(ForwardKinematics(geom, angles), target), ikTol)
}

func TestSolveIKBaseAxisKeepsSeedYaw(t *testing.T) {
	geom := testGeometry()
	seed := JointAngles{0.7}

	// wrist directly above the base axis: the yaw is undetermined and the
	// previous pose decides
	target := frame.Trans(0, 0, 250)
	angles, err := SolveIK(geom, seed, target)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, angles[BaseYaw], ikTol)
}

func TestSolveIKWristOffset(t *testing.T) {
	geom := testGeometry()
	geom.WristOffset = 25

	want := JointAngles{0.4, 1.5, -1.2, -0.6, 0.2}
	target := ForwardKinematics(geom, want)
	got, err := SolveIK(geom, JointAngles{}, target)
	require.NoError(t, err)
	assert.True(t, ForwardKinematics(geom, got).ApproxEqual(target, ikTol))
}

func TestForwardKinematicsHomePose(t *testing.T) {
	geom := testGeometry()

	// upper arm vertical, forearm horizontal: wrist at (ulna, 0, humerus)
	pose := ForwardKinematics(geom, HomeJointAngles())
	p := pose.Origin()
	assert.InDelta(t, geom.Ulna, p.X, ikTol)
	assert.InDelta(t, 0, p.Y, ikTol)
	assert.InDelta(t, geom.Humerus, p.Z, ikTol)

	// approach is horizontal, pointing away from the base
	a := pose.Approach()
	assert.InDelta(t, 1, a.X, ikTol)
	assert.InDelta(t, 0, a.Z, ikTol)
}
