package robot

import (
	"math"

	"github.com/pkg/errors"
)

// Gripper opening bounds in millimetres. The home setpoint corresponds to
// the gripper fully open; GripperClosed is full mechanical closure and
// must only ever be commanded deliberately (closing onto an object stalls
// the servo and burns it out).
const (
	GripperOpen     = 30.0
	GripperClosed   = 0.0
	MinGraspOpening = 2.0
)

// ErrOutOfRange reports a solved joint angle outside the mechanical range.
var ErrOutOfRange = errors.New("joint angle outside mechanical range")

// Limit is a joint's mechanical range in degrees.
type Limit struct {
	Min, Max float64
}

// DefaultLimits returns the AL5D joint ranges.
func DefaultLimits() [NumJoints]Limit {
	return [NumJoints]Limit{
		BaseYaw:    {-90, 90},
		Shoulder:   {0, 180},
		Elbow:      {-170, -10},
		WristPitch: {-125, 125},
		WristRoll:  {-90, 90},
	}
}

// homeAngles is the joint configuration, in degrees, that the HOME
// setpoints position the arm in: upper arm vertical, forearm horizontal,
// gripper in line with the forearm and fully open. The wrist pitch is
// measured relative to the forearm, so it is zero here.
var homeAngles = [NumJoints]float64{0, 90, -90, 0, 0}

// Calibration converts joint angles into servo setpoints for one specific
// robot. The per-servo values come from the robot's configuration file
// and are determined by a calibration exercise; in theory every servo has
// the same pulse width per degree, in practice none of them do.
type Calibration struct {
	Channels        [NumServos]int     // SSC-32U pin per servo
	Home            [NumServos]int     // setpoint at the home configuration, microseconds
	PulsesPerDegree [NumServos]float64 // gripper entry is microseconds per mm of opening
	Wrist           WristType
	Limits          [NumJoints]Limit
}

func (c *Calibration) rollDirection() float64 {
	if c.Wrist == WristHeavyDuty {
		return -1
	}
	return 1
}

// Setpoints converts joint angles (radians) and a gripper opening (mm)
// into the six servo pulse widths, in microseconds:
//
//	sp[i] = home[i] + dir[i] * (deg(angle[i]) - homeAngle[i]) * ppd[i]
//
// dir is +1 everywhere except the wrist roll on a heavy-duty wrist.
func (c *Calibration) Setpoints(angles JointAngles, gripperMM float64) [NumServos]int {
	var sp [NumServos]int
	for _, j := range AllJoints() {
		deg := angles[j] * 180 / math.Pi
		dir := 1.0
		if j == WristRoll {
			dir = c.rollDirection()
		}
		sp[j] = c.Home[j] + int(math.Round(dir*(deg-homeAngles[j])*c.PulsesPerDegree[j]))
	}
	sp[GripperServo] = c.GripperSetpoint(gripperMM)
	return sp
}

// GripperSetpoint maps a gripper opening in millimetres to its servo
// setpoint. The mapping is linear from the fully-open home setpoint.
func (c *Calibration) GripperSetpoint(mm float64) int {
	if mm < GripperClosed {
		mm = GripperClosed
	} else if mm > GripperOpen {
		mm = GripperOpen
	}
	return c.Home[GripperServo] - int(math.Round((GripperOpen-mm)*c.PulsesPerDegree[GripperServo]))
}

// HomeJointAngles returns the joint configuration of the home position in
// radians.
func HomeJointAngles() JointAngles {
	var a JointAngles
	for i, deg := range homeAngles {
		a[i] = deg * math.Pi / 180
	}
	return a
}

// limitTol absorbs floating-point noise on angles that sit exactly on a limit.
const limitTol = 1e-9

// CheckLimits validates a solution against the mechanical joint ranges.
func (c *Calibration) CheckLimits(angles JointAngles) error {
	for _, j := range AllJoints() {
		deg := angles[j] * 180 / math.Pi
		lim := c.Limits[j]
		if deg < lim.Min-limitTol || deg > lim.Max+limitTol {
			return errors.Wrapf(ErrOutOfRange, "%s %.1f° not in [%.0f°, %.0f°]", j, deg, lim.Min, lim.Max)
		}
	}
	return nil
}
