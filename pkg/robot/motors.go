// Package robot provides kinematics, calibration and motion control for
// the Lynxmotion AL5D arm.
package robot

// Joint identifies a servo in the arm. The first five are revolute
// joints; the gripper is a linear opening driven by its own servo.
type Joint int

// Joints in servo order (matching SSC-32U channels 0-5 on a standard build).
const (
	BaseYaw Joint = iota
	Shoulder
	Elbow
	WristPitch
	WristRoll
	GripperServo
)

// NumJoints is the number of revolute joints; NumServos includes the gripper.
const (
	NumJoints = 5
	NumServos = 6
)

// JointAngles holds one angle per revolute joint, in radians.
type JointAngles [NumJoints]float64

func (j Joint) String() string {
	switch j {
	case BaseYaw:
		return "base_yaw"
	case Shoulder:
		return "shoulder"
	case Elbow:
		return "elbow"
	case WristPitch:
		return "wrist_pitch"
	case WristRoll:
		return "wrist_roll"
	case GripperServo:
		return "gripper"
	}
	return "unknown"
}

// AllJoints returns the revolute joints in servo order.
func AllJoints() []Joint {
	return []Joint{BaseYaw, Shoulder, Elbow, WristPitch, WristRoll}
}
