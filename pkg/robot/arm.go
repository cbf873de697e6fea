package robot

import (
	"math"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/cogrob/al5d/pkg/frame"
)

// Arm is a session with one robot: configuration, the transport that owns
// the actuator channel, and the most recently commanded pose. It is the
// explicit object that replaces the process-wide state of the original
// course code; it is not safe for concurrent use.
type Arm struct {
	cfg       *Config
	transport Transport
	logger    golog.Logger

	angles  JointAngles
	gripper float64 // mm
}

// NewArm creates an arm session. The current pose starts at the
// configured default pose; no command is sent until the first motion call.
func NewArm(cfg *Config, transport Transport, logger golog.Logger) *Arm {
	return &Arm{
		cfg:       cfg,
		transport: transport,
		logger:    logger,
		angles:    cfg.DefaultAngles,
		gripper:   cfg.DefaultGripper,
	}
}

// Close releases the transport.
func (a *Arm) Close() error {
	return a.transport.Close()
}

// Pose returns the most recently commanded joint angles and gripper opening.
func (a *Arm) Pose() (JointAngles, float64) {
	return a.angles, a.gripper
}

// Config returns the arm's configuration.
func (a *Arm) Config() *Config {
	return a.cfg
}

// Move drives the joint-5 frame to target. It solves the inverse
// kinematics, validates the solution against the joint limits, converts
// it to setpoints and issues the command. On any failure nothing is sent
// and the commanded pose is unchanged.
//
// The returned duration is the commanded travel time at the configured
// speed; the caller decides whether to block on it.
func (a *Arm) Move(target frame.Frame) (time.Duration, error) {
	angles, err := SolveIK(a.cfg.Geometry, a.angles, target)
	if err != nil {
		return 0, err
	}
	if err := a.cfg.Calibration.CheckLimits(angles); err != nil {
		return 0, err
	}

	sp := a.cfg.Calibration.Setpoints(angles, a.gripper)
	d := a.travelTime(sp)
	if err := a.send(sp, angles, a.gripper); err != nil {
		return 0, err
	}

	a.angles = angles
	a.logger.Debugw("move", "target", target.Origin(), "setpoints", sp, "travel", d)
	return d, nil
}

// Grasp sets the gripper opening in millimetres. Requests between zero
// and MinGraspOpening are clamped up: commanding full closure with an
// object between the fingers stalls the servo, so full closure is only
// issued for an explicit GripperClosed.
func (a *Arm) Grasp(mm float64) (time.Duration, error) {
	if mm != GripperClosed {
		mm = math.Min(math.Max(mm, MinGraspOpening), GripperOpen)
	}

	sp := a.cfg.Calibration.Setpoints(a.angles, mm)
	d := a.travelTime(sp)
	if err := a.send(sp, a.angles, mm); err != nil {
		return 0, err
	}

	a.gripper = mm
	a.logger.Debugw("grasp", "opening_mm", mm, "travel", d)
	return d, nil
}

// Home drives every servo to its calibrated home setpoint: upper arm
// vertical, forearm horizontal, gripper fully open.
func (a *Arm) Home() (time.Duration, error) {
	sp := a.cfg.Calibration.Home
	d := a.travelTime(sp)
	angles := HomeJointAngles()
	if err := a.send(sp, angles, GripperOpen); err != nil {
		return 0, err
	}

	a.angles = angles
	a.gripper = GripperOpen
	a.logger.Debugw("home", "setpoints", sp, "travel", d)
	return d, nil
}

func (a *Arm) send(sp [NumServos]int, angles JointAngles, gripper float64) error {
	err := a.transport.Send(Command{
		Setpoints: sp,
		Speed:     a.cfg.Speed,
		Angles:    angles,
		Gripper:   gripper,
		Wrist:     ForwardKinematics(a.cfg.Geometry, angles),
	})
	return errors.Wrap(err, "send command")
}

const (
	movePollInterval = 50 * time.Millisecond
	moveGrace        = 2 * time.Second
)

// WaitSettled blocks until a motion with the given commanded travel time
// has finished. When the transport can query the controller, the board's
// own arrival report is polled instead of trusting the estimate; the
// grace period on top of the estimate catches a stalled servo. Transports
// without feedback just sleep out the travel time.
func (a *Arm) WaitSettled(travel time.Duration) error {
	q, ok := a.transport.(MotionQuerier)
	if !ok {
		time.Sleep(travel)
		return nil
	}
	deadline := time.Now().Add(travel + moveGrace)
	for {
		moving, err := q.Moving()
		if err != nil {
			return errors.Wrap(err, "query motion state")
		}
		if !moving {
			return nil
		}
		if time.Now().After(deadline) {
			return errors.Errorf("servos still travelling %s past the commanded %s",
				moveGrace, travel)
		}
		time.Sleep(movePollInterval)
	}
}

// travelTime estimates how long the commanded move takes: the largest
// setpoint change across the servos at the configured travel rate.
func (a *Arm) travelTime(sp [NumServos]int) time.Duration {
	if a.cfg.Speed <= 0 {
		return 0
	}
	prev := a.cfg.Calibration.Setpoints(a.angles, a.gripper)
	maxDelta := 0
	for i := range sp {
		delta := sp[i] - prev[i]
		if delta < 0 {
			delta = -delta
		}
		if delta > maxDelta {
			maxDelta = delta
		}
	}
	return time.Duration(float64(maxDelta) / float64(a.cfg.Speed) * float64(time.Second))
}
