package main

import (
	"fmt"
	"time"

	"github.com/cogrob/al5d/pkg/frame"
	"github.com/cogrob/al5d/pkg/robot"
)

type DemoCommand struct {
	Settle time.Duration `long:"settle" default:"500ms" description:"Extra pause after each motion"`
}

// Demo poses, millimetres in the robot base frame. The object sits
// straight ahead of the robot, rotated -90° on the work surface; the tray
// is off to the side.
const (
	objectX, objectY, objectZ = 0, 187, 0
	objectTheta               = -90.0

	exampleZ = 216.0
	sideX    = 100.0

	trayX, trayY, trayZ = 150, 100, 100

	approachDistance = 100.0
)

// Execute runs the classic task-level pick-and-place sequence: approach
// the object from above, open, descend, grasp, retreat, carry to the
// tray, release, return home. Every pose is specified as a frame product
// T5 = inv(Z) * pose * inv(E) relating the wrist to the base frame Z and
// the end-effector frame E.
func (c *DemoCommand) Execute(args []string) error {
	arm, err := openArm()
	if err != nil {
		return err
	}
	defer arm.Close()

	cfg := arm.Config()
	e := frame.Trans(0, 0, cfg.EffectorLength) // gripper-tip frame
	z := frame.Trans(0, 0, 0)                  // robot base frame

	settle := func(d time.Duration) error {
		if err := arm.WaitSettled(d); err != nil {
			return err
		}
		time.Sleep(c.Settle)
		return nil
	}
	moveTo := func(name string, pose frame.Frame) error {
		fmt.Println(name)
		t5 := z.Inv().Mul(pose).Mul(e.Inv())
		d, err := arm.Move(t5)
		if err != nil {
			return err
		}
		return settle(d)
	}
	graspTo := func(mm float64) error {
		d, err := arm.Grasp(mm)
		if err != nil {
			return err
		}
		return settle(d)
	}

	home, err := arm.Home()
	if err != nil {
		return err
	}
	if err := settle(home); err != nil {
		return err
	}

	// grasp the object from above, gripper movement aligned with its orientation
	objectGrasp := frame.Trans(objectX, objectY, objectZ).
		Mul(frame.RotY(180)).
		Mul(frame.RotZ(objectTheta))
	objectApproach := objectGrasp.Mul(frame.Trans(0, 0, -approachDistance))

	if err := moveTo("initial approach pose", objectApproach); err != nil {
		return err
	}
	if err := graspTo(robot.GripperOpen); err != nil {
		return err
	}
	if err := moveTo("grasp pose", objectGrasp); err != nil {
		return err
	}
	// 15 mm is the width of the practice block; closing fully onto it
	// would stall the gripper servo
	if err := graspTo(15); err != nil {
		return err
	}
	if err := moveTo("retreat to approach pose", objectApproach); err != nil {
		return err
	}

	examplePose := frame.Trans(objectX, objectY, exampleZ-cfg.EffectorLength).
		Mul(frame.RotY(180)).
		Mul(frame.RotZ(-90))
	if err := moveTo("example pose", examplePose); err != nil {
		return err
	}

	sidePose := frame.Trans(objectX+sideX, objectY, exampleZ-cfg.EffectorLength).
		Mul(frame.RotY(180)).
		Mul(frame.RotZ(-90))
	if err := moveTo("side pose", sidePose); err != nil {
		return err
	}

	trayPose := frame.Trans(trayX, trayY, trayZ).
		Mul(frame.RotY(180)).
		Mul(frame.RotZ(-90))
	if err := moveTo("above the tray", trayPose); err != nil {
		return err
	}
	if err := graspTo(robot.GripperOpen); err != nil {
		return err
	}

	if err := moveTo("back to example pose", examplePose); err != nil {
		return err
	}

	// finish close to the pose the servo controller powers up in
	home, err = arm.Home()
	if err != nil {
		return err
	}
	return arm.WaitSettled(home)
}
