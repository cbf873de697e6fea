package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/cogrob/al5d/pkg/robot"
)

type GraspCommand struct {
	MM    float64 `long:"mm" default:"-1" description:"Gripper opening, mm"`
	Open  bool    `long:"open" description:"Open the gripper fully"`
	Close bool    `long:"close" description:"Close the gripper fully (never do this onto an object)"`
	Wait  bool    `long:"wait" description:"Block until the servos report arrival"`
}

func (c *GraspCommand) Execute(args []string) error {
	var mm float64
	switch {
	case c.Open:
		mm = robot.GripperOpen
	case c.Close:
		mm = robot.GripperClosed
	case c.MM >= 0:
		mm = c.MM
	default:
		return errors.New("one of --mm, --open or --close is required")
	}

	arm, err := openArm()
	if err != nil {
		return err
	}
	defer arm.Close()

	d, err := arm.Grasp(mm)
	if err != nil {
		return err
	}

	fmt.Printf("gripper to %.0f mm, travel time %s\n", mm, d.Round(time.Millisecond))
	if c.Wait {
		return arm.WaitSettled(d)
	}
	return nil
}
