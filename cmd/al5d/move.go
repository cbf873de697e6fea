package main

import (
	"fmt"
	"math"
	"time"

	"github.com/cogrob/al5d/pkg/frame"
)

type MoveCommand struct {
	X     float64 `long:"x" required:"true" description:"Wrist x position, mm"`
	Y     float64 `long:"y" required:"true" description:"Wrist y position, mm"`
	Z     float64 `long:"z" required:"true" description:"Wrist z position, mm"`
	Pitch float64 `long:"pitch" default:"0" description:"Approach pitch, degrees (0 horizontal, -90 straight down)"`
	Roll  float64 `long:"roll" default:"0" description:"Wrist roll, degrees"`
	Wait  bool    `long:"wait" description:"Block until the servos report arrival"`
}

// targetPose builds the wrist pose for a workspace position: the approach
// vector lies in the vertical plane through (x, y), tilted to the given
// pitch, with the given roll about it.
func targetPose(x, y, z, pitchDeg, rollDeg float64) frame.Frame {
	yaw := math.Atan2(y, x) * 180 / math.Pi
	return frame.Trans(x, y, z).
		Mul(frame.RotZ(yaw)).
		Mul(frame.RotY(90 - pitchDeg)).
		Mul(frame.RotZ(rollDeg))
}

func (c *MoveCommand) Execute(args []string) error {
	arm, err := openArm()
	if err != nil {
		return err
	}
	defer arm.Close()

	d, err := arm.Move(targetPose(c.X, c.Y, c.Z, c.Pitch, c.Roll))
	if err != nil {
		return err
	}

	fmt.Printf("moving to (%.0f, %.0f, %.0f), travel time %s\n", c.X, c.Y, c.Z, d.Round(time.Millisecond))
	if c.Wait {
		return arm.WaitSettled(d)
	}
	return nil
}
