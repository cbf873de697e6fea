package main

import (
	"fmt"
	"time"
)

type HomeCommand struct {
	Wait bool `long:"wait" description:"Block until the servos report arrival"`
}

func (c *HomeCommand) Execute(args []string) error {
	arm, err := openArm()
	if err != nil {
		return err
	}
	defer arm.Close()

	d, err := arm.Home()
	if err != nil {
		return err
	}

	fmt.Printf("going home, travel time %s\n", d.Round(time.Millisecond))
	if c.Wait {
		return arm.WaitSettled(d)
	}
	return nil
}
