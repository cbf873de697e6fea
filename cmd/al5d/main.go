package main

import (
	"os"

	"github.com/edaniels/golog"
	"github.com/jessevdk/go-flags"

	"github.com/cogrob/al5d/pkg/robot"
	"github.com/cogrob/al5d/pkg/ssc32"
)

type Options struct {
	Config string `short:"c" long:"config" default:"robot.cfg" description:"Robot configuration file"`
	Sim    bool   `long:"sim" description:"Publish joint-state messages on stdout instead of driving the serial port"`
	Debug  bool   `long:"debug" description:"Verbose logging"`

	Home  HomeCommand  `command:"home" description:"Drive the arm to its calibrated home position"`
	Move  MoveCommand  `command:"move" description:"Move the wrist to a Cartesian pose"`
	Grasp GraspCommand `command:"grasp" description:"Set the gripper opening"`
	Demo  DemoCommand  `command:"demo" description:"Run the pick-and-place demonstration"`
	Jog   JogCommand   `command:"jog" description:"Drive the arm interactively"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "Task-level control for the Lynxmotion AL5D robot arm"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}

// openArm loads the robot configuration and connects the selected
// transport: the SSC-32U serial port, or the joint-state publisher when
// running against the simulator.
func openArm() (*robot.Arm, error) {
	cfg, err := robot.LoadConfig(opts.Config)
	if err != nil {
		return nil, err
	}

	logger := golog.NewLogger("al5d")
	if opts.Debug {
		logger = golog.NewDebugLogger("al5d")
	}

	var transport robot.Transport
	if opts.Sim {
		transport = robot.NewJointStatePublisher(os.Stdout)
	} else {
		ctrl, err := ssc32.Open(cfg.Port, cfg.Baud)
		if err != nil {
			return nil, err
		}
		transport = robot.NewSerialTransport(ctrl, cfg.Calibration.Channels)
	}

	return robot.NewArm(cfg, transport, logger), nil
}
