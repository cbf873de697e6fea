// Package al5d provides task-level programming for the Lynxmotion AL5D
// robot arm.
//
// Poses are specified as homogeneous-transform Frames in Cartesian space
// and mapped to joint space by a closed-form inverse kinematic model; a
// per-robot calibration converts joint angles into the pulse-width
// setpoints the SSC-32U servo controller understands.
//
// # Usage
//
// Point the CLI at a robot configuration file and move the arm:
//
//	al5d -c robot3.cfg home
//	al5d -c robot3.cfg move --x 0 --y 187 --z 216 --pitch -90
//	al5d -c robot3.cfg grasp --mm 15
//	al5d -c robot3.cfg demo
//
// With --sim, commands are published as joint-state messages on stdout
// for the simulator instead of being written to the serial port.
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/al5d: CLI with home, move, grasp, demo and jog commands
//   - pkg/frame: homogeneous-transform algebra and pose builders
//   - pkg/robot: inverse kinematics, calibration, configuration and motion control
//   - pkg/ssc32: SSC-32U servo controller protocol
package al5d
