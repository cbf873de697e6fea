package robot

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// WristType selects the wrist hardware fitted to the arm. The heavy-duty
// wrist mounts its roll servo the other way around, reversing the roll
// direction.
type WristType string

const (
	WristLightweight WristType = "lightweight"
	WristHeavyDuty   WristType = "heavyduty"
)

// Geometry holds the link dimensions the solver needs, in millimetres.
type Geometry struct {
	BaseHeight  float64 // work surface to shoulder pivot
	Humerus     float64 // shoulder pivot to elbow pivot
	Ulna        float64 // elbow pivot to wrist pivot
	WristOffset float64 // wrist pivot to the joint-5 frame origin, along the approach axis
}

// DefaultGeometry returns the AL5D link dimensions.
func DefaultGeometry() Geometry {
	return Geometry{
		BaseHeight:  67.31,
		Humerus:     146.05,
		Ulna:        187.325,
		WristOffset: 0,
	}
}

// Config is the per-robot configuration read once at startup. It replaces
// the process-wide state of earlier course code: everything that varies
// between the class robots lives here and is passed explicitly.
type Config struct {
	Port  string // serial port name, e.g. COM6 or /dev/ttyUSB0
	Baud  int
	Speed int // servo travel rate, microseconds of pulse width per second

	Calibration Calibration
	Geometry    Geometry

	EffectorLength float64 // wrist to gripper tip, mm

	DefaultAngles  JointAngles // startup pose, radians
	DefaultGripper float64     // startup gripper opening, mm
}

// Configuration file defaults.
const (
	defaultBaud     = 9600
	defaultSpeed    = 500
	defaultEffector = 100.0
)

// LoadConfig reads a robot configuration file. The format is one
// key-value entry per line:
//
//	COM     <port name>
//	BAUD    <rate>
//	SPEED   <microseconds per second>
//	CHANNEL <6 servo pin numbers>
//	HOME    <6 home setpoints, microseconds>
//	DEGREE  <6 pulse widths per degree (per mm for the gripper)>
//	WRIST   lightweight|heavyduty
//	DEFAULT <5 joint angles, radians> <gripper distance, metres>
//
// CHANNEL, HOME, DEGREE and WRIST are required; the rest default.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open robot configuration")
	}
	defer f.Close()

	cfg := &Config{
		Baud:           defaultBaud,
		Speed:          defaultSpeed,
		Geometry:       DefaultGeometry(),
		EffectorLength: defaultEffector,
		DefaultGripper: GripperOpen,
	}
	cfg.Calibration.Limits = DefaultLimits()

	seen := map[string]bool{}

	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		key, vals := strings.ToUpper(fields[0]), fields[1:]
		if err := cfg.apply(key, vals); err != nil {
			return nil, errors.Wrapf(err, "%s line %d", path, line)
		}
		seen[key] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read robot configuration")
	}

	for _, key := range []string{"CHANNEL", "HOME", "DEGREE", "WRIST"} {
		if !seen[key] {
			return nil, errors.Errorf("%s: missing required key %s", path, key)
		}
	}
	return cfg, nil
}

func (c *Config) apply(key string, vals []string) error {
	switch key {
	case "COM":
		if len(vals) != 1 {
			return errors.New("COM takes one value")
		}
		c.Port = vals[0]
	case "BAUD":
		return intValue(vals, &c.Baud)
	case "SPEED":
		return intValue(vals, &c.Speed)
	case "EFFECTOR":
		return floatValue(vals, &c.EffectorLength)
	case "CHANNEL":
		return intVector(vals, c.Calibration.Channels[:])
	case "HOME":
		return intVector(vals, c.Calibration.Home[:])
	case "DEGREE":
		return floatVector(vals, c.Calibration.PulsesPerDegree[:])
	case "WRIST":
		if len(vals) != 1 {
			return errors.New("WRIST takes one value")
		}
		switch WristType(vals[0]) {
		case WristLightweight, WristHeavyDuty:
			c.Calibration.Wrist = WristType(vals[0])
		default:
			return errors.Errorf("unknown wrist type %q", vals[0])
		}
	case "DEFAULT":
		var v [NumServos]float64
		if err := floatVector(vals, v[:]); err != nil {
			return err
		}
		copy(c.DefaultAngles[:], v[:NumJoints])
		c.DefaultGripper = v[NumJoints] * 1000 // metres in the file, mm internally
	default:
		return errors.Errorf("unknown key %s", key)
	}
	return nil
}

func intValue(vals []string, dst *int) error {
	if len(vals) != 1 {
		return errors.Errorf("expected one value, got %d", len(vals))
	}
	n, err := strconv.Atoi(vals[0])
	if err != nil {
		return errors.Wrapf(err, "bad integer %q", vals[0])
	}
	*dst = n
	return nil
}

func floatValue(vals []string, dst *float64) error {
	if len(vals) != 1 {
		return errors.Errorf("expected one value, got %d", len(vals))
	}
	x, err := strconv.ParseFloat(vals[0], 64)
	if err != nil {
		return errors.Wrapf(err, "bad number %q", vals[0])
	}
	*dst = x
	return nil
}

func intVector(vals []string, dst []int) error {
	if len(vals) != len(dst) {
		return errors.Errorf("expected %d values, got %d", len(dst), len(vals))
	}
	for i, v := range vals {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "bad integer %q", v)
		}
		dst[i] = n
	}
	return nil
}

func floatVector(vals []string, dst []float64) error {
	if len(vals) != len(dst) {
		return errors.Errorf("expected %d values, got %d", len(dst), len(vals))
	}
	for i, v := range vals {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrapf(err, "bad number %q", v)
		}
		dst[i] = x
	}
	return nil
}
