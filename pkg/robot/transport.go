package robot

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/cogrob/al5d/pkg/frame"
	"github.com/cogrob/al5d/pkg/ssc32"
)

// Command is one complete actuator command: the physical setpoints for
// the servo controller and the joint-space pose they were derived from,
// for transports that publish joint state instead of pulse widths. Wrist
// is the forward-kinematic pose of the commanded angles.
type Command struct {
	Setpoints [NumServos]int
	Speed     int // microseconds of pulse width per second, 0 for full speed
	Angles    JointAngles
	Gripper   float64 // mm
	Wrist     frame.Frame
}

// Transport delivers commands to the robot or a simulator. Exactly one
// transport owns the underlying channel for the life of the process.
type Transport interface {
	Send(Command) error
	Close() error
}

// MotionQuerier is the optional transport capability of reporting
// whether the last command is still executing. The serial transport has
// it; the joint-state publisher, which has no feedback channel, does not.
type MotionQuerier interface {
	Moving() (bool, error)
}

type serialTransport struct {
	ctrl     *ssc32.Controller
	channels [NumServos]int
}

// NewSerialTransport sends commands to an SSC-32U servo controller,
// mapping servo index to board pin through channels.
func NewSerialTransport(ctrl *ssc32.Controller, channels [NumServos]int) Transport {
	return &serialTransport{ctrl: ctrl, channels: channels}
}

func (t *serialTransport) Send(cmd Command) error {
	targets := make([]ssc32.Target, NumServos)
	for i, sp := range cmd.Setpoints {
		targets[i] = ssc32.Target{Channel: t.channels[i], Pulse: sp, Speed: cmd.Speed}
	}
	return t.ctrl.SetTargets(targets)
}

// Moving relays the board's motion query: true while any servo is still
// travelling towards its last setpoint.
func (t *serialTransport) Moving() (bool, error) {
	return t.ctrl.Moving()
}

func (t *serialTransport) Close() error {
	return t.ctrl.Close()
}

// jointState is the message published for every successful command,
// mirroring the joints_positions command topic the simulator listens on:
// five joint angles in radians followed by the gripper distance in
// metres, plus the wrist orientation as a w-x-y-z unit quaternion.
type jointState struct {
	Topic       string    `json:"topic"`
	Positions   []float64 `json:"positions"`
	Orientation []float64 `json:"orientation"`
}

// DefaultTopic is the simulator's command topic.
const DefaultTopic = "/lynxmotion_al5d/joints_positions/command"

// JointStatePublisher is the message-bus transport: it encodes each
// command as a joint-state JSON message on w instead of driving hardware.
type JointStatePublisher struct {
	Topic string
	enc   *json.Encoder
	w     io.Writer
}

// NewJointStatePublisher publishes commands on w under DefaultTopic.
func NewJointStatePublisher(w io.Writer) *JointStatePublisher {
	return &JointStatePublisher{Topic: DefaultTopic, enc: json.NewEncoder(w), w: w}
}

func (p *JointStatePublisher) Send(cmd Command) error {
	msg := jointState{Topic: p.Topic, Positions: make([]float64, 0, NumServos)}
	for _, a := range cmd.Angles {
		msg.Positions = append(msg.Positions, a)
	}
	msg.Positions = append(msg.Positions, cmd.Gripper/1000)
	q := cmd.Wrist.Orientation()
	msg.Orientation = []float64{q.Real, q.Imag, q.Jmag, q.Kmag}
	return errors.Wrap(p.enc.Encode(msg), "publish joint state")
}

func (p *JointStatePublisher) Close() error {
	if c, ok := p.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
