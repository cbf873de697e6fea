package main

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cogrob/al5d/pkg/robot"
)

type JogCommand struct {
	Step float64 `long:"step" default:"10" description:"Initial jog increment, mm/degrees"`
}

var (
	jogTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	jogPanelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	jogStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	jogErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const jogMaxLogs = 5

// jogPose is the commanded workspace pose the keys nudge around.
type jogPose struct {
	x, y, z     float64 // mm
	pitch, roll float64 // degrees
	grip        float64 // mm
}

type jogModel struct {
	arm      *robot.Arm
	pose     jogPose
	step     float64
	logs     []string
	quitting bool
}

func initialJogModel(arm *robot.Arm, step float64) jogModel {
	// start from wherever the arm currently is
	angles, grip := arm.Pose()
	wrist := robot.ForwardKinematics(arm.Config().Geometry, angles)
	p := wrist.Origin()
	a := wrist.Approach()

	return jogModel{
		arm:  arm,
		step: step,
		pose: jogPose{
			x:     p.X,
			y:     p.Y,
			z:     p.Z,
			pitch: math.Asin(a.Z) * 180 / math.Pi,
			roll:  angles[robot.WristRoll] * 180 / math.Pi,
			grip:  grip,
		},
	}
}

func (m *jogModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > jogMaxLogs {
		m.logs = m.logs[len(m.logs)-jogMaxLogs:]
	}
}

// apply commands the arm to the model's pose, reverting to prev if the
// pose cannot be reached.
func (m *jogModel) apply(prev jogPose) {
	if m.pose.grip != prev.grip {
		if _, err := m.arm.Grasp(m.pose.grip); err != nil {
			m.addLog(err.Error())
			m.pose = prev
		}
		return
	}

	target := targetPose(m.pose.x, m.pose.y, m.pose.z, m.pose.pitch, m.pose.roll)
	if _, err := m.arm.Move(target); err != nil {
		m.addLog(err.Error())
		m.pose = prev
	}
}

func (m jogModel) Init() tea.Cmd {
	return nil
}

func (m jogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	prev := m.pose
	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "left":
		m.pose.x -= m.step
	case "right":
		m.pose.x += m.step
	case "down":
		m.pose.y -= m.step
	case "up":
		m.pose.y += m.step
	case "s":
		m.pose.z -= m.step
	case "w":
		m.pose.z += m.step
	case "a":
		m.pose.pitch -= m.step
	case "d":
		m.pose.pitch += m.step
	case "z":
		m.pose.roll -= m.step
	case "x":
		m.pose.roll += m.step
	case "c":
		m.pose.grip = math.Max(m.pose.grip-m.step, robot.MinGraspOpening)
	case "o":
		m.pose.grip = math.Min(m.pose.grip+m.step, robot.GripperOpen)

	case "[":
		if m.step > 1 {
			m.step /= 2
		}
		return m, nil
	case "]":
		if m.step < 40 {
			m.step *= 2
		}
		return m, nil

	case "h":
		if _, err := m.arm.Home(); err != nil {
			m.addLog(err.Error())
			return m, nil
		}
		return initialJogModel(m.arm, m.step), nil

	default:
		return m, nil
	}

	m.apply(prev)
	return m, nil
}

func (m jogModel) View() string {
	if m.quitting {
		return "Jog stopped.\n"
	}

	var sb strings.Builder
	sb.WriteString(jogTitleStyle.Render("AL5D Jog"))
	sb.WriteString(jogStatusStyle.Render(fmt.Sprintf("  step %.0f", m.step)))
	sb.WriteString("\n\n")

	angles, grip := m.arm.Pose()
	sp := m.arm.Config().Calibration.Setpoints(angles, grip)

	pose := fmt.Sprintf(
		"x %7.1f mm    y %7.1f mm    z %7.1f mm\npitch %4.0f°     roll %4.0f°      grip %4.1f mm",
		m.pose.x, m.pose.y, m.pose.z, m.pose.pitch, m.pose.roll, m.pose.grip)
	sb.WriteString(jogPanelStyle.Render(pose))
	sb.WriteString("\n")

	var joints []string
	for _, j := range robot.AllJoints() {
		joints = append(joints, fmt.Sprintf("%-11s %7.1f°  %4d µs", j, angles[j]*180/math.Pi, sp[j]))
	}
	joints = append(joints, fmt.Sprintf("%-11s %7.1f mm %4d µs", robot.GripperServo, grip, sp[robot.GripperServo]))
	sb.WriteString(jogPanelStyle.Render(strings.Join(joints, "\n")))
	sb.WriteString("\n")

	if len(m.logs) > 0 {
		sb.WriteString(jogErrorStyle.Render(strings.Join(m.logs, "\n")))
		sb.WriteString("\n")
	}

	sb.WriteString(jogStatusStyle.Render(
		"arrows x/y   w/s z   a/d pitch   z/x roll   o/c gripper   [/] step   h home   q quit"))
	sb.WriteString("\n")
	return sb.String()
}

func (c *JogCommand) Execute(args []string) error {
	arm, err := openArm()
	if err != nil {
		return err
	}
	defer arm.Close()

	p := tea.NewProgram(initialJogModel(arm, c.Step), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
