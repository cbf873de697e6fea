package robot

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func testCalibration(wrist WristType) Calibration {
	return Calibration{
		Channels:        [NumServos]int{0, 1, 2, 3, 4, 5},
		Home:            [NumServos]int{1510, 1480, 1505, 1495, 1500, 2000},
		PulsesPerDegree: [NumServos]float64{10.2, 10.6, 10.0, 9.9, 10.1, 30.0},
		Wrist:           wrist,
		Limits:          DefaultLimits(),
	}
}

func TestSetpointsAtHome(t *testing.T) {
	cal := testCalibration(WristLightweight)
	sp := cal.Setpoints(HomeJointAngles(), GripperOpen)
	if sp != cal.Home {
		t.Errorf("Setpoints at home = %v, want %v", sp, cal.Home)
	}
}

func TestSetpointsKnownValues(t *testing.T) {
	cal := testCalibration(WristLightweight)

	tests := []struct {
		joint    Joint
		deg      float64
		expected int
	}{
		{BaseYaw, 10, 1510 + 102},   // +10° * 10.2 µs/°
		{BaseYaw, -45, 1510 - 459},  // -45° * 10.2
		{Shoulder, 100, 1480 + 106}, // 10° above home
		{Elbow, -100, 1505 - 100},   // 10° below home
		{WristRoll, 30, 1500 + 303},
	}

	for _, tt := range tests {
		angles := HomeJointAngles()
		angles[tt.joint] = tt.deg * math.Pi / 180
		sp := cal.Setpoints(angles, GripperOpen)
		if sp[tt.joint] != tt.expected {
			t.Errorf("%s at %.0f° = %d, want %d", tt.joint, tt.deg, sp[tt.joint], tt.expected)
		}
	}
}

func TestSetpointsMonotonic(t *testing.T) {
	cal := testCalibration(WristLightweight)
	for _, j := range AllJoints() {
		prev := math.MinInt32
		for deg := -90.0; deg <= 90.0; deg += 5 {
			angles := HomeJointAngles()
			angles[j] = deg * math.Pi / 180
			sp := cal.Setpoints(angles, GripperOpen)
			if sp[j] < prev {
				t.Errorf("%s: setpoint decreased at %.0f°", j, deg)
			}
			prev = sp[j]
		}
	}
}

func TestHeavyDutyWristFlipsRollOnly(t *testing.T) {
	light := testCalibration(WristLightweight)
	heavy := testCalibration(WristHeavyDuty)

	angles := JointAngles{0.3, 1.8, -1.2, -0.9, 0.5}
	spLight := light.Setpoints(angles, 20)
	spHeavy := heavy.Setpoints(angles, 20)

	for i := 0; i < NumServos; i++ {
		if Joint(i) == WristRoll {
			dLight := spLight[i] - light.Home[i]
			dHeavy := spHeavy[i] - heavy.Home[i]
			if dLight != -dHeavy {
				t.Errorf("wrist roll deltas %d and %d do not mirror", dLight, dHeavy)
			}
			continue
		}
		if spLight[i] != spHeavy[i] {
			t.Errorf("servo %d changed with wrist type: %d vs %d", i, spLight[i], spHeavy[i])
		}
	}
}

func TestGripperSetpoint(t *testing.T) {
	cal := testCalibration(WristLightweight)

	tests := []struct {
		mm       float64
		expected int
	}{
		{GripperOpen, 2000},   // fully open is the home setpoint
		{15, 2000 - 15*30},    // half open
		{GripperClosed, 2000 - 30*30},
		{50, 2000},            // clamped to fully open
		{-10, 2000 - 30*30},   // clamped to closed
	}

	for _, tt := range tests {
		if got := cal.GripperSetpoint(tt.mm); got != tt.expected {
			t.Errorf("GripperSetpoint(%.0f) = %d, want %d", tt.mm, got, tt.expected)
		}
	}
}

func TestCheckLimits(t *testing.T) {
	cal := testCalibration(WristLightweight)

	if err := cal.CheckLimits(HomeJointAngles()); err != nil {
		t.Errorf("home pose rejected: %v", err)
	}

	bad := HomeJointAngles()
	bad[BaseYaw] = 120 * math.Pi / 180
	err := cal.CheckLimits(bad)
	if err == nil {
		t.Fatal("120° base yaw accepted")
	}
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("error %v is not ErrOutOfRange", err)
	}

	// angles exactly on a limit are in range
	edge := HomeJointAngles()
	edge[WristRoll] = -90 * math.Pi / 180
	if err := cal.CheckLimits(edge); err != nil {
		t.Errorf("-90° wrist roll rejected: %v", err)
	}
}
