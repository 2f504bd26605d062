package kinematics_test

import (
	"math"
	"testing"

	"github.com/robolab-org/go-armsim/pkg/kinematics"
	"github.com/robolab-org/go-armsim/pkg/types"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEndEffectorFullyExtended(t *testing.T) {
	k, err := kinematics.New(1.0, 1.0, 0, 0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	pos := k.EndEffector(0, 0)
	if !almostEqual(pos.X, 2.0) || !almostEqual(pos.Y, 0.0) {
		t.Errorf("EndEffector(0, 0) = (%v, %v), want (2, 0)", pos.X, pos.Y)
	}
}

func TestEndEffectorKnownPoses(t *testing.T) {
	tests := []struct {
		name           string
		link1, link2   float64
		theta1, theta2 float64
		want           types.Position
	}{
		{"quarter turn at base", 1, 1, math.Pi / 2, 0, types.Position{X: 0, Y: 2}},
		{"elbow bend", 1, 1, 0, math.Pi / 2, types.Position{X: 1, Y: 1}},
		{"folded back", 1.5, 0.5, 0, math.Pi, types.Position{X: 1, Y: 0}},
		{"half turn", 1, 1, math.Pi, 0, types.Position{X: -2, Y: 0}},
	}

	for _, tt := range tests {
		k, err := kinematics.New(tt.link1, tt.link2, 0, 0)
		if err != nil {
			t.Fatalf("%s: New failed: %v", tt.name, err)
		}
		pos := k.EndEffector(tt.theta1, tt.theta2)
		if !almostEqual(pos.X, tt.want.X) || !almostEqual(pos.Y, tt.want.Y) {
			t.Errorf("%s: EndEffector = (%v, %v), want (%v, %v)",
				tt.name, pos.X, pos.Y, tt.want.X, tt.want.Y)
		}
	}
}

func TestOffsetsSubtractedBeforeTransform(t *testing.T) {
	// A 90 degree offset on joint 1 cancels a pi/2 raw reading.
	k, err := kinematics.New(1.0, 1.0, 90, 0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	pos := k.EndEffector(math.Pi/2, 0)
	if !almostEqual(pos.X, 2.0) || !almostEqual(pos.Y, 0.0) {
		t.Errorf("offset-corrected EndEffector = (%v, %v), want (2, 0)", pos.X, pos.Y)
	}
}

func TestDegToRad(t *testing.T) {
	if got := kinematics.DegToRad(180); !almostEqual(got, math.Pi) {
		t.Errorf("DegToRad(180) = %v, want pi", got)
	}
	if got := kinematics.DegToRad(0); got != 0 {
		t.Errorf("DegToRad(0) = %v, want 0", got)
	}
}

func TestRejectsNonPositiveLinks(t *testing.T) {
	if _, err := kinematics.New(0, 1, 0, 0); err == nil {
		t.Error("expected error for zero link1")
	}
	if _, err := kinematics.New(1, -2, 0, 0); err == nil {
		t.Error("expected error for negative link2")
	}
}

func TestReach(t *testing.T) {
	k, err := kinematics.New(1.2, 0.8, 0, 0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := k.Reach(); !almostEqual(got, 2.0) {
		t.Errorf("Reach() = %v, want 2", got)
	}
}

func TestEndEffectorContinuity(t *testing.T) {
	k, err := kinematics.New(1.0, 1.0, 0, 0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// The transform is smooth, so a tiny angle perturbation moves the
	// end effector by at most a few times that perturbation.
	const eps = 1e-6
	for theta1 := 0.0; theta1 < 3.15; theta1 += 0.35 {
		for theta2 := 0.0; theta2 < 3.15; theta2 += 0.35 {
			base := k.EndEffector(theta1, theta2)
			near := k.EndEffector(theta1+eps, theta2+eps)
			if d := math.Hypot(near.X-base.X, near.Y-base.Y); d > 10*eps {
				t.Fatalf("EndEffector jumped %v for a %v perturbation at (%v, %v)",
					d, eps, theta1, theta2)
			}
		}
	}
}

func TestPositionStaysWithinReach(t *testing.T) {
	k, err := kinematics.New(1.0, 1.0, 0, 0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for theta1 := 0.0; theta1 < 3.15; theta1 += 0.35 {
		for theta2 := 0.0; theta2 < 3.15; theta2 += 0.35 {
			pos := k.EndEffector(theta1, theta2)
			dist := math.Hypot(pos.X, pos.Y)
			if dist > k.Reach()+1e-9 {
				t.Fatalf("EndEffector(%v, %v) at distance %v exceeds reach %v",
					theta1, theta2, dist, k.Reach())
			}
		}
	}
}
