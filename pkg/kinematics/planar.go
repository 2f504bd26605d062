package kinematics

import (
	"fmt"
	"math"

	"github.com/robolab-org/go-armsim/pkg/types"
)

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Planar2Link is the forward-kinematics transform for a two-segment
// arm moving in a plane. Joint angles are radians end to end;
// calibration offsets arrive in degrees and are converted exactly once
// at construction.
type Planar2Link struct {
	link1        float64
	link2        float64
	theta1Offset float64 // radians
	theta2Offset float64 // radians
}

// New builds a transform. Link lengths must be positive.
func New(link1, link2, theta1OffsetDeg, theta2OffsetDeg float64) (*Planar2Link, error) {
	if link1 <= 0 || link2 <= 0 {
		return nil, fmt.Errorf("kinematics: link lengths must be positive, got %v and %v", link1, link2)
	}
	return &Planar2Link{
		link1:        link1,
		link2:        link2,
		theta1Offset: DegToRad(theta1OffsetDeg),
		theta2Offset: DegToRad(theta2OffsetDeg),
	}, nil
}

// EndEffector returns the tool position for raw joint angles, after
// subtracting the calibration offsets.
func (k *Planar2Link) EndEffector(theta1, theta2 float64) types.Position {
	t1 := theta1 - k.theta1Offset
	t2 := theta2 - k.theta2Offset

	x := k.link1*math.Cos(t1) + k.link2*math.Cos(t1+t2)
	y := k.link1*math.Sin(t1) + k.link2*math.Sin(t1+t2)
	return types.Position{X: x, Y: y}
}

// Reach returns the arm's maximum extension from the base.
func (k *Planar2Link) Reach() float64 {
	return k.link1 + k.link2
}
