package types

import (
	"errors"
	"fmt"
	"time"
)

// JointCount is the number of joints on the arm.
const JointCount = 2

// ErrMalformedSample is returned when a sample does not carry exactly
// one name and one position per joint.
var ErrMalformedSample = errors.New("malformed sample: expected exactly 2 joint names and 2 positions")

// JointSample is a single telemetry reading emitted by the generator.
type JointSample struct {
	Seq       uint64
	Timestamp time.Time
	Names     []string
	Positions []float64 // radians, aligned with Names
}

// JointNames returns the canonical joint names in link order.
func JointNames() []string {
	return []string{"joint1", "joint2"}
}

// Validate checks the per-joint field cardinality.
func (s JointSample) Validate() error {
	if len(s.Names) != JointCount || len(s.Positions) != JointCount {
		return ErrMalformedSample
	}
	return nil
}

func (s JointSample) String() string {
	return fmt.Sprintf("seq=%d positions=%v", s.Seq, s.Positions)
}
