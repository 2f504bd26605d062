package types

// Position is a point in the arm's working plane, in meters.
type Position struct {
	X float64
	Y float64
}

// LogRecord pairs the joint angles of one sample with the end effector
// position computed from them. The yaml keys and flow style define the
// snapshot file format and must not change.
type LogRecord struct {
	JointAngles [2]float64 `yaml:"joint angles,flow" json:"joint_angles"`
	EndEffector [2]float64 `yaml:"end effector position,flow" json:"end_effector_position"`
}

// NewLogRecord builds a record from the raw joint angles and the
// position derived from them.
func NewLogRecord(theta1, theta2 float64, pos Position) LogRecord {
	return LogRecord{
		JointAngles: [2]float64{theta1, theta2},
		EndEffector: [2]float64{pos.X, pos.Y},
	}
}
