package types

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLogRecordYAMLShape(t *testing.T) {
	rec := NewLogRecord(1.5, 0.5, Position{X: 0.25, Y: -1})

	out, err := yaml.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	got := string(out)
	want := "joint angles: [1.5, 0.5]\nend effector position: [0.25, -1]\n"
	if got != want {
		t.Errorf("marshal = %q, want %q", got, want)
	}
}

func TestLogRecordListYAMLShape(t *testing.T) {
	recs := []LogRecord{
		NewLogRecord(1.5, 0.5, Position{X: 0.25, Y: -1}),
		NewLogRecord(0, 0, Position{X: 2, Y: 0}),
	}

	out, err := yaml.Marshal(recs)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	got := string(out)
	if !strings.Contains(got, "- joint angles: [1.5, 0.5]") {
		t.Errorf("list output missing flow-style angles entry: %q", got)
	}
	if !strings.Contains(got, "  end effector position: [2, 0]") {
		t.Errorf("list output missing indented position entry: %q", got)
	}
}

func TestLogRecordListYAMLStable(t *testing.T) {
	recs := []LogRecord{
		NewLogRecord(1.5, 0.5, Position{X: 0.25, Y: -1}),
		NewLogRecord(0, 0, Position{X: 2, Y: 0}),
	}

	first, err := yaml.Marshal(recs)
	if err != nil {
		t.Fatalf("first marshal failed: %v", err)
	}
	second, err := yaml.Marshal(recs)
	if err != nil {
		t.Fatalf("second marshal failed: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("marshal not stable:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestLogRecordYAMLRoundtrip(t *testing.T) {
	in := []LogRecord{
		NewLogRecord(1.5, 0.5, Position{X: 0.25, Y: -1}),
		NewLogRecord(3.0, 0.75, Position{X: 0.5, Y: 1.25}),
	}

	out, err := yaml.Marshal(in)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var back []LogRecord
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(back) != len(in) {
		t.Fatalf("roundtrip length = %d, want %d", len(back), len(in))
	}
	for i := range in {
		if back[i] != in[i] {
			t.Errorf("record %d: roundtrip = %+v, want %+v", i, back[i], in[i])
		}
	}
}
