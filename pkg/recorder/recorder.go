package recorder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robolab-org/go-armsim/pkg/kinematics"
	"github.com/robolab-org/go-armsim/pkg/metrics"
	"github.com/robolab-org/go-armsim/pkg/types"
	"github.com/robolab-org/go-armsim/util"
)

// ErrStopped is returned for samples delivered after the sample target
// was already reached.
var ErrStopped = errors.New("recorder: sample target reached")

// SnapshotSink persists the accumulated record log.
type SnapshotSink interface {
	Write(records []types.LogRecord) (int, error)
	Path() string
}

// Recorder consumes joint samples, converts each into an end effector
// position, and keeps the growing record log mirrored on disk. After
// the configured number of samples has been recorded it requests
// shutdown by closing Done. Sample handling is strictly serialized: a
// sample in flight always runs to completion first.
type Recorder struct {
	transform *kinematics.Planar2Link
	sink      SnapshotSink
	target    int

	mu       sync.Mutex
	records  []types.LogRecord
	received int
	stopped  bool

	done chan struct{}
}

func New(transform *kinematics.Planar2Link, sink SnapshotSink, target int) (*Recorder, error) {
	if transform == nil {
		return nil, errors.New("recorder: transform is nil")
	}
	if sink == nil {
		return nil, errors.New("recorder: snapshot sink is nil")
	}
	if target < 1 {
		return nil, fmt.Errorf("recorder: sample target must be >= 1, got %d", target)
	}
	return &Recorder{
		transform: transform,
		sink:      sink,
		target:    target,
		records:   make([]types.LogRecord, 0, target),
		done:      make(chan struct{}),
	}, nil
}

// OnSample processes one sample: validate, transform, append, rewrite
// the whole snapshot, count. Malformed samples are rejected without
// counting. A failed disk write is logged and counted as received
// anyway, so the in-memory log stays authoritative.
func (r *Recorder) OnSample(sample types.JointSample) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return ErrStopped
	}

	if err := sample.Validate(); err != nil {
		metrics.SamplesRejected.Inc()
		util.Warn("rejecting sample %d: %v", sample.Seq, err)
		return err
	}

	start := time.Now()

	pos := r.transform.EndEffector(sample.Positions[0], sample.Positions[1])
	r.records = append(r.records, types.NewLogRecord(sample.Positions[0], sample.Positions[1], pos))

	n, err := r.sink.Write(r.records)
	if err != nil {
		metrics.SnapshotWriteFailures.Inc()
		util.Error("snapshot write failed, sample still counted: %v", err)
	} else {
		metrics.SnapshotBytes.Set(float64(n))
	}

	r.received++
	metrics.PushSample(time.Since(start).Seconds())
	metrics.LogRecords.Set(float64(len(r.records)))
	util.Debug("recorded sample %d/%d at (%.4f, %.4f)", r.received, r.target, pos.X, pos.Y)

	if r.received == r.target {
		r.stopped = true
		close(r.done)
		util.Info("sample target %d reached, requesting shutdown", r.target)
	}
	return nil
}

// Run consumes samples from ch until the target is reached, ch closes,
// or the context is cancelled. Malformed samples are skipped, not
// fatal.
func (r *Recorder) Run(ctx context.Context, ch <-chan types.JointSample) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case sample, ok := <-ch:
			if !ok {
				return nil
			}
			if err := r.OnSample(sample); errors.Is(err, ErrStopped) {
				return nil
			}
			if r.ReachedTarget() {
				return nil
			}
		}
	}
}

// Done is closed once the sample target has been reached.
func (r *Recorder) Done() <-chan struct{} {
	return r.done
}

// ReachedTarget reports whether the shutdown request was issued.
func (r *Recorder) ReachedTarget() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Received returns how many samples have been recorded.
func (r *Recorder) Received() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.received
}

// Target returns the configured sample target.
func (r *Recorder) Target() int {
	return r.target
}

// Records returns a copy of the accumulated log.
func (r *Recorder) Records() []types.LogRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.LogRecord, len(r.records))
	copy(out, r.records)
	return out
}
