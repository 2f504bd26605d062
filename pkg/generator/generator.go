package generator

import (
	"context"
	"math/rand"
	"time"

	"github.com/robolab-org/go-armsim/pkg/metrics"
	"github.com/robolab-org/go-armsim/pkg/stream"
	"github.com/robolab-org/go-armsim/pkg/types"
	"github.com/robolab-org/go-armsim/util"
)

// maxCentiradians bounds the raw angle draw: angles are uniform over
// [0, 3.15) radians with 0.01 resolution.
const maxCentiradians = 315

// Generator emits random two-joint samples on a fixed cadence.
type Generator struct {
	bus  *stream.Bus
	rate int
	rng  *rand.Rand
	seq  uint64
}

// New creates a generator publishing to bus at rate samples per
// second. seed feeds the angle source; pass time.Now().UnixNano() for
// a different trajectory per run.
func New(bus *stream.Bus, rate int, seed int64) *Generator {
	if rate <= 0 {
		rate = 30
	}
	return &Generator{
		bus:  bus,
		rate: rate,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Run publishes one sample per tick until the context is cancelled or
// the bus closes. It blocks until then.
func (g *Generator) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(g.rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	util.Info("generator started at %d samples/s on topic '%s'", g.rate, g.bus.Topic())

	for {
		select {
		case <-ctx.Done():
			util.Info("generator stopped after %d samples", g.seq)
			return nil
		case <-ticker.C:
			sample := g.next()
			if err := g.bus.Publish(sample); err != nil {
				util.Info("generator stopping after %d samples: %v", g.seq, err)
				return nil
			}
			metrics.SamplesPublished.Inc()
			util.Debug("published %s", sample)
		}
	}
}

// Emitted returns the number of samples drawn so far. Only safe to
// call after Run has returned.
func (g *Generator) Emitted() uint64 {
	return g.seq
}

func (g *Generator) next() types.JointSample {
	g.seq++
	return types.JointSample{
		Seq:       g.seq,
		Timestamp: time.Now().UTC(),
		Names:     types.JointNames(),
		Positions: []float64{g.draw(), g.draw()},
	}
}

// draw returns a whole number of centiradians scaled down, never the
// upper bound itself.
func (g *Generator) draw() float64 {
	return float64(g.rng.Intn(maxCentiradians)) / 100.0
}
