package bench

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/robolab-org/go-armsim/pkg/stream"
	"github.com/robolab-org/go-armsim/pkg/types"
)

const maxCentiradians = 315

// publisher floods the bus with well-formed samples as fast as the
// recorder will take them.
type publisher struct {
	bus   *stream.Bus
	count int
	rng   *rand.Rand
	seq   *uint64
}

func newPublisher(bus *stream.Bus, count int, seed int64, seq *uint64) *publisher {
	return &publisher{
		bus:   bus,
		count: count,
		rng:   rand.New(rand.NewSource(seed)),
		seq:   seq,
	}
}

func (p *publisher) run(id int) error {
	for i := 0; i < p.count; i++ {
		sample := types.JointSample{
			Seq:       atomic.AddUint64(p.seq, 1),
			Timestamp: time.Now().UTC(),
			Names:     types.JointNames(),
			Positions: []float64{p.draw(), p.draw()},
		}
		if err := p.bus.Publish(sample); err != nil {
			return fmt.Errorf("publisher %d: %w", id, err)
		}
	}
	return nil
}

func (p *publisher) draw() float64 {
	return float64(p.rng.Intn(maxCentiradians)) / 100.0
}
