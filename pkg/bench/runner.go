package bench

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/robolab-org/go-armsim/pkg/disk"
	"github.com/robolab-org/go-armsim/pkg/kinematics"
	"github.com/robolab-org/go-armsim/pkg/recorder"
	"github.com/robolab-org/go-armsim/pkg/stream"
	"github.com/robolab-org/go-armsim/util"
)

// Runner drives the full pipeline in-process with unthrottled
// publishers, measuring recorder throughput including the per-sample
// snapshot rewrite. The rewrite grows with every record, so large
// sample counts slow down as the run progresses.
type Runner struct {
	DataDir             string
	Publishers          int
	SamplesPerPublisher int
	SyncOnWrite         bool

	seq uint64
}

type Result struct {
	Publishers   int
	TotalSamples int
	Recorded     int
	Duration     time.Duration
	Throughput   float64 // samples per second
	SnapshotPath string
	SnapshotSize int64
}

func NewRunner(dataDir string, publishers, samplesPerPublisher int, syncOnWrite bool) *Runner {
	return &Runner{
		DataDir:             dataDir,
		Publishers:          publishers,
		SamplesPerPublisher: samplesPerPublisher,
		SyncOnWrite:         syncOnWrite,
	}
}

func (r *Runner) Run() (*Result, error) {
	target := r.Publishers * r.SamplesPerPublisher
	if target <= 0 {
		return nil, fmt.Errorf("nothing to publish: %d publishers x %d samples", r.Publishers, r.SamplesPerPublisher)
	}

	if _, err := disk.EnsureOutputDir(r.DataDir); err != nil {
		return nil, fmt.Errorf("prepare output dir: %w", err)
	}
	outPath := disk.ResolveOutputPath(r.DataDir, time.Now())
	writer := disk.NewSnapshotWriter(outPath, r.SyncOnWrite)

	transform, err := kinematics.New(1, 1, 0, 0)
	if err != nil {
		return nil, err
	}
	rec, err := recorder.New(transform, writer, target)
	if err != nil {
		return nil, err
	}

	bus := stream.NewBus("bench_joint_states", 256)
	_, samples, err := bus.Subscribe("bench-recorder")
	if err != nil {
		return nil, err
	}

	start := time.Now()

	recDone := make(chan error, 1)
	go func() { recDone <- rec.Run(context.Background(), samples) }()

	var wg sync.WaitGroup
	for i := 0; i < r.Publishers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p := newPublisher(bus, r.SamplesPerPublisher, time.Now().UnixNano()+int64(id), &r.seq)
			if err := p.run(id); err != nil {
				util.Error("bench publisher %d: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	<-rec.Done()
	duration := time.Since(start)

	go func() {
		for range samples {
		}
	}()
	bus.Close()
	<-recDone

	var size int64
	if info, err := os.Stat(outPath); err == nil {
		size = info.Size()
	}

	return &Result{
		Publishers:   r.Publishers,
		TotalSamples: target,
		Recorded:     rec.Received(),
		Duration:     duration,
		Throughput:   float64(rec.Received()) / duration.Seconds(),
		SnapshotPath: outPath,
		SnapshotSize: size,
	}, nil
}

// Report prints the benchmark summary to stdout.
func (res *Result) Report() {
	fmt.Printf("\n🧪 BENCHMARK RESULT [pipeline] 🧪\n")
	fmt.Printf("-------------------------------------\n")
	fmt.Printf(" Publishers    : %d\n", res.Publishers)
	fmt.Printf(" Total Samples : %d\n", res.TotalSamples)
	fmt.Printf(" Recorded      : %d\n", res.Recorded)
	fmt.Printf(" Duration      : %v\n", res.Duration)
	fmt.Printf(" Throughput    : %.2f samples/sec\n", res.Throughput)
	fmt.Printf(" Snapshot      : %s (%d bytes)\n", res.SnapshotPath, res.SnapshotSize)
	fmt.Printf("-------------------------------------\n")
}
