package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robolab-org/go-armsim/pkg/config"
	"github.com/robolab-org/go-armsim/pkg/disk"
	"github.com/robolab-org/go-armsim/pkg/generator"
	"github.com/robolab-org/go-armsim/pkg/kinematics"
	"github.com/robolab-org/go-armsim/pkg/metrics"
	"github.com/robolab-org/go-armsim/pkg/recorder"
	"github.com/robolab-org/go-armsim/pkg/server"
	"github.com/robolab-org/go-armsim/pkg/stream"
	"github.com/robolab-org/go-armsim/util"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	util.SetFile(cfg.LogFile, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogCompress)

	util.Info("🚀 Starting arm telemetry pipeline: target=%d rate=%d/s topic=%s",
		cfg.SampleTarget, cfg.SampleRate, cfg.Topic)
	util.Info("📊 Exporter: %v | links: %v/%v | offsets: %v/%v deg",
		cfg.EnableExporter, cfg.Link1, cfg.Link2, cfg.Theta1Offset, cfg.Theta2Offset)

	if cfg.EnableExporter {
		metrics.StartMetricsServer(cfg.ExporterPort)
	}

	// Initialization
	if _, err := disk.EnsureOutputDir(cfg.DataDir); err != nil {
		log.Fatalf("❌ Failed to prepare output dir: %v", err)
	}
	if pruned, err := disk.PruneSnapshots(cfg.DataDir, cfg.SnapshotKeep, cfg.CleanupPolicy); err != nil {
		util.Warn("Snapshot retention failed: %v", err)
	} else if pruned > 0 {
		util.Info("Pruned %d snapshot(s) from previous runs (%s)", pruned, cfg.CleanupPolicy)
	}
	outPath := disk.ResolveOutputPath(cfg.DataDir, time.Now())
	writer := disk.NewSnapshotWriter(outPath, cfg.SyncOnWrite)

	transform, err := kinematics.New(cfg.Link1, cfg.Link2, cfg.Theta1Offset, cfg.Theta2Offset)
	if err != nil {
		log.Fatalf("❌ Invalid arm geometry: %v", err)
	}

	rec, err := recorder.New(transform, writer, cfg.SampleTarget)
	if err != nil {
		log.Fatalf("❌ Failed to create recorder: %v", err)
	}

	bus := stream.NewBus(cfg.Topic, cfg.SubscriberChannelBufSize)
	_, samples, err := bus.Subscribe("recorder")
	if err != nil {
		log.Fatalf("❌ Failed to subscribe recorder: %v", err)
	}

	gen := generator.New(bus, cfg.SampleRate, time.Now().UnixNano())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := server.RunStatusServer(cfg.HealthCheckPort, bus, rec, outPath); err != nil {
			util.Error("status server stopped: %v", err)
		}
	}()

	errCh := make(chan error, 2)
	go func() { errCh <- gen.Run(ctx) }()
	go func() { errCh <- rec.Run(ctx, samples) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		util.Info("Received signal: %v, shutting down...", sig)
	case err := <-errCh:
		if err != nil {
			util.Error("Pipeline error: %v", err)
		}
	case <-rec.Done():
		util.Info("Sample target reached, shutting down...")
	}

	cancel()

	// leftover samples must not wedge the bus shutdown
	go func() {
		for range samples {
		}
	}()
	bus.Close()

	util.Info("✅ Recorded %d/%d samples to %s", rec.Received(), rec.Target(), writer.Path())
	os.Exit(0)
}
