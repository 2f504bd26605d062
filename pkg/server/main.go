package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/robolab-org/go-armsim/pkg/recorder"
	"github.com/robolab-org/go-armsim/pkg/stream"
	"github.com/robolab-org/go-armsim/util"
)

// Status reports pipeline progress for operational checks.
type Status struct {
	Topic       string `json:"topic"`
	Published   uint64 `json:"published"`
	Subscribers int    `json:"subscribers"`
	Received    int    `json:"received"`
	Target      int    `json:"target"`
	Done        bool   `json:"done"`
	OutputPath  string `json:"output_path"`
}

// Handler exposes /healthz and /status for the running pipeline.
func Handler(bus *stream.Bus, rec *recorder.Recorder, outputPath string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		st := Status{
			Topic:       bus.Topic(),
			Published:   bus.Published(),
			Subscribers: bus.SubscriberCount(),
			Received:    rec.Received(),
			Target:      rec.Target(),
			Done:        rec.ReachedTarget(),
			OutputPath:  outputPath,
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(st); err != nil {
			util.Error("status encode failed: %v", err)
		}
	})

	return mux
}

// RunStatusServer serves the health endpoints until the process exits.
func RunStatusServer(port int, bus *stream.Bus, rec *recorder.Recorder, outputPath string) error {
	addr := fmt.Sprintf(":%d", port)
	util.Info("status server listening on %s", addr)
	return http.ListenAndServe(addr, Handler(bus, rec, outputPath))
}
