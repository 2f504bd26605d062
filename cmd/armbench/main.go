package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/robolab-org/go-armsim/pkg/bench"
)

func main() {
	dataDir := flag.String("data-dir", "", "data directory for the benchmark snapshot (default: fresh temp dir)")
	publishers := flag.Int("publishers", 4, "number of concurrent publishers")
	samples := flag.Int("samples", 500, "samples per publisher")
	syncOnWrite := flag.Bool("sync", false, "force data to stable storage after every snapshot rewrite")
	flag.Parse()

	dir := *dataDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "armbench-*")
		if err != nil {
			fmt.Println("❌ temp dir:", err)
			os.Exit(1)
		}
		dir = tmp
	}

	runner := bench.NewRunner(dir, *publishers, *samples, *syncOnWrite)
	res, err := runner.Run()
	if err != nil {
		fmt.Println("❌ benchmark failed:", err)
		os.Exit(1)
	}
	res.Report()
}
