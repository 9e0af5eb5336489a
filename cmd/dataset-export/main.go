// dataset-export generates a synthetic pump/compressor dataset and writes it
// to a CSV file, for demos and offline analysis without running the service.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/chrissnell/pumpmon/internal/generator"
	"github.com/chrissnell/pumpmon/pkg/export"
)

func main() {
	var (
		output   = flag.String("output", "efficiency_data.csv", "Path to output CSV file")
		count    = flag.Int("count", generator.DefaultCount, "Number of readings to generate")
		interval = flag.Duration("interval", generator.DefaultInterval, "Spacing between readings")
		seed     = flag.Uint64("seed", 0, "Random seed (0 = time-based)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[dataset-export] ", log.LstdFlags)

	gen := generator.New(*count, *interval, *seed)
	start := time.Now()
	ds := gen.Generate()

	f, err := os.Create(*output)
	if err != nil {
		logger.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, ds); err != nil {
		logger.Fatalf("Failed to write CSV: %v", err)
	}

	logger.Printf("Wrote %d readings (%d critical) to %s in %v",
		len(ds.Readings), ds.CriticalCount(), *output, time.Since(start))
}
