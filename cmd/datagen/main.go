package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"healthforce/cmd/datagen/engine"
)

func main() {
	regions := flag.Int("regions", 13, "Number of Saudi regions to generate (max 13)")
	scenario := flag.String("scenario", "balanced", "Scenario to generate: balanced, shortage, surplus")
	outDir := flag.String("out", "./data", "Output directory for the dataset file")
	seed := flag.Int64("seed", 42, "Random seed for reproducible datasets")
	baseYear := flag.Int("base-year", time.Now().Year(), "Latest data year in the generated records")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Regions:  *regions,
		Scenario: *scenario,
		Seed:     *seed,
		BaseYear: *baseYear,
	}

	fmt.Printf("Generating scenario '%s' (%d regions, base year %d) to %s...\n",
		cfg.Scenario, cfg.Regions, cfg.BaseYear, *outDir)

	file, err := engine.Generate(cfg)
	if err != nil {
		fmt.Printf("Failed to generate dataset: %v\n", err)
		os.Exit(1)
	}

	if err := engine.Save(*outDir, file); err != nil {
		fmt.Printf("Failed to save dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
