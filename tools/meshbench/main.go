// meshbench measures the connectivity build on a mesh exchange file using
// hardware performance counters (Linux perf events). Useful for sizing the
// worker count on large meshes.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	perf "github.com/hodgesds/perf-utils"

	"github.com/gotough/gotough/grid"
	"github.com/gotough/gotough/mesh"
)

func main() {
	meshFile := flag.String("mesh", "", "mesh exchange file (YAML or JSON)")
	iterations := flag.Int("n", 10, "number of build iterations")
	workers := flag.Int("workers", 0, "worker goroutines for the geometry pass, 0 = GOMAXPROCS")
	flag.Parse()

	if *meshFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	m, err := mesh.DecodeFile(*meshFile)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("Mesh: %d points, %d cells\n", m.NumPoints(), m.NumCells())

	run := func() error {
		for i := 0; i < *iterations; i++ {
			if _, err := grid.Build(m, grid.Options{Workers: *workers}); err != nil {
				return err
			}
		}
		return nil
	}

	start := time.Now()
	instrs, instrErr := perf.CPUInstructions(run)
	elapsed := time.Since(start)

	fmt.Printf("%d builds in %v (%.3f ms/build)\n",
		*iterations, elapsed, float64(elapsed.Milliseconds())/float64(*iterations))
	if instrErr != nil {
		// Counters need Linux and perf_event access; timing alone still stands
		fmt.Printf("CPU instruction counter unavailable: %v\n", instrErr)
	} else {
		fmt.Printf("CPU instructions: %d (%.1f per cell-build)\n",
			instrs.Value, float64(instrs.Value)/float64(*iterations*m.NumCells()))
	}

	cycles, cycleErr := perf.CPUCycles(run)
	if cycleErr == nil {
		fmt.Printf("CPU cycles: %d\n", cycles.Value)
	}
}
