// merklebench benchmarks interchangeable hash algorithms inside a
// Merkle tree workload and reports per-operation timings.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
