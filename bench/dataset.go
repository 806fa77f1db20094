package bench

import (
	"math/rand"
)

// Dataset is one fixed, reproducible set of data blocks. The harness
// generates one dataset per leaf count and replays it identically for
// every algorithm, so timing differences within a size reflect the
// hash backend alone and never the input.
type Dataset struct {
	Seed   int64
	Blocks [][]byte
}

// GenerateDataset derives count blocks of blockSize bytes from seed.
// Identical arguments always produce identical blocks.
func GenerateDataset(count, blockSize int, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))
	blocks := make([][]byte, count)
	for i := range blocks {
		block := make([]byte, blockSize)
		rng.Read(block)
		blocks[i] = block
	}
	return &Dataset{Seed: seed, Blocks: blocks}
}
