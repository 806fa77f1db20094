package bench_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merklebench/merklebench/bench"
)

func TestGenerateDatasetDeterminism(t *testing.T) {
	first := bench.GenerateDataset(32, 128, 7)
	second := bench.GenerateDataset(32, 128, 7)
	require.Len(t, first.Blocks, 32)
	assert.Equal(t, first.Blocks, second.Blocks)
	for i, block := range first.Blocks {
		assert.Len(t, block, 128, "block %d", i)
	}
}

func TestGenerateDatasetSeedSensitivity(t *testing.T) {
	first := bench.GenerateDataset(8, 64, 1)
	second := bench.GenerateDataset(8, 64, 2)
	assert.NotEqual(t, first.Blocks, second.Blocks)
}
