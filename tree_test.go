package merklebench_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merklebench/merklebench"
	"github.com/merklebench/merklebench/hasher"
)

// Root of ["a","b","c","d"] under SHA-256 with the promote-unpaired
// policy. Fixed once and asserted byte for byte.
const sha256RootABCD = "14ede5e8e97ad9372327728f5099b95604a39593cac3bd38a343ad76205213e7"

func mustAlgo(t testing.TB, name string) hasher.Algorithm {
	t.Helper()
	algo, err := hasher.Lookup(name)
	require.NoError(t, err)
	return algo
}

func blocks(items ...string) [][]byte {
	out := make([][]byte, len(items))
	for i, s := range items {
		out[i] = []byte(s)
	}
	return out
}

func TestBuildEmptyInput(t *testing.T) {
	algo := mustAlgo(t, hasher.SHA256)
	_, err := merklebench.Build(nil, algo)
	require.ErrorIs(t, err, merklebench.ErrEmptyInput)
	_, err = merklebench.Build([][]byte{}, algo)
	require.ErrorIs(t, err, merklebench.ErrEmptyInput)
}

func TestBuildRegressionSHA256(t *testing.T) {
	algo := mustAlgo(t, hasher.SHA256)

	tests := []struct {
		name   string
		blocks [][]byte
		want   string
	}{
		{"four leaves", blocks("a", "b", "c", "d"), sha256RootABCD},
		{"three leaves", blocks("a", "b", "c"), "7075152d03a5cd92104887b476862778ec0c87be5c2fa1c0a90f87c49fad6eff"},
		// A single leaf is its own root.
		{"one leaf", blocks("a"), "ca978112ca1bbdcafac231b39a23dc4da786eff8147c4e72b9807785afee48bb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := merklebench.Build(tt.blocks, algo)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hex.EncodeToString(tree.Root()))
			assert.Equal(t, len(tt.blocks), tree.LeafCount())
		})
	}
}

func TestBuildManualFold(t *testing.T) {
	// root(a,b,c) = H(H(H(a)||H(b)) || H(c)) under promote-unpaired.
	ha := sha256.Sum256([]byte("a"))
	hb := sha256.Sum256([]byte("b"))
	hc := sha256.Sum256([]byte("c"))
	hab := sha256.Sum256(append(ha[:], hb[:]...))
	want := sha256.Sum256(append(hab[:], hc[:]...))

	tree, err := merklebench.Build(blocks("a", "b", "c"), mustAlgo(t, hasher.SHA256))
	require.NoError(t, err)
	assert.Equal(t, want[:], tree.Root())
}

func TestBuildDeterminism(t *testing.T) {
	data := blocks("alpha", "beta", "gamma", "delta", "epsilon")
	for _, name := range hasher.Names() {
		t.Run(name, func(t *testing.T) {
			algo := mustAlgo(t, name)
			first, err := merklebench.Build(data, algo)
			require.NoError(t, err)
			second, err := merklebench.Build(data, algo)
			require.NoError(t, err)
			assert.Equal(t, first.Root(), second.Root())
			assert.Len(t, first.Root(), algo.Size())
		})
	}
}

func TestBuildOddLeafCounts(t *testing.T) {
	for _, count := range []int{1, 2, 3, 5, 8} {
		data := make([][]byte, count)
		for i := range data {
			data[i] = []byte{byte(i), byte(i + 1), byte(i + 2)}
		}
		for _, name := range hasher.Names() {
			algo := mustAlgo(t, name)
			tree, err := merklebench.Build(data, algo)
			require.NoError(t, err, "algorithm %s, %d leaves", name, count)
			require.Len(t, tree.Root(), algo.Size(), "algorithm %s, %d leaves", name, count)
			require.Equal(t, count, tree.LeafCount())
		}
	}
}

func TestBuildSensitivity(t *testing.T) {
	algo := mustAlgo(t, hasher.SHA256)
	base := blocks("a", "b", "c", "d")
	tree, err := merklebench.Build(base, algo)
	require.NoError(t, err)

	// Changing a single byte in any one block changes the root.
	for i := range base {
		mutated := blocks("a", "b", "c", "d")
		mutated[i] = append([]byte(nil), mutated[i]...)
		mutated[i][0] ^= 0x01
		other, err := merklebench.Build(mutated, algo)
		require.NoError(t, err)
		assert.NotEqual(t, tree.Root(), other.Root(), "block %d", i)
	}
}

func TestBuildOrderSensitivity(t *testing.T) {
	algo := mustAlgo(t, hasher.SHA256)
	tree, err := merklebench.Build(blocks("a", "b", "c", "d"), algo)
	require.NoError(t, err)

	swaps := [][][]byte{
		blocks("b", "a", "c", "d"),
		blocks("a", "c", "b", "d"),
		blocks("d", "b", "c", "a"),
	}
	for i, swapped := range swaps {
		other, err := merklebench.Build(swapped, algo)
		require.NoError(t, err)
		assert.NotEqual(t, tree.Root(), other.Root(), "swap %d", i)
	}
}

func TestBatchedFoldMatchesScalar(t *testing.T) {
	scalar := mustAlgo(t, hasher.SHA256)
	batched := mustAlgo(t, hasher.SHA256Batch)
	simd := mustAlgo(t, hasher.SHA256SIMD)

	for _, count := range []int{1, 2, 3, 5, 8, 31, 64, 100} {
		data := make([][]byte, count)
		for i := range data {
			data[i] = []byte{byte(i), byte(i * 7), byte(i * 31)}
		}
		want, err := merklebench.Build(data, scalar)
		require.NoError(t, err)
		got, err := merklebench.Build(data, batched)
		require.NoError(t, err)
		require.Equal(t, want.Root(), got.Root(), "%d leaves", count)
		asm, err := merklebench.Build(data, simd)
		require.NoError(t, err)
		require.Equal(t, want.Root(), asm.Root(), "%d leaves", count)
	}
}

func TestLeafDigest(t *testing.T) {
	algo := mustAlgo(t, hasher.SHA256)
	tree, err := merklebench.Build(blocks("a", "b"), algo)
	require.NoError(t, err)

	want := sha256.Sum256([]byte("b"))
	got, err := tree.LeafDigest(1)
	require.NoError(t, err)
	assert.Equal(t, want[:], got)

	_, err = tree.LeafDigest(-1)
	assert.ErrorIs(t, err, merklebench.ErrIndexOutOfRange)
	_, err = tree.LeafDigest(2)
	assert.ErrorIs(t, err, merklebench.ErrIndexOutOfRange)
}

func TestHeight(t *testing.T) {
	algo := mustAlgo(t, hasher.SHA256)
	tests := []struct {
		leaves int
		height int
	}{
		{1, 1}, {2, 2}, {3, 3}, {4, 3}, {5, 4}, {8, 4}, {9, 5},
	}
	for _, tt := range tests {
		data := make([][]byte, tt.leaves)
		for i := range data {
			data[i] = []byte{byte(i)}
		}
		tree, err := merklebench.Build(data, algo)
		require.NoError(t, err)
		assert.Equal(t, tt.height, tree.Height(), "%d leaves", tt.leaves)
	}
}
