// Package merklebench implements the Merkle tree core of the
// benchmark: deterministic tree construction over an ordered block
// sequence, single-leaf inclusion proofs, and proof verification, all
// parameterized by a hasher.Algorithm.
package merklebench

import (
	"errors"
	"fmt"

	"github.com/merklebench/merklebench/hasher"
)

var (
	// ErrEmptyInput is returned by Build when no blocks are given.
	ErrEmptyInput = errors.New("cannot build a merkle tree from zero blocks")
	// ErrIndexOutOfRange is returned by Prove and LeafDigest for a
	// nonexistent leaf index.
	ErrIndexOutOfRange = errors.New("leaf index out of range")
	// ErrMalformedProof is returned by Verify when a proof is
	// structurally invalid, as opposed to a well-formed proof that
	// simply does not match the claimed root.
	ErrMalformedProof = errors.New("malformed inclusion proof")
)

// Tree is an array-backed Merkle tree. layers[0] holds the leaf digests
// in block order, every following layer the pairwise parents, and the
// final layer the root alone. Nodes are digests at (layer, index)
// positions rather than linked structs, which keeps construction
// allocation-light and makes sibling extraction a matter of index
// arithmetic.
//
// The trailing digest of an odd-length layer is promoted to the next
// layer unchanged. This is the single tie-break policy for every
// algorithm, so tree shape stays structurally identical across backends
// and timing comparisons are fair. Roots are therefore a pure function
// of (ordered blocks, algorithm): rebuilding from the same inputs
// always yields the same root.
type Tree struct {
	algo   hasher.Algorithm
	layers [][][]byte
}

// Build hashes every block independently with algo to form the leaf
// layer and folds adjacent digest pairs, left before right, up to the
// root. Block order is significant and preserved.
func Build(blocks [][]byte, algo hasher.Algorithm) (*Tree, error) {
	if len(blocks) == 0 {
		return nil, ErrEmptyInput
	}
	leaves := make([][]byte, len(blocks))
	for i, block := range blocks {
		leaves[i] = algo.Digest(block)
	}

	layers := make([][][]byte, 0, treeHeight(len(leaves)))
	layers = append(layers, leaves)
	for current := leaves; len(current) > 1; {
		next, err := foldLayer(current, algo)
		if err != nil {
			return nil, fmt.Errorf("folding layer of %d digests: %w", len(current), err)
		}
		layers = append(layers, next)
		current = next
	}
	return &Tree{algo: algo, layers: layers}, nil
}

// foldLayer computes the parent layer of current. Algorithms that can
// batch sibling pairs fold through a single vectorized call; everything
// else combines pair by pair via algo.Digest(left || right).
func foldLayer(current [][]byte, algo hasher.Algorithm) ([][]byte, error) {
	if ph, ok := algo.(hasher.PairHasher); ok {
		return foldLayerBatched(current, algo.Size(), ph)
	}

	next := make([][]byte, 0, (len(current)+1)/2)
	buf := make([]byte, 0, 2*algo.Size())
	i := 0
	for ; i+1 < len(current); i += 2 {
		buf = append(buf[:0], current[i]...)
		buf = append(buf, current[i+1]...)
		next = append(next, algo.Digest(buf))
	}
	if i < len(current) {
		// odd layer: promote the unpaired digest
		next = append(next, current[i])
	}
	return next, nil
}

// Root returns the tree's root digest. The returned slice is owned by
// the tree and must not be modified.
func (t *Tree) Root() []byte {
	top := t.layers[len(t.layers)-1]
	return top[0]
}

// LeafCount returns the number of blocks the tree was built from.
func (t *Tree) LeafCount() int {
	return len(t.layers[0])
}

// Algorithm returns the hash backend the tree was built with.
func (t *Tree) Algorithm() hasher.Algorithm {
	return t.algo
}

// LeafDigest returns the digest of the block at the given index.
func (t *Tree) LeafDigest(index int) ([]byte, error) {
	if index < 0 || index >= t.LeafCount() {
		return nil, fmt.Errorf("%w: index %d, leaf count %d", ErrIndexOutOfRange, index, t.LeafCount())
	}
	return t.layers[0][index], nil
}

// Height returns the number of layers, leaves included.
func (t *Tree) Height() int {
	return len(t.layers)
}

// treeHeight returns the layer count of a tree with n leaves under the
// promote-unpaired policy: ceil(log2(n)) + 1.
func treeHeight(n int) int {
	height := 1
	for n > 1 {
		n = (n + 1) / 2
		height++
	}
	return height
}
