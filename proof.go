package merklebench

import (
	"bytes"
	"fmt"

	"github.com/merklebench/merklebench/hasher"
)

// ProofStep is one level of a sibling chain. Sibling is the digest
// combined with the running digest at this level; Left reports whether
// the sibling sits on the left side of the concatenation.
type ProofStep struct {
	Sibling []byte `json:"sibling" msgpack:"sibling"`
	Left    bool   `json:"left" msgpack:"left"`
}

// Proof is a single-leaf inclusion proof: the ordered sibling chain
// from the leaf up to the root, the leaf index it was generated for,
// and the root the prover claims. Applying the chain to the leaf's own
// digest reproduces the claimed root if and only if the leaf is part of
// the tree that produced it.
//
// Levels at which the promote-unpaired tie-break left the leaf's
// ancestor without a sibling contribute no step; verification applies
// the same rule implicitly by folding fewer steps.
type Proof struct {
	leafIndex int
	root      []byte
	steps     []ProofStep
}

// NewProof assembles a proof from its parts, mainly useful when
// reconstructing proofs received across a serialization boundary.
func NewProof(leafIndex int, root []byte, steps []ProofStep) Proof {
	return Proof{leafIndex: leafIndex, root: root, steps: steps}
}

// LeafIndex returns the index of the leaf this proof covers.
func (p Proof) LeafIndex() int { return p.leafIndex }

// Root returns the root digest claimed by the prover.
func (p Proof) Root() []byte { return p.root }

// Steps returns the sibling chain, leaf level first.
func (p Proof) Steps() []ProofStep { return p.steps }

// Prove constructs the inclusion proof for the leaf at index by walking
// the retained layers and copying out the sibling digest at each level.
func (t *Tree) Prove(index int) (Proof, error) {
	if index < 0 || index >= t.LeafCount() {
		return Proof{}, fmt.Errorf("%w: index %d, leaf count %d", ErrIndexOutOfRange, index, t.LeafCount())
	}

	steps := make([]ProofStep, 0, len(t.layers)-1)
	pos := index
	for _, layer := range t.layers[:len(t.layers)-1] {
		sibling := pos ^ 1
		if sibling < len(layer) {
			digest := make([]byte, len(layer[sibling]))
			copy(digest, layer[sibling])
			steps = append(steps, ProofStep{Sibling: digest, Left: sibling < pos})
		}
		// A promoted trailing digest has no sibling at this level and
		// keeps its pairwise position in the parent layer, so the index
		// arithmetic is the same either way.
		pos /= 2
	}

	root := make([]byte, len(t.Root()))
	copy(root, t.Root())
	return Proof{leafIndex: index, root: root, steps: steps}, nil
}

// Verify folds leafDigest up the recorded sibling chain, computing
// algo.Digest(left || right) at every step with the recorded side
// order, and compares the result to root for exact equality.
//
// The proof's structure is checked before the fold begins: wrong-length
// digests or a negative leaf index yield ErrMalformedProof. A
// well-formed proof that does not reproduce root returns (false, nil):
// that is the expected outcome of a failed integrity check, not an
// error. Verify never mutates its inputs.
func (p Proof) Verify(leafDigest, root []byte, algo hasher.Algorithm) (bool, error) {
	size := algo.Size()
	if p.leafIndex < 0 {
		return false, fmt.Errorf("%w: negative leaf index %d", ErrMalformedProof, p.leafIndex)
	}
	if len(leafDigest) != size {
		return false, fmt.Errorf("%w: leaf digest is %d bytes, %s produces %d", ErrMalformedProof, len(leafDigest), algo.Name(), size)
	}
	if len(root) != size {
		return false, fmt.Errorf("%w: claimed root is %d bytes, %s produces %d", ErrMalformedProof, len(root), algo.Name(), size)
	}
	for i, step := range p.steps {
		if len(step.Sibling) != size {
			return false, fmt.Errorf("%w: step %d sibling is %d bytes, want %d", ErrMalformedProof, i, len(step.Sibling), size)
		}
	}

	current := leafDigest
	buf := make([]byte, 0, 2*size)
	for _, step := range p.steps {
		if step.Left {
			buf = append(buf[:0], step.Sibling...)
			buf = append(buf, current...)
		} else {
			buf = append(buf[:0], current...)
			buf = append(buf, step.Sibling...)
		}
		current = algo.Digest(buf)
	}
	return bytes.Equal(current, root), nil
}
