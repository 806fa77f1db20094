package merklebench

import (
	"fmt"

	"github.com/merklebench/merklebench/hasher"
)

// foldLayerBatched folds all full sibling pairs of a layer through a
// single DigestPairs call and promotes an odd trailing digest like the
// scalar path. The output is byte-identical to pairwise folding with
// the same algorithm.
func foldLayerBatched(current [][]byte, size int, ph hasher.PairHasher) ([][]byte, error) {
	pairs := len(current) / 2

	in := make([]byte, 0, pairs*2*size)
	for i := 0; i < pairs*2; i++ {
		if len(current[i]) != size {
			return nil, fmt.Errorf("digest %d is %d bytes, want %d", i, len(current[i]), size)
		}
		in = append(in, current[i]...)
	}
	out := make([]byte, pairs*size)
	if err := ph.DigestPairs(out, in); err != nil {
		return nil, err
	}

	next := make([][]byte, 0, pairs+1)
	for i := 0; i < pairs; i++ {
		next = append(next, out[i*size:(i+1)*size:(i+1)*size])
	}
	if len(current)%2 == 1 {
		next = append(next, current[len(current)-1])
	}
	return next, nil
}
