// Package hasher defines the hash-algorithm capability Merkle trees are
// built on, together with a registry that resolves configured algorithm
// names to concrete backends at setup time. Tree construction and proof
// verification depend only on the Algorithm interface and never inspect
// which backend is active except by name.
package hasher

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnsupportedAlgorithm is returned when a configuration names an
// algorithm with no registered backend.
var ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

// Algorithm is the single capability the rest of the system depends on:
// turn a byte sequence into a fixed-length digest. Digest must be pure
// and deterministic for identical input. Name is stable and serves as
// the grouping key in benchmark results.
type Algorithm interface {
	// Name returns the registry name of this backend.
	Name() string
	// Size returns the digest length in bytes.
	Size() int
	// Digest hashes data and returns a Size()-byte digest.
	Digest(data []byte) []byte
}

// PairHasher is an optional capability: digest many concatenated
// sibling pairs in a single call. in holds consecutive 2*Size()-byte
// pairs, out receives Size() bytes per pair. The results must be
// byte-identical to calling Digest on each pair.
type PairHasher interface {
	DigestPairs(out, in []byte) error
}

// sumAlgorithm adapts a one-shot sum function to the Algorithm
// interface. All stock backends are registered through it.
type sumAlgorithm struct {
	name string
	size int
	sum  func([]byte) []byte
}

func (a *sumAlgorithm) Name() string { return a.name }

func (a *sumAlgorithm) Size() int { return a.size }

func (a *sumAlgorithm) Digest(data []byte) []byte { return a.sum(data) }

var (
	registryMu sync.RWMutex
	registry   = map[string]Algorithm{}
)

// Register makes an algorithm resolvable by name. Registering an
// already-known name replaces the previous backend, which lets callers
// swap in custom implementations under a stock name.
func Register(algo Algorithm) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[algo.Name()] = algo
}

// Lookup resolves a configured algorithm name to its backend.
func Lookup(name string) (Algorithm, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	algo, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
	return algo, nil
}

// Names returns the sorted names of all registered backends.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
