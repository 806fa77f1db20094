package merklebench_test

import (
	"testing"

	fuzz "github.com/google/gofuzz"

	"github.com/merklebench/merklebench"
	"github.com/merklebench/merklebench/hasher"
)

func TestFuzzProveVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("TestFuzzProveVerify skipped in short mode.")
	}
	const rounds = 16

	f := fuzz.NewWithSeed(42).NilChance(0).NumElements(1, 128).Funcs(
		func(block *[]byte, c fuzz.Continue) {
			// non-empty blocks of up to 1 KiB
			n := c.Intn(1024) + 1
			*block = make([]byte, n)
			for i := range *block {
				(*block)[i] = byte(c.Intn(256))
			}
		})

	for _, name := range hasher.Names() {
		algo, err := hasher.Lookup(name)
		if err != nil {
			t.Fatalf("error on Lookup(%q): %v", name, err)
		}
		for round := 0; round < rounds; round++ {
			var data [][]byte
			f.Fuzz(&data)
			if len(data) == 0 {
				continue
			}

			tree, err := merklebench.Build(data, algo)
			if err != nil {
				t.Fatalf("error on Build() with %v blocks: %v", len(data), err)
			}
			rebuilt, err := merklebench.Build(data, algo)
			if err != nil {
				t.Fatalf("error on rebuild: %v", err)
			}
			if string(tree.Root()) != string(rebuilt.Root()) {
				t.Fatalf("non-deterministic root for %s with %v blocks", name, len(data))
			}

			for index := 0; index < tree.LeafCount(); index++ {
				proof, err := tree.Prove(index)
				if err != nil {
					t.Fatalf("error on Prove(%v): %v", index, err)
				}
				leaf, err := tree.LeafDigest(index)
				if err != nil {
					t.Fatalf("error on LeafDigest(%v): %v", index, err)
				}
				ok, err := proof.Verify(leaf, tree.Root(), algo)
				if err != nil {
					t.Fatalf("error on Verify() for index %v: %v", index, err)
				}
				if !ok {
					t.Fatalf("expected Verify() == true; algorithm %s, %v leaves, index %v", name, tree.LeafCount(), index)
				}
			}
		}
	}
}
