// Package bench is the benchmark harness: it sweeps configured hash
// algorithms and input sizes through repeated build/prove/verify
// cycles on the Merkle core and collects per-operation timing records
// with aggregate statistics.
package bench

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/tidwall/gjson"

	"github.com/merklebench/merklebench/hasher"
)

// Sweep defaults, applied by DefaultConfig and by ParseConfig for
// absent fields.
const (
	DefaultTrials    = 5
	DefaultBlockSize = 256
	DefaultSeed      = 1
)

// DefaultLeafCounts is the default input-size sweep.
var DefaultLeafCounts = []int{16, 64, 256, 1024}

// Config enumerates one benchmark run: which algorithms to measure, at
// which leaf counts, how many trials per group, and how the data blocks
// are generated.
type Config struct {
	// Algorithms holds registry names; every name must resolve before a
	// run starts.
	Algorithms []string `json:"algorithms" msgpack:"algorithms"`
	// LeafCounts is the input-size sweep, in blocks per tree.
	LeafCounts []int `json:"leaf_counts" msgpack:"leaf_counts"`
	// Trials is the number of measured repetitions per (algorithm, leaf
	// count) group.
	Trials int `json:"trials" msgpack:"trials"`
	// BlockSize is the generated block size in bytes.
	BlockSize int `json:"block_size" msgpack:"block_size"`
	// Workers bounds concurrent groups; 0 means one per CPU.
	Workers int `json:"workers" msgpack:"workers"`
	// Seed makes dataset generation reproducible across runs.
	Seed int64 `json:"seed" msgpack:"seed"`
}

// DefaultConfig sweeps every registered algorithm across the default
// leaf counts.
func DefaultConfig() Config {
	return Config{
		Algorithms: hasher.Names(),
		LeafCounts: append([]int(nil), DefaultLeafCounts...),
		Trials:     DefaultTrials,
		BlockSize:  DefaultBlockSize,
		Workers:    runtime.NumCPU(),
		Seed:       DefaultSeed,
	}
}

// ParseConfig reads a JSON config document. Fields absent from the
// document keep their defaults; the result is validated before being
// returned.
func ParseConfig(data []byte) (Config, error) {
	if !gjson.ValidBytes(data) {
		return Config{}, errors.New("config is not valid JSON")
	}
	cfg := DefaultConfig()
	if v := gjson.GetBytes(data, "algorithms"); v.Exists() {
		cfg.Algorithms = nil
		for _, name := range v.Array() {
			cfg.Algorithms = append(cfg.Algorithms, name.String())
		}
	}
	if v := gjson.GetBytes(data, "leaf_counts"); v.Exists() {
		cfg.LeafCounts = nil
		for _, count := range v.Array() {
			cfg.LeafCounts = append(cfg.LeafCounts, int(count.Int()))
		}
	}
	if v := gjson.GetBytes(data, "trials"); v.Exists() {
		cfg.Trials = int(v.Int())
	}
	if v := gjson.GetBytes(data, "block_size"); v.Exists() {
		cfg.BlockSize = int(v.Int())
	}
	if v := gjson.GetBytes(data, "workers"); v.Exists() {
		cfg.Workers = int(v.Int())
	}
	if v := gjson.GetBytes(data, "seed"); v.Exists() {
		cfg.Seed = v.Int()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects a config before any trial runs: every algorithm name
// must resolve against the registry and all sweep parameters must be
// positive. A name that fails here never aborts a sweep midway.
func (c Config) Validate() error {
	if len(c.Algorithms) == 0 {
		return errors.New("config: no algorithms configured")
	}
	for _, name := range c.Algorithms {
		if _, err := hasher.Lookup(name); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if len(c.LeafCounts) == 0 {
		return errors.New("config: no leaf counts configured")
	}
	for _, count := range c.LeafCounts {
		if count <= 0 {
			return fmt.Errorf("config: leaf count must be positive, got %d", count)
		}
	}
	if c.Trials <= 0 {
		return fmt.Errorf("config: trials must be positive, got %d", c.Trials)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("config: block size must be positive, got %d", c.BlockSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	return nil
}
