package bench

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/merklebench/merklebench"
	"github.com/merklebench/merklebench/hasher"
)

// Harness sweeps every configured (algorithm, leaf count) group through
// repeated build/prove/verify trials. One harness owns one run's record
// collection; nothing lives in package state, which keeps parallel
// group execution safe without hidden coupling.
type Harness struct {
	cfg   Config
	algos []hasher.Algorithm
	log   zerolog.Logger

	mu      sync.Mutex
	records []Record
}

// Result is what one run hands across the result boundary: the config
// it ran under, every raw record, and the per-group summaries.
type Result struct {
	Config    Config        `json:"config" msgpack:"config"`
	StartedAt time.Time     `json:"started_at" msgpack:"started_at"`
	Elapsed   time.Duration `json:"elapsed_ns" msgpack:"elapsed_ns"`
	Records   []Record      `json:"records" msgpack:"records"`
	Summaries []Summary     `json:"summaries" msgpack:"summaries"`
}

// NewHarness validates cfg and resolves every algorithm name up front,
// so an unsupported name fails here rather than mid-sweep.
func NewHarness(cfg Config, log zerolog.Logger) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	algos := make([]hasher.Algorithm, len(cfg.Algorithms))
	for i, name := range cfg.Algorithms {
		algo, err := hasher.Lookup(name)
		if err != nil {
			return nil, err
		}
		algos[i] = algo
	}
	return &Harness{cfg: cfg, algos: algos, log: log}, nil
}

// Run executes the full sweep. Independent (algorithm, leaf count)
// groups fan out over a bounded worker pool; each trial times exactly
// one CPU-bound call, so scheduling latency never lands inside a
// measurement. A failed trial is recorded against its group and the
// sweep continues with the next one.
func (h *Harness) Run(ctx context.Context) (*Result, error) {
	started := time.Now()

	// One dataset per leaf count, replayed for every algorithm.
	datasets := make(map[int]*Dataset, len(h.cfg.LeafCounts))
	for _, count := range h.cfg.LeafCounts {
		datasets[count] = GenerateDataset(count, h.cfg.BlockSize, h.cfg.Seed+int64(count))
	}

	type group struct {
		algo hasher.Algorithm
		data *Dataset
	}
	total := len(h.algos) * len(h.cfg.LeafCounts)
	workers := h.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > total {
		workers = total
	}

	jobs := make(chan group)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for g := range jobs {
				h.runGroup(g.algo, g.data)
			}
		}()
	}

dispatch:
	for _, algo := range h.algos {
		for _, count := range h.cfg.LeafCounts {
			select {
			case <-ctx.Done():
				break dispatch
			case jobs <- group{algo: algo, data: datasets[count]}:
			}
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := h.snapshot()
	result := &Result{
		Config:    h.cfg,
		StartedAt: started,
		Elapsed:   time.Since(started),
		Records:   records,
		Summaries: Summarize(records),
	}
	h.log.Info().
		Int("records", len(result.Records)).
		Dur("elapsed", result.Elapsed).
		Msg("benchmark sweep complete")
	return result, nil
}

// runGroup runs all trials of one (algorithm, leaf count) group.
func (h *Harness) runGroup(algo hasher.Algorithm, data *Dataset) {
	log := h.log.With().
		Str("algorithm", algo.Name()).
		Int("leaf_count", len(data.Blocks)).
		Logger()
	for trial := 0; trial < h.cfg.Trials; trial++ {
		if err := h.runTrial(algo, data, trial); err != nil {
			log.Warn().Err(err).Int("trial", trial).Msg("trial failed")
		}
	}
	log.Debug().Msg("group complete")
}

// runTrial measures one build/prove/verify cycle. Each phase appends
// its own record; the first failing phase appends a failure record and
// aborts the trial.
func (h *Harness) runTrial(algo hasher.Algorithm, data *Dataset, trial int) error {
	leafCount := len(data.Blocks)

	start := time.Now()
	tree, err := merklebench.Build(data.Blocks, algo)
	elapsed := time.Since(start)
	if err != nil {
		h.append(failed(algo, OpBuild, leafCount, trial, err))
		return err
	}
	h.append(Record{Algorithm: algo.Name(), Op: OpBuild, LeafCount: leafCount, Trial: trial, Elapsed: elapsed})

	// Rotate the proven leaf so trials touch different tree paths while
	// staying deterministic.
	index := trial % leafCount

	start = time.Now()
	proof, err := tree.Prove(index)
	elapsed = time.Since(start)
	if err != nil {
		h.append(failed(algo, OpProve, leafCount, trial, err))
		return err
	}
	h.append(Record{Algorithm: algo.Name(), Op: OpProve, LeafCount: leafCount, Trial: trial, Elapsed: elapsed})

	leafDigest, err := tree.LeafDigest(index)
	if err != nil {
		h.append(failed(algo, OpVerify, leafCount, trial, err))
		return err
	}
	root := tree.Root()
	start = time.Now()
	ok, err := proof.Verify(leafDigest, root, algo)
	elapsed = time.Since(start)
	if err != nil {
		h.append(failed(algo, OpVerify, leafCount, trial, err))
		return err
	}
	if !ok {
		err := errors.New("inclusion proof did not verify against its own root")
		h.append(failed(algo, OpVerify, leafCount, trial, err))
		return err
	}
	h.append(Record{Algorithm: algo.Name(), Op: OpVerify, LeafCount: leafCount, Trial: trial, Elapsed: elapsed})
	return nil
}

func failed(algo hasher.Algorithm, op Op, leafCount, trial int, err error) Record {
	return Record{
		Algorithm: algo.Name(),
		Op:        op,
		LeafCount: leafCount,
		Trial:     trial,
		Err:       fmt.Sprintf("%v", err),
	}
}

// append is the only writer of the record collection; concurrent group
// workers serialize here.
func (h *Harness) append(r Record) {
	h.mu.Lock()
	h.records = append(h.records, r)
	h.mu.Unlock()
}

// snapshot copies the collected records in a stable order.
func (h *Harness) snapshot() []Record {
	h.mu.Lock()
	records := make([]Record, len(h.records))
	copy(records, h.records)
	h.mu.Unlock()

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Algorithm != b.Algorithm {
			return a.Algorithm < b.Algorithm
		}
		if a.LeafCount != b.LeafCount {
			return a.LeafCount < b.LeafCount
		}
		if a.Trial != b.Trial {
			return a.Trial < b.Trial
		}
		return opOrder(a.Op) < opOrder(b.Op)
	})
	return records
}

func opOrder(op Op) int {
	switch op {
	case OpBuild:
		return 0
	case OpProve:
		return 1
	case OpVerify:
		return 2
	default:
		return 3
	}
}
