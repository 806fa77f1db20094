package report

import (
	"errors"
	"time"

	"github.com/tidwall/gjson"

	"github.com/merklebench/merklebench/bench"
)

// ReadJSON loads a run previously written by WriteJSON, so saved
// results can be re-rendered without re-running the sweep. Unknown
// fields are ignored, which keeps older result files readable.
func ReadJSON(data []byte) (*bench.Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("result file is not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.Get("records").Exists() && !doc.Get("summaries").Exists() {
		return nil, errors.New("result file has neither records nor summaries")
	}

	result := &bench.Result{
		Elapsed: time.Duration(doc.Get("elapsed_ns").Int()),
	}
	if v := doc.Get("started_at"); v.Exists() {
		if t, err := time.Parse(time.RFC3339Nano, v.String()); err == nil {
			result.StartedAt = t
		}
	}
	result.Config = readConfig(doc.Get("config"))

	doc.Get("records").ForEach(func(_, r gjson.Result) bool {
		result.Records = append(result.Records, bench.Record{
			Algorithm: r.Get("algorithm").String(),
			Op:        bench.Op(r.Get("op").String()),
			LeafCount: int(r.Get("leaf_count").Int()),
			Trial:     int(r.Get("trial").Int()),
			Elapsed:   time.Duration(r.Get("elapsed_ns").Int()),
			Err:       r.Get("error").String(),
		})
		return true
	})
	doc.Get("summaries").ForEach(func(_, s gjson.Result) bool {
		result.Summaries = append(result.Summaries, bench.Summary{
			Algorithm: s.Get("algorithm").String(),
			Op:        bench.Op(s.Get("op").String()),
			LeafCount: int(s.Get("leaf_count").Int()),
			Trials:    int(s.Get("trials").Int()),
			Failures:  int(s.Get("failures").Int()),
			Mean:      time.Duration(s.Get("mean_ns").Int()),
			StdDev:    time.Duration(s.Get("stddev_ns").Int()),
			Min:       time.Duration(s.Get("min_ns").Int()),
			Max:       time.Duration(s.Get("max_ns").Int()),
		})
		return true
	})

	// A file with raw records but no summaries can still be rendered.
	if len(result.Summaries) == 0 && len(result.Records) > 0 {
		result.Summaries = bench.Summarize(result.Records)
	}
	return result, nil
}

func readConfig(v gjson.Result) bench.Config {
	var cfg bench.Config
	v.Get("algorithms").ForEach(func(_, a gjson.Result) bool {
		cfg.Algorithms = append(cfg.Algorithms, a.String())
		return true
	})
	v.Get("leaf_counts").ForEach(func(_, c gjson.Result) bool {
		cfg.LeafCounts = append(cfg.LeafCounts, int(c.Int()))
		return true
	})
	cfg.Trials = int(v.Get("trials").Int())
	cfg.BlockSize = int(v.Get("block_size").Int())
	cfg.Workers = int(v.Get("workers").Int())
	cfg.Seed = v.Get("seed").Int()
	return cfg
}
