// Package report is the result boundary of the benchmark: it persists
// run results as CSV, JSON, or msgpack, loads previously saved JSON
// runs back, and renders summary tables for the terminal.
package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/merklebench/merklebench/bench"
)

var csvHeader = []string{
	"algorithm", "op", "leaf_count", "trials", "failures",
	"mean_ns", "stddev_ns", "min_ns", "max_ns",
}

// WriteCSV writes one row per summary, mirroring the columns the
// terminal table shows.
func WriteCSV(w io.Writer, summaries []bench.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range summaries {
		row := []string{
			s.Algorithm,
			string(s.Op),
			strconv.Itoa(s.LeafCount),
			strconv.Itoa(s.Trials),
			strconv.Itoa(s.Failures),
			strconv.FormatInt(int64(s.Mean), 10),
			strconv.FormatInt(int64(s.StdDev), 10),
			strconv.FormatInt(int64(s.Min), 10),
			strconv.FormatInt(int64(s.Max), 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the whole run, records included, as indented JSON.
func WriteJSON(w io.Writer, result *bench.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// WriteMsgpack writes the whole run as a compact msgpack archive.
func WriteMsgpack(w io.Writer, result *bench.Result) error {
	return msgpack.NewEncoder(w).Encode(result)
}

// ReadMsgpack loads an archive written by WriteMsgpack.
func ReadMsgpack(r io.Reader) (*bench.Result, error) {
	var result bench.Result
	if err := msgpack.NewDecoder(r).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
