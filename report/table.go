package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/merklebench/merklebench/bench"
)

// RenderSummaries draws one table per operation, algorithms as rows
// and leaf counts left to right, so backends line up for comparison
// the way the harness groups them.
func RenderSummaries(w io.Writer, summaries []bench.Summary) error {
	for _, op := range []bench.Op{bench.OpBuild, bench.OpProve, bench.OpVerify} {
		rows := pterm.TableData{
			{"algorithm", "leaf count", "trials", "failures", "mean", "stddev", "min", "max"},
		}
		for _, s := range summaries {
			if s.Op != op {
				continue
			}
			rows = append(rows, []string{
				s.Algorithm,
				strconv.Itoa(s.LeafCount),
				strconv.Itoa(s.Trials),
				strconv.Itoa(s.Failures),
				s.Mean.String(),
				s.StdDev.String(),
				s.Min.String(),
				s.Max.String(),
			})
		}
		if len(rows) == 1 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n%s\n", op); err != nil {
			return err
		}
		err := pterm.DefaultTable.
			WithHasHeader().
			WithWriter(w).
			WithData(rows).
			Render()
		if err != nil {
			return err
		}
	}
	return nil
}

// RenderAlgorithms lists hash backends with their digest sizes.
func RenderAlgorithms(w io.Writer, names []string, sizes map[string]int) error {
	rows := pterm.TableData{{"name", "digest bytes"}}
	for _, name := range names {
		rows = append(rows, []string{name, strconv.Itoa(sizes[name])})
	}
	return pterm.DefaultTable.
		WithHasHeader().
		WithWriter(w).
		WithData(rows).
		Render()
}
