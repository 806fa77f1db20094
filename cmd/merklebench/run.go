package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/merklebench/merklebench/bench"
	"github.com/merklebench/merklebench/report"
)

func newRunCmd(verbose *bool) *cobra.Command {
	var (
		configPath string
		algorithms []string
		leafCounts []int
		trials     int
		blockSize  int
		workers    int
		seed       int64
		outPath    string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark sweep and report results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := newLogger(*verbose)

			cfg := bench.DefaultConfig()
			if configPath != "" {
				data, err := os.ReadFile(configPath)
				if err != nil {
					return err
				}
				cfg, err = bench.ParseConfig(data)
				if err != nil {
					return err
				}
			}
			// Explicit flags win over both defaults and the config file.
			flags := cmd.Flags()
			if flags.Changed("algorithms") {
				cfg.Algorithms = algorithms
			}
			if flags.Changed("leaf-counts") {
				cfg.LeafCounts = leafCounts
			}
			if flags.Changed("trials") {
				cfg.Trials = trials
			}
			if flags.Changed("block-size") {
				cfg.BlockSize = blockSize
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("seed") {
				cfg.Seed = seed
			}

			harness, err := bench.NewHarness(cfg, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := harness.Run(ctx)
			if err != nil {
				return err
			}
			if err := report.RenderSummaries(cmd.OutOrStdout(), result.Summaries); err != nil {
				return err
			}
			if outPath == "" {
				return nil
			}
			return writeResult(outPath, format, result)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "JSON config file")
	cmd.Flags().StringSliceVarP(&algorithms, "algorithms", "a", nil, "algorithms to benchmark")
	cmd.Flags().IntSliceVarP(&leafCounts, "leaf-counts", "n", nil, "leaf counts to sweep")
	cmd.Flags().IntVarP(&trials, "trials", "t", bench.DefaultTrials, "trials per group")
	cmd.Flags().IntVarP(&blockSize, "block-size", "b", bench.DefaultBlockSize, "generated block size in bytes")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent groups (0 = one per CPU)")
	cmd.Flags().Int64Var(&seed, "seed", bench.DefaultSeed, "dataset generation seed")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write results to file")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, csv or msgpack")
	return cmd
}

func writeResult(path, format string, result *bench.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		err = report.WriteJSON(f, result)
	case "csv":
		err = report.WriteCSV(f, result.Summaries)
	case "msgpack":
		err = report.WriteMsgpack(f, result)
	default:
		err = fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
