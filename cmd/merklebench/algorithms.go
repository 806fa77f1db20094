package main

import (
	"github.com/spf13/cobra"

	"github.com/merklebench/merklebench/hasher"
	"github.com/merklebench/merklebench/report"
)

func newAlgorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List registered hash backends",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := hasher.Names()
			sizes := make(map[string]int, len(names))
			for _, name := range names {
				algo, err := hasher.Lookup(name)
				if err != nil {
					return err
				}
				sizes[name] = algo.Size()
			}
			return report.RenderAlgorithms(cmd.OutOrStdout(), names, sizes)
		},
	}
}
