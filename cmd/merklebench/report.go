package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/merklebench/merklebench/report"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <results-file>",
		Short: "Re-render tables from a saved results file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if strings.HasSuffix(path, ".msgpack") {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				result, err := report.ReadMsgpack(f)
				if err != nil {
					return err
				}
				return report.RenderSummaries(cmd.OutOrStdout(), result.Summaries)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			result, err := report.ReadJSON(data)
			if err != nil {
				return err
			}
			return report.RenderSummaries(cmd.OutOrStdout(), result.Summaries)
		},
	}
}
