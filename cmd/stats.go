package cmd

import (
	"github.com/KaramelBytes/inflammation-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	stStudy     string
	stFormat    string
	stPrecision int
	stOutput    string
)

var statsCmd = &cobra.Command{
	Use:   "stats <file|dataset>",
	Short: "Report per-day mean, max, min and standard deviation across patients",
	Long: `Report per-day mean, max, min and population standard deviation across all patients.

Without --study the argument is a data file path. With --study it names a
dataset of that study (by id or file name) and the report is attached to the study.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := resolveOutput(cmd, stFormat, stPrecision, stOutput)
		if err != nil {
			return err
		}
		src, err := resolveSource(stStudy, args[0])
		if err != nil {
			return err
		}
		tbl, err := src.load(cmd)
		if err != nil {
			return err
		}
		rep, err := report.Build(src.name, tbl)
		if err != nil {
			return err
		}
		return emit(cmd, src, "stats", rep, opt)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVarP(&stStudy, "study", "s", "", "study whose dataset to analyze ('.' = enclosing study); attaches the report")
	statsCmd.Flags().StringVarP(&stFormat, "format", "f", "markdown", "output format: markdown|json|yaml")
	statsCmd.Flags().IntVar(&stPrecision, "precision", 4, "significant digits in markdown output")
	statsCmd.Flags().StringVarP(&stOutput, "output", "o", "", "optional path to write the report")
}
