package cmd

import (
	"fmt"

	"github.com/KaramelBytes/inflammation-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	thStudy     string
	thPatient   int
	thThreshold float64
	thFormat    string
	thPrecision int
	thOutput    string
)

var thresholdCmd = &cobra.Command{
	Use:   "threshold <file|dataset>",
	Short: "Show the days on which one patient exceeded a threshold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("patient") {
			return fmt.Errorf("--patient is required")
		}
		threshold := thThreshold
		if !cmd.Flags().Changed("threshold") {
			threshold = effective().Threshold
		}
		opt, err := resolveOutput(cmd, thFormat, thPrecision, thOutput)
		if err != nil {
			return err
		}
		src, err := resolveSource(thStudy, args[0])
		if err != nil {
			return err
		}
		tbl, err := src.load(cmd)
		if err != nil {
			return err
		}
		rep := report.New(src.name, tbl)
		if err := rep.WithThreshold(tbl, thPatient, threshold); err != nil {
			return err
		}
		return emit(cmd, src, "threshold", rep, opt)
	},
}

func init() {
	rootCmd.AddCommand(thresholdCmd)
	thresholdCmd.Flags().StringVarP(&thStudy, "study", "s", "", "study whose dataset to check ('.' = enclosing study); attaches the report")
	thresholdCmd.Flags().IntVarP(&thPatient, "patient", "p", 0, "zero-based patient (row) index")
	thresholdCmd.Flags().Float64VarP(&thThreshold, "threshold", "t", 0, "strict upper bound (default from config)")
	thresholdCmd.Flags().StringVarP(&thFormat, "format", "f", "markdown", "output format: markdown|json|yaml")
	thresholdCmd.Flags().IntVar(&thPrecision, "precision", 4, "significant digits in markdown output")
	thresholdCmd.Flags().StringVarP(&thOutput, "output", "o", "", "optional path to write the report")
}
