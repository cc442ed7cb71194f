package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addStudyName string
	addDataDesc  string
)

var addCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Validate a data file and register it with a study",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if addStudyName == "" {
			return fmt.Errorf("--study is required")
		}
		s, err := loadStudyByName(addStudyName)
		if err != nil {
			return err
		}
		d, err := s.AddDataset(args[0], addDataDesc)
		if err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Dataset added: %s (%d patients × %d days) id=%s\n", d.Name, d.Patients, d.Days, d.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addStudyName, "study", "s", "", "study name")
	addCmd.Flags().StringVar(&addDataDesc, "desc", "", "dataset description")
}
