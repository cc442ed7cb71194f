package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/inflammation-cli/internal/config"
	"github.com/KaramelBytes/inflammation-cli/internal/report"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "output_format: %s\n", cfg.OutputFormat)
		fmt.Fprintf(out, "precision: %d\n", cfg.Precision)
		fmt.Fprintf(out, "threshold: %g\n", cfg.Threshold)
		fmt.Fprintf(out, "studies_dir: %s\n", cfg.StudiesDir)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "output_format":
			f, err := report.ParseFormat(val)
			if err != nil {
				return err
			}
			cfg.OutputFormat = f
		case "precision":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for precision: %v", val)
			}
			cfg.Precision = i
		case "threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for threshold: %w", err)
			}
			cfg.Threshold = f
		case "studies_dir":
			cfg.StudiesDir = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
