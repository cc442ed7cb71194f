package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/inflammation-cli/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:           "inflam",
	Short:         "Per-day statistics over patient inflammation data",
	Long:          `inflam loads a comma-separated table of inflammation readings (one row per patient, one column per day) and reports per-day mean, maximum, minimum and standard deviation, or which days a patient exceeded a threshold.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(setupLogging, loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.inflammation/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
}

func setupLogging() {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
	slog.Debug("config loaded", "path", cfgFile, "studies_dir", cfg.StudiesDir, "format", cfg.OutputFormat)
}

// effective returns the loaded config or built-in defaults.
func effective() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return &cfgpkg.Global{OutputFormat: "markdown", Precision: 4}
}
