package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const appDirName = ".inflammation"

// Global configuration structure.
type Global struct {
	OutputFormat string  `mapstructure:"output_format" yaml:"output_format"`
	Precision    int     `mapstructure:"precision" yaml:"precision"`
	Threshold    float64 `mapstructure:"threshold" yaml:"threshold"`
	StudiesDir   string  `mapstructure:"studies_dir" yaml:"studies_dir"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.inflammation/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, appDirName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("INFLAMMATION")
	v.AutomaticEnv()

	v.SetDefault("output_format", "markdown")
	v.SetDefault("precision", 4)
	v.SetDefault("threshold", 0.0)
	v.SetDefault("studies_dir", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, appDirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case cfgFile != "" && errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Resolve studies_dir default: ~/.inflammation/studies
	if c.StudiesDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.StudiesDir = filepath.Join(home, appDirName, "studies")
	}
	return &c, nil
}
