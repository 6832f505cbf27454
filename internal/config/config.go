package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Loading
	Delimiter  string   `mapstructure:"delimiter" yaml:"delimiter"`
	Sheet      string   `mapstructure:"sheet" yaml:"sheet"`
	NAValues   []string `mapstructure:"na_values" yaml:"na_values"`
	ParseDates bool     `mapstructure:"parse_dates" yaml:"parse_dates"`

	// Heatmap
	ShowPlot        bool    `mapstructure:"show_plot" yaml:"show_plot"`
	Viewer          string  `mapstructure:"viewer" yaml:"viewer"`
	HeatmapDir      string  `mapstructure:"heatmap_dir" yaml:"heatmap_dir"`
	HeatmapWidthIn  float64 `mapstructure:"heatmap_width_in" yaml:"heatmap_width_in"`
	HeatmapHeightIn float64 `mapstructure:"heatmap_height_in" yaml:"heatmap_height_in"`

	// Terminal output
	Color             bool `mapstructure:"color" yaml:"color"`
	MaxCategoryValues int  `mapstructure:"max_category_values" yaml:"max_category_values"`
}

// Dir returns ~/.databrief.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".databrief"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.databrief/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
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
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DATABRIEF")
	v.AutomaticEnv()

	v.SetDefault("delimiter", ",")
	v.SetDefault("sheet", "")
	v.SetDefault("na_values", []string{})
	v.SetDefault("parse_dates", false)
	v.SetDefault("show_plot", true)
	v.SetDefault("viewer", "")
	v.SetDefault("heatmap_dir", "")
	v.SetDefault("heatmap_width_in", 10.0)
	v.SetDefault("heatmap_height_in", 8.0)
	v.SetDefault("color", true)
	v.SetDefault("max_category_values", 0)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			if _, statErr := os.Stat(cfgFile); statErr == nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.HeatmapDir == "" {
		c.HeatmapDir = os.TempDir()
	}
	return &c, nil
}
