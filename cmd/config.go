package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/databrief-cli/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set DataBrief configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
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
		if err := setKey(cfg, key, val); err != nil {
			return err
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

func setKey(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "delimiter":
		if _, err := parseDelimiter(val); err != nil {
			return err
		}
		c.Delimiter = val
	case "sheet":
		c.Sheet = val
	case "na_values":
		var tokens []string
		for _, s := range strings.Split(val, ",") {
			if s = strings.TrimSpace(s); s != "" {
				tokens = append(tokens, s)
			}
		}
		c.NAValues = tokens
	case "parse_dates", "show_plot", "color":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for %s: %v", key, val)
		}
		switch key {
		case "parse_dates":
			c.ParseDates = b
		case "show_plot":
			c.ShowPlot = b
		default:
			c.Color = b
		}
	case "viewer":
		c.Viewer = val
	case "heatmap_dir":
		c.HeatmapDir = val
	case "heatmap_width_in", "heatmap_height_in":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid float for %s: %v", key, val)
		}
		if key == "heatmap_width_in" {
			c.HeatmapWidthIn = f
		} else {
			c.HeatmapHeightIn = f
		}
	case "max_category_values":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for max_category_values: %v", val)
		}
		c.MaxCategoryValues = i
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}
