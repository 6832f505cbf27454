package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/KaramelBytes/databrief-cli/internal/brief"
	cfgpkg "github.com/KaramelBytes/databrief-cli/internal/config"
	"github.com/KaramelBytes/databrief-cli/internal/dataset"
	"github.com/KaramelBytes/databrief-cli/internal/heatmap"
	"github.com/KaramelBytes/databrief-cli/internal/prompt"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

// defaultTopPairs caps the "Strongest correlations" list.
const defaultTopPairs = 5

var (
	// Global flags
	cfgFile string
	debug   bool

	// Report flags (override config if set)
	flagDelimiter   string
	flagSheet       string
	flagParseDates  bool
	flagNoPlot      bool
	flagHeatmapOut  string
	flagMaxCategory int
	flagNoColor     bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "databrief [file]",
	Short: "DataBrief: a quick exploratory report for CSV, Excel, and JSON files",
	Long: `DataBrief loads a CSV, Excel, or JSON file and prints an overview of its shape,
data types and missing values, summary statistics for numeric columns, a correlation
heatmap, and the value distribution of every categorical column.

When no file is given, the path is read from standard input.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReport,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.databrief/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	f := rootCmd.Flags()
	f.StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',', ';', '|' or 'tab' (overrides config)")
	f.StringVar(&flagSheet, "sheet", "", "Excel sheet name (default: first sheet)")
	f.BoolVar(&flagParseDates, "parse-dates", false, "detect date columns in text input")
	f.BoolVar(&flagNoPlot, "no-plot", false, "skip writing and opening the heatmap image")
	f.StringVar(&flagHeatmapOut, "heatmap-out", "", "write the heatmap PNG to this path")
	f.IntVar(&flagMaxCategory, "max-category-values", 0, "max values listed per categorical column (0 = all)")
	f.BoolVar(&flagNoColor, "no-color", false, "disable colors in the terminal heatmap")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// effectiveConfig returns the loaded config, or defaults when loading failed.
func effectiveConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return &cfgpkg.Global{
		Delimiter:       ",",
		ShowPlot:        true,
		Color:           true,
		HeatmapDir:      os.TempDir(),
		HeatmapWidthIn:  10,
		HeatmapHeightIn: 8,
	}
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runReport(cmd *cobra.Command, args []string) error {
	opt, err := reportOptions(cmd, effectiveConfig())
	if err != nil {
		return err
	}
	opt.Out = cmd.OutOrStdout()
	opt.Logger = newLogger(cmd.ErrOrStderr())

	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		path, err = prompt.Path(cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}
	_, err = brief.Generate(cmd.Context(), path, opt)
	return err
}

// reportOptions merges config values with flags that were explicitly set.
func reportOptions(cmd *cobra.Command, c *cfgpkg.Global) (brief.Options, error) {
	f := cmd.Flags()

	delim := c.Delimiter
	if f.Changed("delimiter") {
		delim = flagDelimiter
	}
	r, err := parseDelimiter(delim)
	if err != nil {
		return brief.Options{}, err
	}

	load := dataset.Options{Delimiter: r, Sheet: c.Sheet, ParseDates: c.ParseDates}
	if len(c.NAValues) > 0 {
		load.NAValues = c.NAValues
	}
	if f.Changed("sheet") {
		load.Sheet = flagSheet
	}
	if f.Changed("parse-dates") {
		load.ParseDates = flagParseDates
	}

	opt := brief.Options{
		Load:       load,
		Plot:       c.ShowPlot,
		Show:       c.ShowPlot,
		Viewer:     c.Viewer,
		HeatmapDir: c.HeatmapDir,
		PlotSize: heatmap.PlotOptions{
			Width:  vg.Length(c.HeatmapWidthIn) * vg.Inch,
			Height: vg.Length(c.HeatmapHeightIn) * vg.Inch,
		},
		Color:             c.Color,
		MaxCategoryValues: c.MaxCategoryValues,
		TopPairs:          defaultTopPairs,
	}
	if f.Changed("no-plot") && flagNoPlot {
		opt.Plot, opt.Show = false, false
	}
	if f.Changed("heatmap-out") {
		opt.HeatmapPath = flagHeatmapOut
		// An explicit path is always written.
		opt.Plot = true
	}
	if f.Changed("max-category-values") {
		if flagMaxCategory < 0 {
			return brief.Options{}, fmt.Errorf("invalid --max-category-values: %d", flagMaxCategory)
		}
		opt.MaxCategoryValues = flagMaxCategory
	}
	if f.Changed("no-color") && flagNoColor {
		opt.Color = false
	}
	return opt, nil
}

func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "", ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use ',', ';', '|' or 'tab')", s)
	}
}
