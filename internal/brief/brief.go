// Package brief runs the exploratory report pipeline against a single file.
package brief

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/databrief-cli/internal/analysis"
	"github.com/KaramelBytes/databrief-cli/internal/dataset"
	"github.com/KaramelBytes/databrief-cli/internal/heatmap"
	"github.com/google/uuid"
)

// SuccessMessage closes every completed report.
const SuccessMessage = "Report Generated Successfully!"

// Options configures one report run.
type Options struct {
	Load dataset.Options

	// Plot writes the heatmap image to HeatmapDir when true.
	Plot       bool
	HeatmapDir string
	// HeatmapPath overrides the generated image path.
	HeatmapPath string
	PlotSize    heatmap.PlotOptions
	// Show opens the saved image and waits for the viewer to close.
	Show   bool
	Viewer string

	Color             bool
	MaxCategoryValues int
	TopPairs          int

	Out    io.Writer
	Logger *slog.Logger
}

// Result reports what a run produced.
type Result struct {
	// HeatmapPath is empty when no image was written.
	HeatmapPath string
}

// Generate loads path and prints the overview, statistics, correlation and imbalance
// sections in that order. The first failure stops the run and is returned as is.
func Generate(ctx context.Context, path string, opt Options) (*Result, error) {
	out := opt.Out
	if out == nil {
		out = io.Discard
	}
	runID := uuid.NewString()
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log = log.With("run_id", runID, "path", path)

	log.Debug("loading dataset")
	tbl, err := dataset.Load(path, opt.Load)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded", "format", tbl.Format.String(), "rows", tbl.NumRows(), "cols", tbl.NumCols())
	res := &Result{}

	analysis.NewOverview(tbl).Render(out)
	log.Debug("overview done")

	st, err := analysis.Describe(tbl)
	if err != nil {
		return nil, err
	}
	st.Render(out)
	log.Debug("statistics done", "numeric_cols", len(st.Cols))

	if err := correlation(ctx, out, tbl, runID, opt, res, log); err != nil {
		return nil, err
	}

	analysis.RenderImbalance(out, analysis.Imbalance(tbl), opt.MaxCategoryValues)
	log.Debug("imbalance done")

	fmt.Fprintf(out, "\n%s\n", SuccessMessage)
	return res, nil
}

func correlation(ctx context.Context, out io.Writer, tbl *dataset.Table, runID string, opt Options, res *Result, log *slog.Logger) error {
	fmt.Fprintln(out)
	m := analysis.Correlate(tbl)
	if m == nil {
		fmt.Fprintln(out, analysis.NoNumericCorrMessage)
		log.Debug("correlation skipped")
		return nil
	}
	heatmap.RenderText(out, m, heatmap.TextOptions{Color: opt.Color})
	m.RenderPairs(out, opt.TopPairs)

	if !opt.Plot {
		log.Debug("correlation done", "image", false)
		return nil
	}
	imgPath := opt.HeatmapPath
	if imgPath == "" {
		imgPath = heatmapPath(opt.HeatmapDir, tbl.Name, runID)
	}
	if err := heatmap.SavePNG(imgPath, m, opt.PlotSize); err != nil {
		return err
	}
	res.HeatmapPath = imgPath
	fmt.Fprintf(out, "Heatmap saved to %s\n", imgPath)
	log.Debug("heatmap written", "image", imgPath)

	// Viewer failures are logged, not returned.
	if opt.Show {
		if err := heatmap.Show(ctx, opt.Viewer, imgPath); err != nil {
			log.Warn("heatmap viewer failed", "error", err)
		}
	}
	return nil
}

func heatmapPath(dir, name, runID string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(dir, fmt.Sprintf("%s-correlation-%s.png", base, runID[:8]))
}
