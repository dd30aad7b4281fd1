package cmd

import (
	"fmt"
	"io"
	"math"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-arrange/internal/arrange"
	"github.com/kozaktomas/photo-arrange/internal/config"
	"github.com/kozaktomas/photo-arrange/internal/constants"
	"github.com/kozaktomas/photo-arrange/internal/layout"
	"github.com/kozaktomas/photo-arrange/internal/photo"
	"github.com/kozaktomas/photo-arrange/internal/render"
)

func runArrange(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := config.Load()
	out := cmd.OutOrStdout()

	opts := arrange.Options{
		Folder:    args[0],
		OutputDir: mustGetString(cmd, "output"),
		Debug:     mustGetBool(cmd, "debug"),
	}
	if cmd.Flags().Changed("width") && cmd.Flags().Changed("height") {
		width := mustGetFloat64(cmd, "width")
		height := mustGetFloat64(cmd, "height")
		if !validSize(width) || !validSize(height) {
			return fmt.Errorf("--width and --height must be positive and finite, got %gx%g", width, height)
		}
		opts.WidthCM = &width
		opts.HeightCM = &height
	}

	engine := mustGetString(cmd, "engine")
	if engine == "" {
		engine = cfg.Render.Engine
	}
	backend, err := newBackend(strings.ToLower(engine), cfg)
	if err != nil {
		return err
	}

	verbose := logger.GetLevel() <= log.DebugLevel
	var bar *progressbar.ProgressBar

	a := arrange.New(backend, logger)
	a.Photo = photo.Options{DPI: cfg.Render.DPI, JPEGQuality: cfg.Render.JPEGQuality}
	a.Prefix = cfg.Output.Prefix
	a.OnPlan = func(count int, cell layout.CellSize, grid layout.GridLayout) {
		printPlan(out, count, cell, grid)
		if !verbose && grid.TotalPages > 1 {
			bar = newPageBar(cmd.ErrOrStderr(), grid.TotalPages)
		}
	}
	a.OnPage = func(res render.PageResult, total int) {
		if bar != nil {
			_ = bar.Clear()
		}
		if res.Err != nil {
			fmt.Fprintf(out, "Failed to save page %d/%d: %s\n", res.Page, total, res.Path)
		} else {
			fmt.Fprintf(out, "Created page %d/%d: %s\n", res.Page, total, res.Path)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	report, err := a.Run(ctx, opts)
	if err != nil {
		// Folder problems end the run without output; they are not usage errors.
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return nil
	}
	if bar != nil {
		_ = bar.Finish()
	}

	fmt.Fprintf(out, "\nDone: %d page(s), %d photo(s) placed, %d skipped\n",
		report.PageCount, report.DrawnCount, report.SkippedCount)
	if n := len(report.Warnings); n > 0 {
		fmt.Fprintf(out, "Warnings: %d\n", n)
		for _, w := range report.Warnings {
			logger.Debug(w)
		}
	}

	if path := mustGetString(cmd, "report"); path != "" {
		if err := report.WriteReport(path); err != nil {
			return err
		}
		fmt.Fprintf(out, "Report written to %s\n", path)
	}
	return nil
}

// validSize reports whether a cell dimension in cm is positive and finite.
func validSize(cm float64) bool {
	return cm > 0 && !math.IsInf(cm, 0)
}

func printPlan(w io.Writer, count int, cell layout.CellSize, grid layout.GridLayout) {
	kind := "default"
	if cell.Explicit {
		kind = "custom"
	}
	fmt.Fprintf(w, "Found %d image files\n", count)
	fmt.Fprintf(w, "Using %s photo size: %.1fx%.1f cm\n",
		kind, cell.Width/constants.PointsPerCM, cell.Height/constants.PointsPerCM)
	fmt.Fprintf(w, "Photos per row: %d, Photos per column: %d\n", grid.ItemsPerRow, grid.ItemsPerColumn)
}

func newPageBar(w io.Writer, pages int) *progressbar.ProgressBar {
	return progressbar.NewOptions(pages,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Creating pages"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("pages"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)
}

// newBackend returns the page renderer for the engine name.
func newBackend(engine string, cfg *config.Config) (render.Backend, error) {
	switch engine {
	case config.EnginePDF:
		return render.PDFBackend{Creator: "photo-arrange " + Version}, nil
	case config.EngineLaTeX:
		if _, err := exec.LookPath(cfg.LaTeX.Binary); err != nil {
			return nil, fmt.Errorf("latex engine needs %s: %w", cfg.LaTeX.Binary, err)
		}
		return render.LaTeXBackend{Binary: cfg.LaTeX.Binary}, nil
	default:
		return nil, fmt.Errorf("unknown engine %q (expected %s or %s)", engine, config.EnginePDF, config.EngineLaTeX)
	}
}
