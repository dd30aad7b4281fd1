// Package arrange runs a complete layout: it lists the images of a folder, plans
// the grid once, and emits one document per page.
package arrange

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/kozaktomas/photo-arrange/internal/constants"
	"github.com/kozaktomas/photo-arrange/internal/discovery"
	"github.com/kozaktomas/photo-arrange/internal/layout"
	"github.com/kozaktomas/photo-arrange/internal/photo"
	"github.com/kozaktomas/photo-arrange/internal/render"
)

// Options describes one run.
type Options struct {
	Folder    string
	OutputDir string   // defaults to Folder
	WidthCM   *float64 // explicit cell width, used only together with HeightCM
	HeightCM  *float64
	Debug     bool // outline grid cells
}

// Arranger holds the collaborators of a run.
type Arranger struct {
	Backend  render.Backend
	Geometry layout.PageGeometry
	Columns  int // default columns for the auto-sized cell
	Photo    photo.Options
	Prefix   string
	Logger   *log.Logger
	// OnPlan is called once the images are listed and the grid is computed.
	OnPlan func(count int, cell layout.CellSize, grid layout.GridLayout)
	// OnPage is called after every emitted page.
	OnPage func(res render.PageResult, total int)
}

// New returns an Arranger with the fixed A4 geometry and print defaults.
func New(backend render.Backend, logger *log.Logger) *Arranger {
	return &Arranger{
		Backend:  backend,
		Geometry: layout.DefaultPageGeometry(),
		Columns:  constants.DefaultColumns,
		Photo:    photo.DefaultOptions(),
		Prefix:   constants.OutputPrefix,
		Logger:   logger,
	}
}

// Run arranges all images of opts.Folder. Only folder problems are returned as
// errors (see discovery.ErrNotFound, ErrNotDirectory, ErrNoImages); failures of
// single images or pages are logged and recorded in the report.
func (a *Arranger) Run(ctx context.Context, opts Options) (*Report, error) {
	logger := a.logger()

	paths, err := discovery.ListImages(opts.Folder)
	if err != nil {
		return nil, err
	}
	logger.Debug("Found image files", "count", len(paths), "folder", opts.Folder)

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = opts.Folder
	}

	cell := layout.ComputeCellSize(a.Geometry, opts.WidthCM, opts.HeightCM, a.Columns)
	if cell.Explicit {
		logger.Debug("Using custom photo size", "width_cm", *opts.WidthCM, "height_cm", *opts.HeightCM)
	} else {
		logger.Debug("Using default photo size", "columns", a.Columns)
	}

	items, probeErrs := probeItems(paths, logger)
	grid := layout.ComputeGridLayout(a.Geometry, cell, len(items))
	logger.Debug("Grid computed", "per_row", grid.ItemsPerRow, "per_column", grid.ItemsPerColumn, "pages", grid.TotalPages)
	if a.OnPlan != nil {
		a.OnPlan(len(items), cell, grid)
	}

	emitter := &render.Emitter{
		Backend:   a.Backend,
		Geometry:  a.Geometry,
		Cell:      cell,
		Grid:      grid,
		OutputDir: outputDir,
		Prefix:    a.Prefix,
		Photo:     a.Photo,
		Debug:     opts.Debug,
		Logger:    logger,
	}

	report := newReport(opts.Folder, outputDir, cell, grid, len(items))

	pages := layout.Pages(items, grid, a.Geometry, cell)
	for i, placements := range pages {
		if err := ctx.Err(); err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("stopped before page %d: %v", i+1, err))
			break
		}

		for _, w := range layout.ValidatePlacements(placements, a.Geometry, cell) {
			logger.Warn("Layout issue", "page", w.PageNumber, "item", w.Ordinal, "msg", w.Message)
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("Layout: page %d item %d: %s", w.PageNumber, w.Ordinal, w.Message))
		}

		entries := make([]render.Entry, len(placements))
		for j, p := range placements {
			entries[j] = render.Entry{Item: items[p.Ordinal], Placement: p, ProbeErr: probeErrs[p.Ordinal]}
		}

		res := emitter.EmitPage(ctx, i, entries)
		report.addPage(res, items, placements)
		if res.Err == nil {
			logger.Debug("Created page", "page", res.Page, "total", grid.TotalPages, "path", res.Path)
		}
		if a.OnPage != nil {
			a.OnPage(res, grid.TotalPages)
		}
	}

	report.addDPIWarnings()
	return report, nil
}

// probeItems reads the natural size of every image. Items that cannot be read keep
// their slot with an unknown size; the error is returned at the same index.
func probeItems(paths []string, logger *log.Logger) ([]layout.Item, map[int]error) {
	items := make([]layout.Item, len(paths))
	errs := make(map[int]error)
	for i, p := range paths {
		items[i] = layout.Item{Path: p}
		size, err := photo.Probe(p)
		if err != nil {
			logger.Warn("Cannot read image size", "path", p, "err", err)
			errs[i] = fmt.Errorf("%s: %w", p, err)
			continue
		}
		items[i].Width = size.Width
		items[i].Height = size.Height
	}
	return items, errs
}

func (a *Arranger) logger() *log.Logger {
	if a.Logger == nil {
		return log.Default()
	}
	return a.Logger
}
