package arrange

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/photo-arrange/internal/constants"
	"github.com/kozaktomas/photo-arrange/internal/layout"
	"github.com/kozaktomas/photo-arrange/internal/render"
)

// Report contains metadata about a run for quality analysis.
type Report struct {
	Folder       string       `json:"folder" yaml:"folder"`
	OutputDir    string       `json:"output_dir" yaml:"output_dir"`
	Cell         ReportCell   `json:"cell" yaml:"cell"`
	Grid         ReportGrid   `json:"grid" yaml:"grid"`
	PageCount    int          `json:"page_count" yaml:"page_count"`
	PhotoCount   int          `json:"photo_count" yaml:"photo_count"`
	DrawnCount   int          `json:"drawn_count" yaml:"drawn_count"`
	SkippedCount int          `json:"skipped_count" yaml:"skipped_count"`
	Pages        []ReportPage `json:"pages" yaml:"pages"`
	Warnings     []string     `json:"warnings" yaml:"warnings"`
}

// ReportCell describes the cell size used for every photo.
type ReportCell struct {
	WidthCM  float64 `json:"width_cm" yaml:"width_cm"`
	HeightCM float64 `json:"height_cm" yaml:"height_cm"`
	Explicit bool    `json:"explicit" yaml:"explicit"`
}

// ReportGrid describes the page grid.
type ReportGrid struct {
	PerRow    int `json:"per_row" yaml:"per_row"`
	PerColumn int `json:"per_column" yaml:"per_column"`
	PerPage   int `json:"per_page" yaml:"per_page"`
}

// ReportPage describes a single emitted page.
type ReportPage struct {
	PageNumber int           `json:"page_number" yaml:"page_number"`
	Path       string        `json:"path" yaml:"path"`
	Saved      bool          `json:"saved" yaml:"saved"`
	Error      string        `json:"error,omitempty" yaml:"error,omitempty"`
	Photos     []ReportPhoto `json:"photos,omitempty" yaml:"photos,omitempty"`
}

// ReportPhoto describes a single photo placement.
type ReportPhoto struct {
	Path         string  `json:"path" yaml:"path"`
	Ordinal      int     `json:"ordinal" yaml:"ordinal"`
	Row          int     `json:"row" yaml:"row"`
	Col          int     `json:"col" yaml:"col"`
	WidthPt      float64 `json:"width_pt" yaml:"width_pt"`
	HeightPt     float64 `json:"height_pt" yaml:"height_pt"`
	EffectiveDPI float64 `json:"effective_dpi" yaml:"effective_dpi"`
	LowRes       bool    `json:"low_res" yaml:"low_res"`
	Skipped      bool    `json:"skipped" yaml:"skipped"`
	Error        string  `json:"error,omitempty" yaml:"error,omitempty"`
}

func newReport(folder, outputDir string, cell layout.CellSize, grid layout.GridLayout, photoCount int) *Report {
	return &Report{
		Folder:    folder,
		OutputDir: outputDir,
		Cell: ReportCell{
			WidthCM:  cell.Width / constants.PointsPerCM,
			HeightCM: cell.Height / constants.PointsPerCM,
			Explicit: cell.Explicit,
		},
		Grid: ReportGrid{
			PerRow:    grid.ItemsPerRow,
			PerColumn: grid.ItemsPerColumn,
			PerPage:   grid.ItemsPerPage,
		},
		PhotoCount: photoCount,
		Pages:      []ReportPage{},
		Warnings:   []string{},
	}
}

// addPage records an emitted page together with its placements.
func (r *Report) addPage(res render.PageResult, items []layout.Item, placements []layout.Placement) {
	rp := ReportPage{
		PageNumber: res.Page,
		Path:       res.Path,
		Saved:      res.Err == nil,
	}
	if res.Err != nil {
		rp.Error = res.Err.Error()
		r.Warnings = append(r.Warnings, fmt.Sprintf("Page %d: %v", res.Page, res.Err))
	} else {
		r.PageCount++
	}

	skipped := make(map[int]error, len(res.Skipped))
	for _, s := range res.Skipped {
		skipped[s.Ordinal] = s.Err
	}

	for _, p := range placements {
		item := items[p.Ordinal]
		photo := ReportPhoto{
			Path:     item.Path,
			Ordinal:  p.Ordinal,
			Row:      p.Row,
			Col:      p.Col,
			WidthPt:  p.Width,
			HeightPt: p.Height,
		}
		if err, ok := skipped[p.Ordinal]; ok {
			photo.Skipped = true
			photo.Error = err.Error()
			r.SkippedCount++
			r.Warnings = append(r.Warnings,
				fmt.Sprintf("Page %d, item %d (%s): skipped: %v", res.Page, p.Ordinal, filepath.Base(item.Path), err))
		} else {
			photo.EffectiveDPI = layout.PlacementDPI(item, p)
			photo.LowRes = photo.EffectiveDPI > 0 && photo.EffectiveDPI < constants.LowResDPIThreshold
			r.DrawnCount++
		}
		rp.Photos = append(rp.Photos, photo)
	}

	r.Pages = append(r.Pages, rp)
}

// addDPIWarnings scans report pages and adds warnings for low-res photos.
func (r *Report) addDPIWarnings() {
	for _, rp := range r.Pages {
		for _, photo := range rp.Photos {
			if photo.LowRes {
				r.Warnings = append(r.Warnings,
					fmt.Sprintf("Page %d, item %d (%s): effective DPI %.0f is below %d",
						rp.PageNumber, photo.Ordinal, filepath.Base(photo.Path), photo.EffectiveDPI, int(constants.LowResDPIThreshold)))
			}
		}
	}
}

// Marshal encodes the report as YAML for .yaml/.yml paths and as indented JSON otherwise.
func (r *Report) Marshal(path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("failed to encode report: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode report: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// WriteReport writes the report to path; the format follows the file extension.
func (r *Report) WriteReport(path string) error {
	data, err := r.Marshal(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
