package layout

import (
	"math"
	"testing"
)

const eps = 0.01

func floatPtr(v float64) *float64 { return &v }

func TestDefaultPageGeometry(t *testing.T) {
	g := DefaultPageGeometry()
	if math.Abs(g.Width-595.28) > eps || math.Abs(g.Height-841.89) > eps {
		t.Errorf("expected A4 595.28x841.89, got %.2fx%.2f", g.Width, g.Height)
	}
	// 1cm = 28.35pt
	if math.Abs(g.Margin-28.35) > eps {
		t.Errorf("expected margin 28.35, got %.2f", g.Margin)
	}
	if math.Abs(g.Spacing-14.17) > eps {
		t.Errorf("expected spacing 14.17, got %.2f", g.Spacing)
	}
}

func TestAvailableSpace(t *testing.T) {
	g := DefaultPageGeometry()
	// 595.28 - 2*28.35 = 538.58
	if math.Abs(g.AvailableWidth()-538.58) > eps {
		t.Errorf("AvailableWidth: expected 538.58, got %.2f", g.AvailableWidth())
	}
	// 841.89 - 2*28.35 = 785.20
	if math.Abs(g.AvailableHeight()-785.20) > eps {
		t.Errorf("AvailableHeight: expected 785.20, got %.2f", g.AvailableHeight())
	}
}

func TestComputeCellSize(t *testing.T) {
	g := DefaultPageGeometry()

	t.Run("default square", func(t *testing.T) {
		c := ComputeCellSize(g, nil, nil, 4)
		// (538.58 - 3*14.17) / 4 = 124.02
		if math.Abs(c.Width-124.02) > eps || c.Width != c.Height {
			t.Errorf("expected square 124.02 cell, got %.2fx%.2f", c.Width, c.Height)
		}
		if c.Explicit || !c.PreserveAspect() {
			t.Error("default cell should preserve aspect")
		}
	})

	t.Run("explicit cm", func(t *testing.T) {
		c := ComputeCellSize(g, floatPtr(4), floatPtr(5), 4)
		// 4cm = 113.39pt, 5cm = 141.73pt
		if math.Abs(c.Width-113.39) > eps || math.Abs(c.Height-141.73) > eps {
			t.Errorf("expected 113.39x141.73, got %.2fx%.2f", c.Width, c.Height)
		}
		if !c.Explicit || c.PreserveAspect() {
			t.Error("explicit cell should stretch")
		}
	})

	t.Run("width only falls back to default", func(t *testing.T) {
		c := ComputeCellSize(g, floatPtr(4), nil, 4)
		if c.Explicit {
			t.Error("partial size should be ignored")
		}
		if c != DefaultCellSize(g, 4) {
			t.Errorf("expected default cell, got %+v", c)
		}
	})

	t.Run("height only falls back to default", func(t *testing.T) {
		c := ComputeCellSize(g, nil, floatPtr(5), 4)
		if c.Explicit {
			t.Error("partial size should be ignored")
		}
	})

	t.Run("default columns is a parameter", func(t *testing.T) {
		geom := PageGeometry{Width: 100, Height: 100, Margin: 10, Spacing: 5}
		// (80 - 1*5) / 2 = 37.5
		c := ComputeCellSize(geom, nil, nil, 2)
		if math.Abs(c.Width-37.5) > eps {
			t.Errorf("expected 37.5, got %.2f", c.Width)
		}
	})
}

func TestComputeGridLayout(t *testing.T) {
	geom := PageGeometry{Width: 100, Height: 200, Margin: 10, Spacing: 5}

	tests := []struct {
		name       string
		cell       CellSize
		items      int
		wantRow    int
		wantColumn int
		wantPages  int
	}{
		// floor((80+5)/(20+5)) = 3, floor((180+5)/(20+5)) = 7
		{"small cells", CellSize{Width: 20, Height: 20}, 21, 3, 7, 1},
		{"one over a page", CellSize{Width: 20, Height: 20}, 22, 3, 7, 2},
		// floor(85/30) = 2, floor(185/30) = 6
		{"exact fit", CellSize{Width: 25, Height: 25}, 12, 2, 6, 1},
		{"cell wider than page", CellSize{Width: 100, Height: 20}, 10, 1, 7, 2},
		{"cell taller than page", CellSize{Width: 20, Height: 500}, 4, 3, 1, 2},
		{"no items", CellSize{Width: 20, Height: 20}, 0, 3, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeGridLayout(geom, tt.cell, tt.items)
			if got.ItemsPerRow != tt.wantRow {
				t.Errorf("ItemsPerRow: expected %d, got %d", tt.wantRow, got.ItemsPerRow)
			}
			if got.ItemsPerColumn != tt.wantColumn {
				t.Errorf("ItemsPerColumn: expected %d, got %d", tt.wantColumn, got.ItemsPerColumn)
			}
			if got.ItemsPerPage != tt.wantRow*tt.wantColumn {
				t.Errorf("ItemsPerPage: expected %d, got %d", tt.wantRow*tt.wantColumn, got.ItemsPerPage)
			}
			if got.TotalPages != tt.wantPages {
				t.Errorf("TotalPages: expected %d, got %d", tt.wantPages, got.TotalPages)
			}
		})
	}
}

func TestComputeGridLayout_Formula(t *testing.T) {
	geom := PageGeometry{Width: 300, Height: 400, Margin: 12, Spacing: 7}
	for cw := 5.0; cw <= 400; cw += 13 {
		cell := CellSize{Width: cw, Height: cw * 1.5}
		got := ComputeGridLayout(geom, cell, 100)

		wantRow := max(1, int(math.Floor((geom.Width-2*geom.Margin+geom.Spacing)/(cell.Width+geom.Spacing))))
		if got.ItemsPerRow != wantRow {
			t.Errorf("cell %.0f: ItemsPerRow expected %d, got %d", cw, wantRow, got.ItemsPerRow)
		}
		if got.ItemsPerRow < 1 || got.ItemsPerColumn < 1 {
			t.Errorf("cell %.0f: counts must be at least 1, got %dx%d", cw, got.ItemsPerRow, got.ItemsPerColumn)
		}
		wantPages := int(math.Ceil(100 / float64(got.ItemsPerPage)))
		if got.TotalPages != wantPages {
			t.Errorf("cell %.0f: TotalPages expected %d, got %d", cw, wantPages, got.TotalPages)
		}

		// The packed row must fit the available width unless a single cell is already too wide
		used := float64(got.ItemsPerRow)*cell.Width + float64(got.ItemsPerRow-1)*geom.Spacing
		if got.ItemsPerRow > 1 && used > geom.AvailableWidth()+eps {
			t.Errorf("cell %.0f: row of %d uses %.2f > %.2f", cw, got.ItemsPerRow, used, geom.AvailableWidth())
		}
	}
}

func TestDefaultCellFillsRow(t *testing.T) {
	g := DefaultPageGeometry()
	for _, cols := range []int{1, 2, 3, 4, 5, 6, 7} {
		cell := DefaultCellSize(g, cols)
		got := ComputeGridLayout(g, cell, 1)
		if got.ItemsPerRow != cols {
			t.Errorf("%d default columns: expected %d per row, got %d", cols, cols, got.ItemsPerRow)
		}
	}
}

func TestScenarioDefaultA4(t *testing.T) {
	g := DefaultPageGeometry()
	cell := ComputeCellSize(g, nil, nil, 4)
	grid := ComputeGridLayout(g, cell, 9)

	if grid.ItemsPerRow != 4 {
		t.Errorf("expected 4 per row, got %d", grid.ItemsPerRow)
	}
	// floor((785.20 + 14.17) / (124.02 + 14.17)) = 5
	if grid.ItemsPerColumn != 5 {
		t.Errorf("expected 5 per column, got %d", grid.ItemsPerColumn)
	}
	if grid.TotalPages != 1 {
		t.Errorf("expected 1 page, got %d", grid.TotalPages)
	}
}

func TestScenarioExplicitA4(t *testing.T) {
	g := DefaultPageGeometry()
	cell := ComputeCellSize(g, floatPtr(4), floatPtr(5), 4)
	grid := ComputeGridLayout(g, cell, 5)

	// floor((538.58 + 14.17) / (113.39 + 14.17)) = 4
	if grid.ItemsPerRow != 4 {
		t.Errorf("expected 4 per row, got %d", grid.ItemsPerRow)
	}
	// floor((785.20 + 14.17) / (141.73 + 14.17)) = 5
	if grid.ItemsPerColumn != 5 {
		t.Errorf("expected 5 per column, got %d", grid.ItemsPerColumn)
	}
	if grid.TotalPages != 1 {
		t.Errorf("expected 1 page, got %d", grid.TotalPages)
	}
}

func TestCellOrigin(t *testing.T) {
	geom := PageGeometry{Width: 100, Height: 100, Margin: 10, Spacing: 10}
	cell := CellSize{Width: 30, Height: 30}

	tests := []struct {
		row, col int
		x, y     float64
	}{
		{0, 0, 10, 60},
		{0, 1, 50, 60},
		{1, 0, 10, 20},
		{1, 1, 50, 20},
	}
	for _, tt := range tests {
		x, y := CellOrigin(geom, cell, tt.row, tt.col)
		if math.Abs(x-tt.x) > eps || math.Abs(y-tt.y) > eps {
			t.Errorf("CellOrigin(%d,%d): expected (%.2f,%.2f), got (%.2f,%.2f)", tt.row, tt.col, tt.x, tt.y, x, y)
		}
	}
}
