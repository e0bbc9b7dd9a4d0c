package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cohost/internal/domains/room/model"
)

func TestTableFootprint(t *testing.T) {
	tests := []struct {
		name     string
		table    model.Table
		expected model.Rect
	}{
		{
			name:     "square centered at origin",
			table:    model.Table{ID: 1, X: 0, Y: 0, Shape: model.ShapeSquare},
			expected: model.Rect{Left: -40, Top: -40, Right: 40, Bottom: 40},
		},
		{
			name:     "circle shares square footprint",
			table:    model.Table{ID: 2, X: 100, Y: 100, Shape: model.ShapeCircle},
			expected: model.Rect{Left: 60, Top: 60, Right: 140, Bottom: 140},
		},
		{
			name:     "vertical is tall and narrow",
			table:    model.Table{ID: 3, X: 200, Y: 200, Shape: model.ShapeVertical},
			expected: model.Rect{Left: 180, Top: 140, Right: 220, Bottom: 260},
		},
		{
			name:     "horizontal is wide and short",
			table:    model.Table{ID: 4, X: 200, Y: 200, Shape: model.ShapeHorizontal},
			expected: model.Rect{Left: 140, Top: 180, Right: 260, Bottom: 220},
		},
		{
			name:     "unknown shape falls back to square",
			table:    model.Table{ID: 5, X: 0, Y: 0, Shape: "hexagon"},
			expected: model.Rect{Left: -40, Top: -40, Right: 40, Bottom: 40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.table.Footprint())
		})
	}
}

func TestFindOverlap(t *testing.T) {
	tests := []struct {
		name        string
		tables      model.Tables
		wantOverlap bool
		wantFirst   int
		wantSecond  int
	}{
		{
			name:        "empty layout",
			tables:      model.Tables{},
			wantOverlap: false,
		},
		{
			name: "identical positions overlap",
			tables: model.Tables{
				{ID: 1, X: 100, Y: 100, Shape: model.ShapeSquare},
				{ID: 2, X: 100, Y: 100, Shape: model.ShapeSquare},
			},
			wantOverlap: true,
			wantFirst:   1,
			wantSecond:  2,
		},
		{
			name: "touching edges do not overlap",
			tables: model.Tables{
				{ID: 1, X: 100, Y: 100, Shape: model.ShapeSquare},
				{ID: 2, X: 180, Y: 100, Shape: model.ShapeSquare},
			},
			wantOverlap: false,
		},
		{
			name: "separated tables do not overlap",
			tables: model.Tables{
				{ID: 1, X: 0, Y: 0, Shape: model.ShapeSquare},
				{ID: 2, X: 300, Y: 300, Shape: model.ShapeCircle},
			},
			wantOverlap: false,
		},
		{
			name: "vertical crossing horizontal",
			tables: model.Tables{
				{ID: 7, X: 100, Y: 100, Shape: model.ShapeVertical},
				{ID: 8, X: 110, Y: 100, Shape: model.ShapeHorizontal},
			},
			wantOverlap: true,
			wantFirst:   7,
			wantSecond:  8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second, overlap := model.FindOverlap(tt.tables)

			assert.Equal(t, tt.wantOverlap, overlap)

			if tt.wantOverlap {
				assert.Equal(t, tt.wantFirst, first)
				assert.Equal(t, tt.wantSecond, second)
			}
		})
	}
}
