// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"errors"
	"math"
	"testing"

	"github.com/overland-sim/overland/internal/grid"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertErrorIs fails the test unless errors.Is(err, target).
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error = %v, want %v", err, target)
	}
}

// AssertInDelta fails the test if got and want differ by more than delta.
func AssertInDelta(t *testing.T, got, want, delta float64, what string) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > delta {
		t.Errorf("%s = %v, want %v (±%v)", what, got, want, delta)
	}
}

// NewTestGrid4x3 returns a dry 4x3 grid with unit cells whose elevation
// equals the flattened cell index (0..11).
func NewTestGrid4x3() *grid.Grid {
	g := grid.New(4, 3, 1.0)
	for i := 0; i < 12; i++ {
		g.Cells = append(g.Cells, grid.NewCell(i%4, i/4, float64(i), 0))
	}
	return g
}

// NewFlatGrid returns an nCols x nRows grid of uniform elevation and depth.
func NewFlatGrid(nCols, nRows int, cellSize, elevation, depth float64) *grid.Grid {
	g := grid.New(nCols, nRows, cellSize)
	for y := 0; y < nRows; y++ {
		for x := 0; x < nCols; x++ {
			g.Cells = append(g.Cells, grid.NewCell(x, y, elevation, depth))
		}
	}
	return g
}

// NewTwoCellGrid returns a 2x1 grid holding exactly the two given cells
// with their positions rewritten to (0,0) and (1,0).
func NewTwoCellGrid(cellSize float64, a, b grid.Cell) *grid.Grid {
	a.X, a.Y = 0, 0
	b.X, b.Y = 1, 0
	g := grid.New(2, 1, cellSize)
	g.Cells = append(g.Cells, a, b)
	return g
}
