package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/overland-sim/overland/internal/fsutil"
	"github.com/overland-sim/overland/internal/grid"
	"github.com/overland-sim/overland/internal/monitoring"
)

// ErrUnsupportedFormat is returned for image formats other than PNG and JPEG.
var ErrUnsupportedFormat = errors.New("render: unsupported image format")

const jpegQuality = 90

// ScaleColor maps depth onto 0..255, saturating at maxDepth.
func ScaleColor(depth, maxDepth float64) uint8 {
	if depth >= maxDepth {
		return 255
	}
	if !(depth > 0) {
		return 0
	}
	return uint8(depth * 255 / maxDepth)
}

// DepthColor is the pixel colour for a depth: white when dry, blue when
// at or beyond maxDepth.
func DepthColor(depth, maxDepth float64) color.RGBA {
	s := ScaleColor(depth, maxDepth)
	return color.RGBA{R: 255 - s, G: 255 - s, B: 255, A: 255}
}

// DepthImage renders one pixel per cell, column x to image x and row y to
// image y.
func DepthImage(g *grid.Grid, maxDepth float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.NCols, g.NRows))
	for y := 0; y < g.NRows; y++ {
		for x := 0; x < g.NCols; x++ {
			img.SetRGBA(x, y, DepthColor(g.Cell(x, y).Depth, maxDepth))
		}
	}
	return img
}

// FormatFromPath returns "png" or "jpg" for a file name, or
// ErrUnsupportedFormat.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpg", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// EncodeDepthImage writes the depth raster of g to w in the given format
// ("png", "jpg" or "jpeg").
func EncodeDepthImage(w io.Writer, g *grid.Grid, maxDepth float64, format string) error {
	img := DepthImage(g, maxDepth)
	switch format {
	case "png":
		return png.Encode(w, img)
	case "jpg", "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// WriteDepthImage renders g to path, choosing the encoder from the file
// extension.
func WriteDepthImage(fsys fsutil.FileSystem, path string, g *grid.Grid, maxDepth float64) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create depth image: %w", err)
	}
	if err := EncodeDepthImage(f, g, maxDepth, format); err != nil {
		f.Close()
		return fmt.Errorf("encode depth image %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close depth image: %w", err)
	}
	monitoring.Logf("render: wrote %s (%dx%d)", path, g.NCols, g.NRows)
	return nil
}
