// Package render turns grid snapshots and run histories into files: one
// pixel per cell depth rasters, a labelled depth heat map, probe depth
// plots and an HTML run report. Renderers only read the grids they are
// given and write through fsutil.FileSystem.
package render
