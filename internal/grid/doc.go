// Package grid owns the raster data model of the overland flow simulator.
//
// A Grid is a dense row-major array of Cells addressed by
// y*NCols + x. Each Cell carries its position, a fixed terrain
// elevation, the current water depth and a Strickler roughness.
//
// Neighbour enumeration order is part of the package contract: the 3x3
// Moore window around a cell is scanned row by row, column by column,
// clipped at the grid edges and skipping the centre. Flow routing sums
// over neighbours in this order, so changing it changes results at the
// floating point level.
//
// No hydraulics live here; see package hydraulics for the flow law and
// package simulation for the time stepping.
package grid
