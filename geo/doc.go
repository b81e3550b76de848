// Package geo maps geographic coordinates into the flat world space the
// simulation moves vehicles through, and generates jittered route paths.
//
// World units are canvas pixels at zoom 1. The projection is a simple
// equirectangular one centred on a configurable point; it is good enough to
// lay a city network out on screen and makes no attempt at geodetic accuracy.
package geo
