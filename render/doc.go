// Package render turns the store and camera into a Frame of screen-space
// draw primitives that a browser canvas can replay as-is.
package render
