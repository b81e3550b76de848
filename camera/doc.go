// Package camera maps between world units and screen pixels and keeps the
// interactive view state: pan, zoom, drag, pinch, selection and follow.
package camera
