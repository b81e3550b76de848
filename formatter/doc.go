// Package formatter serializes what the simulator exposes to clients.
//
// This package is organized into:
// - snapshot.go: the VehicleMonitoring-like vehicle snapshot and its filters
// - json.go: JSON serialization of snapshots and render frames
// - xml.go: XML serialization with proper escaping
//
// XML is written by hand for precise control over element order.
package formatter
