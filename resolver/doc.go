// Package resolver turns a data-source mode into a route catalog.
//
// Tiers are tried in ranked order (live, static, synthetic) starting from the
// tier the mode names. A tier that errors or yields nothing falls through to
// the next one. The synthetic tier cannot fail, so Resolve always returns a
// catalog with at least one drivable route.
package resolver
