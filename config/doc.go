// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml, filled with defaults and validated
// using struct tags. Every section is optional; an empty file yields a working
// simulator on the synthetic data source.
package config
