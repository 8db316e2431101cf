// Package format renders durations, sizes, bitrates and resolutions as
// display strings for API responses. The core components expose raw numeric
// values; only this package decides how they look.
package format
