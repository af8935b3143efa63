// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Star list view with rise/transit/set, time-lapse, JSON export
// 0.2.0 - YAML catalogs and config, cobra commands, rotating log file
// 0.1.0 - Initial release: stereographic sky map, sexagesimal codec, built-in bright stars
