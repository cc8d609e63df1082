// Package vitals exposes build metadata for the module.
package vitals

// Version is the release version reported by the CLI.
const Version = "0.1.0"
