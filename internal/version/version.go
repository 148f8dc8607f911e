// internal/version/version.go
package version

// Version is the suite-wide release version reported by --version.
var Version = "1.0.0"
