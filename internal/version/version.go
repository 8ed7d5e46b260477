// Package version carries build metadata set through -ldflags.
package version

var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)
