package gntree

var (
	// Version is the version of gntree, set during the build.
	Version = "v0.1.0"

	// Build is the timestamp of the build, set during the build.
	Build = "n/a"
)
