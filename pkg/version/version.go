package version

// Set at build time with -ldflags "-X".
var (
	Version  = "0.0.0"
	Revision = "unknown"
	Branch   = "unknown"
)

// String returns the version and revision in one line.
func String() string {
	return Version + "+" + Revision
}
