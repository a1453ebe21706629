// Package version holds the kluars build identity.
//
// [Version], [Revision] and [Branch] default to placeholder values and are
// overwritten by the release build through -ldflags, for example
// -X github.com/MacroPower/kluars/pkg/version.Version=1.2.3. The version
// subcommand prints all three.
package version
