// Package platform identifies the host the way the V8 build scripts name it.
package platform

// Platform is one of the three host tags the prebuilt tool archives and the
// gn configuration understand.
type Platform string

const (
	Win     Platform = "win"
	Linux64 Platform = "linux64"
	Mac     Platform = "mac"
)

// Exe appends the platform's executable suffix to name.
func (p Platform) Exe(name string) string {
	if p == Win {
		return name + ".exe"
	}
	return name
}
