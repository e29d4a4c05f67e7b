package toolchain

import (
	"regexp"
	"strings"

	"github.com/qiniu/x/log"
	"golang.org/x/mod/semver"
)

// Minimum compiler versions known to work with the vendored gn
// configuration. gn's clang_base_path is compatible with Apple clang,
// homebrew llvm@x, the official llvm.org releases and recent unversioned
// Linux packages, but not with version-suffixed distro packages.
//
// The floors are informational only: the locator reports compilers below
// them but does not reject them.
const (
	MinAppleClangVer = "v11.0"
	MinLLVMClangVer  = "v8.0"
)

var versionRE = regexp.MustCompile(`version (\d+\.\d+(?:\.\d+)?)`)

// parseVersion extracts the semver-shaped version from `clang --version`
// output. Returns "" when no version is recognizable.
func parseVersion(out string) string {
	m := versionRE.FindStringSubmatch(out)
	if m == nil {
		return ""
	}
	return "v" + m[1]
}

// floorFor returns the applicable minimum version for the probed output.
func floorFor(out string) string {
	if strings.Contains(out, "Apple") {
		return MinAppleClangVer
	}
	return MinLLVMClangVer
}

// reportVersion logs the detected compiler version and warns when it sits
// below the documented floor. Acceptance is unaffected either way.
func reportVersion(out string) {
	ver := parseVersion(out)
	if ver == "" {
		log.Warnf("could not parse clang version from probe output")
		return
	}
	if floor := floorFor(out); semver.Compare(ver, floor) < 0 {
		log.Warnf("system clang %s is below the supported floor %s", ver, floor)
		return
	}
	log.Infof("system clang %s", ver)
}
