// Package gnargs assembles the ordered gn argument list for a build.
package gnargs

import (
	"fmt"

	"github.com/qiniu/x/log"
	"golang.org/x/sys/execabs"

	"github.com/v8build/v8build/internal/buildenv"
	"github.com/v8build/v8build/internal/platform"
	"github.com/v8build/v8build/internal/toolchain"
)

// Args is the ordered gn argument list. Order is load-bearing: gn resolves
// duplicate keys by last occurrence, so later appends override earlier ones.
// The list is never deduplicated or sorted.
type Args []string

func (a *Args) Append(args ...string) {
	*a = append(*a, args...)
}

// FindSccache resolves the compile-cache wrapper, preferring the SCCACHE
// override, then the search path. Missing sccache only costs build time,
// so absence is a warning, not an error.
func FindSccache(cfg buildenv.Config) (string, bool) {
	if cfg.Sccache != "" {
		return cfg.Sccache, true
	}
	if p, err := execabs.LookPath("sccache"); err == nil {
		return p, true
	}
	log.Warn("not using sccache")
	return "", false
}

// Assemble builds the argument list in override order: profile, compiler,
// cache wrapper, then the verbatim GN_ARGS overrides last. sccache is the
// already-resolved wrapper path, empty when none was found. No token is
// validated; malformed overrides are gn's to report.
func Assemble(cfg buildenv.Config, tc toolchain.Clang, host platform.Platform, sccache string) Args {
	var args Args

	// The host toolchain cannot link a debug V8 on Windows.
	if cfg.Debug && host != platform.Win {
		args.Append("is_debug=true")
	} else {
		args.Append("is_debug=false")
	}

	args.Append(fmt.Sprintf("clang_base_path=%q", tc.BasePath))
	if tc.System {
		// A non-bundled clang has neither the vendored warning set nor the
		// chromium plugins.
		args.Append("treat_warnings_as_errors=false")
		args.Append("clang_use_chrome_plugins=false")
	}

	if sccache != "" {
		args.Append(fmt.Sprintf("cc_wrapper=%q", sccache))
		// sccache misreports some warnings as errors when wrapping cl-style
		// invocations: https://github.com/mozilla/sccache/issues/264
		if host == platform.Win {
			args.Append("treat_warnings_as_errors=false")
		}
	}

	args.Append(cfg.ExtraArgs...)
	return args
}
