// Package buildenv derives the per-run build configuration from the
// environment once, so the rest of the pipeline never consults global
// process state.
package buildenv

import (
	"path/filepath"
	"strings"
)

// Recognized configuration keys.
const (
	EnvCheckOnly = "V8BUILD_CHECK_ONLY" // compile-check pass, no artifact wanted
	EnvDocGen    = "V8BUILD_DOCGEN"     // documentation-generation pass
	EnvDriver    = "V8BUILD_DRIVER"     // path of the invoking build driver
	EnvDebug     = "V8BUILD_DEBUG"      // debug profile
	EnvOutDir    = "V8BUILD_OUT_DIR"    // designated out directory
	EnvClangBase = "CLANG_BASE_PATH"    // system compiler base directory
	EnvSccache   = "SCCACHE"            // compile cache executable
	EnvGNArgs    = "GN_ARGS"            // free-form extra gn arguments
	EnvGN        = "GN"                 // gn executable override
	EnvNinja     = "NINJA"              // ninja executable override
)

// A driver whose executable file stem starts with this prefix is a
// language-server invocation, not a real build.
const langServerPrefix = "lsp"

// Config is the immutable per-run configuration. Built once by Load and
// passed by value through the pipeline.
type Config struct {
	CheckOnly  bool
	DocGen     bool
	LangServer bool

	Debug   bool
	RootDir string
	OutDir  string

	ClangBase string   // may be empty; empty means no system compiler override
	Sccache   string   // may be empty; gnargs falls back to PATH lookup
	ExtraArgs []string // GN_ARGS split on whitespace, passed through verbatim
	GNPath    string
	NinjaPath string

	targetRoot string // test override, see TargetRoot
}

// Load derives a Config from src. rootDir is the project root holding the
// vendored V8 sources.
func Load(src Source, rootDir string) Config {
	cfg := Config{RootDir: rootDir}

	_, cfg.CheckOnly = src.Lookup(EnvCheckOnly)
	_, cfg.DocGen = src.Lookup(EnvDocGen)
	if driver, ok := src.Lookup(EnvDriver); ok {
		stem := strings.TrimSuffix(filepath.Base(driver), filepath.Ext(driver))
		cfg.LangServer = strings.HasPrefix(stem, langServerPrefix)
	}
	if v, ok := src.Lookup(EnvDebug); ok {
		cfg.Debug = v != "0" && !strings.EqualFold(v, "false")
	}

	if out, ok := src.Lookup(EnvOutDir); ok {
		cfg.OutDir = out
	} else {
		cfg.OutDir = filepath.Join(rootDir, "target", cfg.Profile(), "build", "v8build", "out")
	}

	cfg.ClangBase, _ = src.Lookup(EnvClangBase)
	cfg.Sccache, _ = src.Lookup(EnvSccache)
	if extra, ok := src.Lookup(EnvGNArgs); ok {
		cfg.ExtraArgs = strings.Fields(extra)
	}
	cfg.GNPath, _ = src.Lookup(EnvGN)
	cfg.NinjaPath, _ = src.Lookup(EnvNinja)

	return cfg
}

// ShouldBuild reports whether this invocation needs the full native build.
// Compile-check, doc-generation and language-server passes all skip it.
func (c Config) ShouldBuild() bool {
	return !c.CheckOnly && !c.DocGen && !c.LangServer
}

// ShouldEmitLinkFlags reports whether link directives are wanted.
// Compile-check passes still link, so only the doc-generation and
// language-server signals suppress them.
func (c Config) ShouldEmitLinkFlags() bool {
	return !c.DocGen && !c.LangServer
}

// Profile returns the build profile directory name.
func (c Config) Profile() string {
	if c.Debug {
		return "debug"
	}
	return "release"
}

// TargetRoot resolves the shared build root that scratch directories
// (downloaded toolchains and tools) live under: the out directory stepped
// up three parent levels. This is the only place the path arithmetic lives.
func (c Config) TargetRoot() string {
	if c.targetRoot != "" {
		return c.targetRoot
	}
	return filepath.Dir(filepath.Dir(filepath.Dir(c.OutDir)))
}

// WithTargetRoot returns a copy of c whose TargetRoot is pinned to dir.
// Used by tests to substitute the resolver.
func (c Config) WithTargetRoot(dir string) Config {
	c.targetRoot = dir
	return c
}

// GNOutDir is the directory the build graph is generated into.
func (c Config) GNOutDir() string {
	return filepath.Join(c.OutDir, "gn_out")
}

// SubprocessEnv extends base with the hygiene variables every spawned build
// tool needs: depot_tools must not fetch the MSVC toolchain, and python
// helpers must not litter the source tree with .pyc files.
func SubprocessEnv(base []string) []string {
	return append(base[:len(base):len(base)],
		"DEPOT_TOOLS_WIN_TOOLCHAIN=0",
		"PYTHONDONTWRITEBYTECODE=1",
	)
}
