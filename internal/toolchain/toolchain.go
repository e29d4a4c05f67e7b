// Package toolchain locates a usable system clang or downloads the bundled
// one when none is available.
package toolchain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qiniu/x/log"
	"golang.org/x/sys/execabs"

	"github.com/v8build/v8build/internal/buildenv"
	"github.com/v8build/v8build/internal/platform"
)

// Clang is a compiler base directory usable as gn's clang_base_path.
type Clang struct {
	BasePath string
	System   bool // found via CLANG_BASE_PATH rather than downloaded
}

// FindSystem probes the compiler named by the CLANG_BASE_PATH override.
// The probe succeeds when <base>/bin/clang launches and exits zero on a
// version query. Any failure returns ok=false so the caller can fall back
// to the bundled toolchain; nothing here is fatal.
func FindSystem(ctx context.Context, cfg buildenv.Config) (Clang, bool) {
	if cfg.ClangBase == "" {
		return Clang{}, false
	}
	clang := filepath.Join(cfg.ClangBase, "bin", platform.Host.Exe("clang"))
	out, err := execabs.CommandContext(ctx, clang, "--version").Output()
	if err != nil {
		log.Warnf("ignoring CLANG_BASE_PATH: %s --version: %v", clang, err)
		return Clang{}, false
	}
	reportVersion(string(out))
	log.Infof("clang_base_path %s", cfg.ClangBase)
	return Clang{BasePath: cfg.ClangBase, System: true}, true
}

// Fetcher downloads the bundled compiler toolchain into destDir.
type Fetcher interface {
	Fetch(ctx context.Context, destDir string) error
}

// ScriptFetcher runs the clang update script shipped with the vendored
// sources.
type ScriptFetcher struct {
	RootDir string
}

func (f ScriptFetcher) Fetch(ctx context.Context, destDir string) error {
	cmd := execabs.CommandContext(ctx, "python",
		filepath.Join("tools", "clang", "scripts", "update.py"),
		"--output-dir", destDir)
	cmd.Dir = f.RootDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = buildenv.SubprocessEnv(os.Environ())
	return cmd.Run()
}

// Download fetches the bundled clang into the clang scratch directory under
// the shared target root. A failed fetch, or a fetch that leaves no
// toolchain behind, is fatal for the run: no build can proceed without a
// compiler.
func Download(ctx context.Context, cfg buildenv.Config, f Fetcher) (Clang, error) {
	dest := filepath.Join(cfg.TargetRoot(), "clang")
	if err := f.Fetch(ctx, dest); err != nil {
		return Clang{}, fmt.Errorf("clang download: %w", err)
	}
	if _, err := os.Stat(dest); err != nil {
		return Clang{}, fmt.Errorf("clang download left no toolchain at %s: %w", dest, err)
	}
	log.Infof("clang_base_path %s", dest)
	return Clang{BasePath: dest}, nil
}
