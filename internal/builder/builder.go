// Package builder runs the full pre-build pipeline: source gate, toolchain
// resolution, argument assembly, tool acquisition, graph generation, build.
package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qiniu/x/log"

	"github.com/v8build/v8build/internal/buildenv"
	"github.com/v8build/v8build/internal/gn"
	"github.com/v8build/v8build/internal/gnargs"
	"github.com/v8build/v8build/internal/link"
	"github.com/v8build/v8build/internal/platform"
	"github.com/v8build/v8build/internal/toolchain"
	"github.com/v8build/v8build/internal/tools"
)

// vendoredProbe only exists once the vendored V8 sources and their
// submodules are in place.
const vendoredProbe = "buildtools/third_party/libc++/trunk/src"

// Builder wires the pipeline stages together. Every stage returns an error
// instead of terminating; the CLI driver is the only exit point.
type Builder struct {
	Config    buildenv.Config
	Toolchain toolchain.Fetcher
	Tools     tools.Downloader
}

// New returns a Builder using the script-based download helpers under the
// project root.
func New(cfg buildenv.Config) *Builder {
	return &Builder{
		Config:    cfg,
		Toolchain: toolchain.ScriptFetcher{RootDir: cfg.RootDir},
		Tools:     tools.ScriptDownloader{RootDir: cfg.RootDir},
	}
}

// Run executes the pipeline. Recoverable conditions (no system clang, no
// sccache) fall back silently; everything else fails the run. Each external
// action runs at most once; a rerun resumes through the existence checks.
func (b *Builder) Run(ctx context.Context) error {
	if err := b.checkVendored(); err != nil {
		return err
	}

	tc, ok := toolchain.FindSystem(ctx, b.Config)
	if !ok {
		log.Info("using the bundled clang toolchain")
		var err error
		tc, err = toolchain.Download(ctx, b.Config, b.Toolchain)
		if err != nil {
			return err
		}
	}

	sccache, _ := gnargs.FindSccache(b.Config)
	args := gnargs.Assemble(b.Config, tc, platform.Host, sccache)

	tl, err := tools.Locate(ctx, b.Config, b.Tools)
	if err != nil {
		return err
	}

	r := gn.Runner{GN: tl.GN, Ninja: tl.Ninja}
	outDir := b.Config.GNOutDir()
	if err := r.MaybeGen(ctx, b.Config.RootDir, outDir, args); err != nil {
		return err
	}
	return r.Build(ctx, outDir, link.Library)
}

// checkVendored gates the whole pipeline on the vendored source tree. It
// runs before any network or subprocess action; fetching the tree is the
// operator's job, not ours.
func (b *Builder) checkVendored() error {
	dir := filepath.Join(b.Config.RootDir, filepath.FromSlash(vendoredProbe))
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return fmt.Errorf("missing vendored sources at %s: run 'git submodule update --init --recursive'", dir)
	}
	return nil
}
