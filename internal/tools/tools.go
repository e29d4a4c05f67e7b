// Copyright 2025 The v8build Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tools resolves the gn and ninja executables, downloading prebuilt
// binaries into the scratch directory when the environment provides neither.
package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/execabs"

	"github.com/v8build/v8build/internal/buildenv"
	"github.com/v8build/v8build/internal/platform"
)

// scratchName is the subdirectory of the target root the download helper
// populates. The helper nests a directory of the same name inside it.
const scratchName = "gn_ninja_binaries"

// Tools holds resolved paths to the build-graph generator and the build
// executor.
type Tools struct {
	GN    string
	Ninja string
}

// DownloadTarget maps a tool onto the location a download into Dir would
// produce for a platform. Safe to recompute every run; it is pure path
// arithmetic.
type DownloadTarget struct {
	Tool     string
	Platform platform.Platform
	Dir      string // download root, <target root>/gn_ninja_binaries
}

// Path returns the platform-specific executable path the download produces.
func (t DownloadTarget) Path() string {
	return filepath.Join(t.Dir, scratchName, string(t.Platform), t.Platform.Exe(t.Tool))
}

// Downloader acquires the gn and ninja binaries into a destination
// directory.
type Downloader interface {
	Fetch(ctx context.Context, destDir string) error
}

// ScriptDownloader runs the download helper shipped with the vendored
// sources.
type ScriptDownloader struct {
	RootDir string
}

func (d ScriptDownloader) Fetch(ctx context.Context, destDir string) error {
	cmd := execabs.CommandContext(ctx, "python",
		filepath.Join("tools", "gn_ninja_binaries.py"),
		"--dir", destDir)
	cmd.Dir = d.RootDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = buildenv.SubprocessEnv(os.Environ())
	return cmd.Run()
}

// Locate returns usable gn and ninja paths. The environment wins when it
// names both tools; otherwise the scratch directory is checked, and only
// when that also misses is the downloader invoked, exactly once. A second
// run against a populated scratch directory performs no network action.
func Locate(ctx context.Context, cfg buildenv.Config, d Downloader) (Tools, error) {
	if t, ok := fromEnv(cfg); ok {
		return t, nil
	}

	dir := filepath.Join(cfg.TargetRoot(), scratchName)
	gn := DownloadTarget{Tool: "gn", Platform: platform.Host, Dir: dir}
	ninja := DownloadTarget{Tool: "ninja", Platform: platform.Host, Dir: dir}

	if exists(gn.Path()) && exists(ninja.Path()) {
		return Tools{GN: gn.Path(), Ninja: ninja.Path()}, nil
	}

	if err := d.Fetch(ctx, dir); err != nil {
		return Tools{}, fmt.Errorf("gn/ninja download: %w", err)
	}
	for _, t := range []DownloadTarget{gn, ninja} {
		if !exists(t.Path()) {
			return Tools{}, fmt.Errorf("%s still missing after download: %s", t.Tool, t.Path())
		}
	}
	return Tools{GN: gn.Path(), Ninja: ninja.Path()}, nil
}

// fromEnv is satisfied when GN names the generator explicitly and ninja is
// reachable through NINJA or the search path.
func fromEnv(cfg buildenv.Config) (Tools, bool) {
	if cfg.GNPath == "" {
		return Tools{}, false
	}
	ninja := cfg.NinjaPath
	if ninja == "" {
		p, err := execabs.LookPath("ninja")
		if err != nil {
			return Tools{}, false
		}
		ninja = p
	}
	return Tools{GN: cfg.GNPath, Ninja: ninja}, true
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
