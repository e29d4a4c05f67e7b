// Copyright 2025 The v8build Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/v8build/v8build/internal/buildenv"
	"github.com/v8build/v8build/internal/platform"
)

func TestDownloadTargetPath(t *testing.T) {
	t.Run("linux has no extension", func(t *testing.T) {
		dt := DownloadTarget{Tool: "gn", Platform: platform.Linux64, Dir: "/t/release/gn_ninja_binaries"}
		got := dt.Path()
		if !strings.HasSuffix(got, string(filepath.Separator)+"gn") {
			t.Errorf("Path() = %q, want a bare gn executable", got)
		}
		if !strings.Contains(got, filepath.Join("gn_ninja_binaries", "gn_ninja_binaries", "linux64")) {
			t.Errorf("Path() = %q, missing the nested platform subpath", got)
		}
	})

	t.Run("windows gets .exe", func(t *testing.T) {
		dt := DownloadTarget{Tool: "ninja", Platform: platform.Win, Dir: "/t/release/gn_ninja_binaries"}
		if got := dt.Path(); !strings.HasSuffix(got, "ninja.exe") {
			t.Errorf("Path() = %q, want a .exe suffix", got)
		}
	})

	t.Run("mac has no extension", func(t *testing.T) {
		dt := DownloadTarget{Tool: "ninja", Platform: platform.Mac, Dir: "/d"}
		if got := dt.Path(); !strings.HasSuffix(got, string(filepath.Separator)+"ninja") {
			t.Errorf("Path() = %q, want a bare ninja executable", got)
		}
	})
}

// countingDownloader populates the expected layout on first use and counts
// invocations.
type countingDownloader struct {
	calls int
	tools []string // tools to create, nil means both
	fail  bool
}

func (d *countingDownloader) Fetch(ctx context.Context, destDir string) error {
	d.calls++
	if d.fail {
		return os.ErrPermission
	}
	names := d.tools
	if names == nil {
		names = []string{"gn", "ninja"}
	}
	platDir := filepath.Join(destDir, "gn_ninja_binaries", string(platform.Host))
	if err := os.MkdirAll(platDir, 0o755); err != nil {
		return err
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(platDir, platform.Host.Exe(name)), []byte("#"), 0o755); err != nil {
			return err
		}
	}
	return nil
}

func testConfig(t *testing.T) buildenv.Config {
	t.Helper()
	return buildenv.Load(buildenv.Map{}, t.TempDir()).WithTargetRoot(t.TempDir())
}

func TestLocateDownloadsOnce(t *testing.T) {
	cfg := testConfig(t)
	d := &countingDownloader{}

	first, err := Locate(context.Background(), cfg, d)
	if err != nil {
		t.Fatalf("first Locate() error: %v", err)
	}
	if d.calls != 1 {
		t.Fatalf("first Locate(): %d downloads, want 1", d.calls)
	}

	second, err := Locate(context.Background(), cfg, d)
	if err != nil {
		t.Fatalf("second Locate() error: %v", err)
	}
	if d.calls != 1 {
		t.Errorf("second Locate(): %d downloads, want downloads to be skipped", d.calls)
	}
	if first != second {
		t.Errorf("Locate() not stable: %+v then %+v", first, second)
	}
	if !exists(first.GN) || !exists(first.Ninja) {
		t.Errorf("Locate() returned missing paths: %+v", first)
	}
}

func TestLocatePrefersEnvironment(t *testing.T) {
	cfg := buildenv.Load(buildenv.Map{
		buildenv.EnvGN:    "/opt/gn",
		buildenv.EnvNinja: "/opt/ninja",
	}, t.TempDir()).WithTargetRoot(t.TempDir())
	d := &countingDownloader{}

	got, err := Locate(context.Background(), cfg, d)
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	if got.GN != "/opt/gn" || got.Ninja != "/opt/ninja" {
		t.Errorf("Locate() = %+v, want the environment overrides", got)
	}
	if d.calls != 0 {
		t.Errorf("Locate() downloaded %d times despite environment overrides", d.calls)
	}
}

func TestLocateFailures(t *testing.T) {
	t.Run("download error", func(t *testing.T) {
		cfg := testConfig(t)
		if _, err := Locate(context.Background(), cfg, &countingDownloader{fail: true}); err == nil {
			t.Error("Locate() = nil error after failed download")
		}
	})

	t.Run("incomplete download", func(t *testing.T) {
		cfg := testConfig(t)
		_, err := Locate(context.Background(), cfg, &countingDownloader{tools: []string{"gn"}})
		if err == nil {
			t.Fatal("Locate() = nil error with ninja missing after download")
		}
		if !strings.Contains(err.Error(), "ninja") {
			t.Errorf("error %q does not name the missing tool", err)
		}
	})
}
