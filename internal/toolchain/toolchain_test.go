package toolchain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/v8build/v8build/internal/buildenv"
)

func TestParseVersion(t *testing.T) {
	for _, tc := range []struct {
		out  string
		want string
	}{
		{"clang version 14.0.6 (https://github.com/llvm/llvm-project ...)", "v14.0.6"},
		{"Ubuntu clang version 18.1.3 (1ubuntu1)", "v18.1.3"},
		{"Apple clang version 13.1.6 (clang-1316.0.21.2.5)", "v13.1.6"},
		{"clang version 8.0", "v8.0"},
		{"not a compiler", ""},
		{"", ""},
	} {
		if got := parseVersion(tc.out); got != tc.want {
			t.Errorf("parseVersion(%q) = %q, want %q", tc.out, got, tc.want)
		}
	}
}

func TestFloorFor(t *testing.T) {
	if got := floorFor("Apple clang version 13.1.6"); got != MinAppleClangVer {
		t.Errorf("apple floor = %q, want %q", got, MinAppleClangVer)
	}
	if got := floorFor("clang version 14.0.6"); got != MinLLVMClangVer {
		t.Errorf("llvm floor = %q, want %q", got, MinLLVMClangVer)
	}
}

func TestFindSystemNoOverride(t *testing.T) {
	cfg := buildenv.Load(buildenv.Map{}, t.TempDir())
	if _, ok := FindSystem(context.Background(), cfg); ok {
		t.Error("FindSystem() = ok without CLANG_BASE_PATH")
	}
}

// A probe that cannot even launch must yield absence, never an abort: the
// bundled toolchain is the fallback.
func TestFindSystemProbeFailure(t *testing.T) {
	base := t.TempDir() // no bin/clang inside
	cfg := buildenv.Load(buildenv.Map{buildenv.EnvClangBase: base}, t.TempDir())
	if tc, ok := FindSystem(context.Background(), cfg); ok {
		t.Errorf("FindSystem() = %+v, ok; want absence for a missing binary", tc)
	}
}

type fetcherFunc func(ctx context.Context, destDir string) error

func (f fetcherFunc) Fetch(ctx context.Context, destDir string) error { return f(ctx, destDir) }

func TestDownload(t *testing.T) {
	root := t.TempDir()
	cfg := buildenv.Load(buildenv.Map{}, root).WithTargetRoot(filepath.Join(root, "target", "release"))

	t.Run("fetch failure is fatal", func(t *testing.T) {
		calls := 0
		_, err := Download(context.Background(), cfg, fetcherFunc(func(ctx context.Context, destDir string) error {
			calls++
			return errors.New("exit status 1")
		}))
		if err == nil {
			t.Fatal("Download() = nil error after failed fetch")
		}
		if calls != 1 {
			t.Errorf("fetcher called %d times, want 1 (no retries)", calls)
		}
	})

	t.Run("missing destination is fatal", func(t *testing.T) {
		_, err := Download(context.Background(), cfg, fetcherFunc(func(ctx context.Context, destDir string) error {
			return nil // claims success but writes nothing
		}))
		if err == nil {
			t.Fatal("Download() = nil error with no toolchain on disk")
		}
	})

	t.Run("success", func(t *testing.T) {
		tc, err := Download(context.Background(), cfg, fetcherFunc(func(ctx context.Context, destDir string) error {
			return os.MkdirAll(destDir, 0o755)
		}))
		if err != nil {
			t.Fatalf("Download() error: %v", err)
		}
		want := filepath.Join(root, "target", "release", "clang")
		if tc.BasePath != want {
			t.Errorf("BasePath = %q, want %q", tc.BasePath, want)
		}
		if tc.System {
			t.Error("downloaded toolchain tagged System")
		}
	})
}
