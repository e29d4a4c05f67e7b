// Package gn drives the gn build-graph generator and the ninja executor.
package gn

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/execabs"

	"github.com/v8build/v8build/internal/buildenv"
	"github.com/v8build/v8build/internal/gnargs"
)

// Runner invokes a concrete pair of gn and ninja executables.
type Runner struct {
	GN    string
	Ninja string
}

// MaybeGen regenerates the build graph only when the arguments recorded in
// outDir differ from args or no graph exists yet. Afterwards the out
// directory and its args.gn must both exist; a violation means the
// generator misbehaved and is not recoverable.
func (r Runner) MaybeGen(ctx context.Context, root, outDir string, args gnargs.Args) error {
	if !argsMatch(outDir, args) {
		cmd := execabs.CommandContext(ctx, r.GN, "gen", outDir, "--args="+strings.Join(args, " "))
		cmd.Dir = root
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		cmd.Env = buildenv.SubprocessEnv(os.Environ())
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("gn gen: %w", err)
		}
	}
	if _, err := os.Stat(outDir); err != nil {
		return fmt.Errorf("gn gen left no out directory at %s", outDir)
	}
	if _, err := os.Stat(filepath.Join(outDir, "args.gn")); err != nil {
		return fmt.Errorf("gn gen left no args.gn in %s", outDir)
	}
	return nil
}

// Build runs ninja on the generated graph for a single target. Tool output
// goes straight to the developer; there is no partial-success handling.
func (r Runner) Build(ctx context.Context, outDir, target string) error {
	cmd := execabs.CommandContext(ctx, r.Ninja, "-C", outDir, target)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = buildenv.SubprocessEnv(os.Environ())
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ninja %s: %w", target, err)
	}
	return nil
}

// argsMatch reports whether outDir/args.gn records exactly args.
func argsMatch(outDir string, args gnargs.Args) bool {
	recorded, err := os.ReadFile(filepath.Join(outDir, "args.gn"))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(recorded)) == strings.Join(args, " ")
}
