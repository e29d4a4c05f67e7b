package internal

import (
	"os"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/v8build/v8build/internal/buildenv"
	"github.com/v8build/v8build/internal/builder"
	"github.com/v8build/v8build/internal/link"
	"github.com/v8build/v8build/internal/platform"
)

var buildVerbose bool
var buildDebug bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the vendored V8 monolith if this invocation needs it",
	Long: `Build runs the full pipeline: it checks whether this invocation wants a
build at all (doc-generation, language-server and compile-check passes do
not), locates or downloads the toolchain, generates the build graph, runs
the build and prints the link directives.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Enable verbose output")
	buildCmd.Flags().BoolVar(&buildDebug, "debug", false, "Force a debug build profile")
	rootCmd.AddCommand(buildCmd)
}

// debugSource forces the debug profile over an underlying source, so the
// --debug flag behaves exactly like V8BUILD_DEBUG=1.
type debugSource struct{ buildenv.Source }

func (s debugSource) Lookup(key string) (string, bool) {
	if key == buildenv.EnvDebug {
		return "1", true
	}
	return s.Source.Lookup(key)
}

func runBuild(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		return err
	}
	var src buildenv.Source = buildenv.OS{}
	if buildDebug {
		src = debugSource{src}
	}
	cfg := buildenv.Load(src, root)
	if buildVerbose {
		log.SetOutputLevel(log.Ldebug)
	}

	if cfg.ShouldBuild() {
		if err := builder.New(cfg).Run(cmd.Context()); err != nil {
			return err
		}
	}
	if cfg.ShouldEmitLinkFlags() {
		return link.Emit(os.Stdout, platform.Host)
	}
	return nil
}
