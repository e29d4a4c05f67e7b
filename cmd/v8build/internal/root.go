package internal

import (
	"os"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/v8build/v8build/internal/buildenv"
)

var rootCmd = &cobra.Command{
	Use:   "v8build",
	Short: "v8build prepares the embedded V8 monolith before the enclosing build",
	Long: `v8build decides whether the vendored V8 needs building, acquires gn,
ninja and a compatible clang, runs the build, and prints the link
directives the enclosing build system must apply.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// It is also the only place in the program that terminates the process.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// loadConfig derives the run configuration from the process environment and
// the working directory.
func loadConfig() (buildenv.Config, error) {
	root, err := os.Getwd()
	if err != nil {
		return buildenv.Config{}, err
	}
	return buildenv.Load(buildenv.OS{}, root), nil
}
