package internal

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/v8build/v8build/internal/link"
	"github.com/v8build/v8build/internal/platform"
)

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Print the link directives without building",
	RunE:  runFlags,
}

func init() {
	rootCmd.AddCommand(flagsCmd)
}

func runFlags(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.ShouldEmitLinkFlags() {
		return nil
	}
	return link.Emit(os.Stdout, platform.Host)
}
