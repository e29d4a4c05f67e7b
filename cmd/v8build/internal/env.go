package internal

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/v8build/v8build/internal/platform"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the resolved build configuration",
	RunE:  runEnv,
}

func init() {
	rootCmd.AddCommand(envCmd)
}

func runEnv(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	for _, kv := range [][2]string{
		{"platform", string(platform.Host)},
		{"profile", cfg.Profile()},
		{"root", cfg.RootDir},
		{"out", cfg.OutDir},
		{"target_root", cfg.TargetRoot()},
		{"gn_out", cfg.GNOutDir()},
		{"clang_base_path", cfg.ClangBase},
		{"sccache", cfg.Sccache},
		{"gn", cfg.GNPath},
		{"ninja", cfg.NinjaPath},
		{"extra_args", strings.Join(cfg.ExtraArgs, " ")},
		{"should_build", fmt.Sprint(cfg.ShouldBuild())},
		{"should_emit_link_flags", fmt.Sprint(cfg.ShouldEmitLinkFlags())},
	} {
		fmt.Printf("%s=%s\n", kv[0], kv[1])
	}
	return nil
}
