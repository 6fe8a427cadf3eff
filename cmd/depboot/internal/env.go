package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ift-infra/depboot/internal/env"
	"github.com/ift-infra/depboot/internal/interp"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the resolved configuration",
	Args:  cobra.NoArgs,
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

	alt := interp.Alternate(cfg.Python, cfg.PythonConfig)
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "(build system default)"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "repo\t%s\n", cfg.Repo)
	fmt.Fprintf(out, "ref\t%s\n", cfg.Ref)
	fmt.Fprintf(out, "prefix\t%s\n", prefix)
	fmt.Fprintf(out, "split_prefix\t%v\n", cfg.SplitPrefix)
	fmt.Fprintf(out, "jobs\t%d\n", cfg.Jobs)
	fmt.Fprintf(out, "python\t%s\n", alt.Interp)
	fmt.Fprintf(out, "python_config\t%s\n", alt.ConfigTool)
	fmt.Fprintf(out, "work_root\t%s\n", cfg.WorkRoot)
	fmt.Fprintf(out, "config_dir\t%s\n", env.ConfigDir())
	return nil
}
